package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/auth"
	"github.com/staffsync/attendance-backend-go/internal/domain/user"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
	"github.com/staffsync/attendance-backend-go/internal/pkg/jwt"
	"github.com/staffsync/attendance-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	db *database.DB
	jwt.Service
	UserRepository user.UserRepository
}

func NewService(db *database.DB, jwtService jwt.Service, userRepository user.UserRepository) *Service {
	return &Service{
		db:             db,
		Service:        jwtService,
		UserRepository: userRepository,
	}
}

// Register implements auth.AuthService.
func (s *Service) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	exists, err := s.UserRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return auth.TokenResponse{}, user.ErrUserEmailExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var tokenResponse auth.TokenResponse
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		// Employee codes are sequential: EMP001, EMP002, ...
		code, err := s.UserRepository.NextEmployeeCode(txCtx)
		if err != nil {
			return fmt.Errorf("failed to reserve employee code: %w", err)
		}

		newUser, err := s.UserRepository.Create(txCtx, user.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: string(passwordHash),
			Role:         user.Role(req.Role),
			EmployeeCode: code,
			Department:   req.Department,
			Theme:        user.ThemeLight,
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		accessToken, _, err := s.Service.GenerateAccessToken(newUser.ID, newUser.Email, newUser.Role)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}

		tokenResponse = auth.TokenResponse{
			AccessToken: accessToken,
			TokenType:   "Bearer",
			User:        newUser.ToResponse(),
		}

		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// Login implements auth.AuthService.
func (s *Service) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == user.ErrUserNotFound {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	accessToken, _, err := s.Service.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		User:        u.ToResponse(),
	}, nil
}
