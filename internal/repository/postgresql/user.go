package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/staffsync/attendance-backend-go/internal/domain/user"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
)

const userColumns = `id, name, email, password_hash, role, employee_code, department, position,
		profile_picture, theme, badges, current_streak, longest_streak, created_at, updated_at`

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.EmployeeCode,
		&u.Department,
		&u.Position,
		&u.ProfilePicture,
		&u.Theme,
		&u.Badges,
		&u.CurrentStreak,
		&u.LongestStreak,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)

	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	return u, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	if newUser.ID == "" {
		newUser.ID = uuid.NewString()
	}
	if newUser.Badges == nil {
		newUser.Badges = []string{}
	}

	query := fmt.Sprintf(`
		INSERT INTO users (id, name, email, password_hash, role, employee_code, department, position,
			profile_picture, theme, badges, current_streak, longest_streak, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING %s
	`, userColumns)

	created, err := scanUser(q.QueryRow(ctx, query,
		newUser.ID,
		newUser.Name,
		newUser.Email,
		newUser.PasswordHash,
		newUser.Role,
		newUser.EmployeeCode,
		newUser.Department,
		newUser.Position,
		newUser.ProfilePicture,
		newUser.Theme,
		newUser.Badges,
		newUser.CurrentStreak,
		newUser.LongestStreak,
	))
	if err != nil {
		return user.User{}, err
	}

	return created, nil
}

// ExistsByEmail implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// NextEmployeeCode implements user.UserRepository. The advisory lock is
// transaction scoped, so two registrations cannot read the same count.
func (r *userRepositoryImpl) NextEmployeeCode(ctx context.Context) (string, error) {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('users_employee_code'))`); err != nil {
		return "", err
	}

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return "", err
	}

	return fmt.Sprintf("EMP%03d", count+1), nil
}

// CountAll implements user.UserRepository.
func (r *userRepositoryImpl) CountAll(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// ListByDepartment implements user.UserRepository.
func (r *userRepositoryImpl) ListByDepartment(ctx context.Context, department string) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM users WHERE department = $1 ORDER BY name`, userColumns)

	rows, err := q.Query(ctx, query, department)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectUsers(rows)
}

// ListManagers implements user.UserRepository.
func (r *userRepositoryImpl) ListManagers(ctx context.Context) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM users WHERE role = 'manager' ORDER BY name`, userColumns)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectUsers(rows)
}

// ListAll implements user.UserRepository.
func (r *userRepositoryImpl) ListAll(ctx context.Context) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY name`, userColumns)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectUsers(rows)
}

func collectUsers(rows pgx.Rows) ([]user.User, error) {
	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateProfile implements user.UserRepository.
func (r *userRepositoryImpl) UpdateProfile(ctx context.Context, req user.UpdateProfileRequest) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE users
		SET name = COALESCE($1, name),
			department = COALESCE($2, department),
			position = COALESCE($3, position),
			updated_at = NOW()
		WHERE id = $4
	`, req.Name, req.Department, req.Position, req.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// UpdateTheme implements user.UserRepository.
func (r *userRepositoryImpl) UpdateTheme(ctx context.Context, userID string, theme user.Theme) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE users SET theme = $1, updated_at = NOW() WHERE id = $2`, theme, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// UpdateProfilePicture implements user.UserRepository.
func (r *userRepositoryImpl) UpdateProfilePicture(ctx context.Context, userID, path string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE users SET profile_picture = $1, updated_at = NOW() WHERE id = $2`, path, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// UpdateStreaks implements user.UserRepository.
func (r *userRepositoryImpl) UpdateStreaks(ctx context.Context, userID string, current, longest int) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE users
		SET current_streak = $1, longest_streak = $2, updated_at = NOW()
		WHERE id = $3
	`, current, longest, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// AddBadge implements user.UserRepository.
// array_append is guarded so a badge is stored at most once.
func (r *userRepositoryImpl) AddBadge(ctx context.Context, userID, badge string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE users
		SET badges = array_append(badges, $1), updated_at = NOW()
		WHERE id = $2 AND NOT ($1 = ANY(badges))
	`, badge, userID)
	return err
}
