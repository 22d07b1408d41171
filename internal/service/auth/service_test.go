package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/domain/auth"
	"github.com/staffsync/attendance-backend-go/internal/pkg/jwt"
	"github.com/staffsync/attendance-backend-go/internal/repository/postgresql"
	"github.com/staffsync/attendance-backend-go/internal/repository/postgresql/postgresql_test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestService(t *testing.T, ctx context.Context) *Service {
	t.Helper()

	setup, err := postgresql_test.NewTestDatabase()
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	t.Cleanup(setup.Close)
	require.NoError(t, setup.TruncateAllTables(ctx))

	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h")
	return NewService(setup.DB, jwtService, postgresql.NewUserRepository(setup.DB))
}

func registerRequest(suffix string) auth.RegisterRequest {
	return auth.RegisterRequest{
		Name:       "Test User " + suffix,
		Email:      fmt.Sprintf("register-%s-%d@example.com", suffix, time.Now().UnixNano()),
		Password:   "password123",
		Role:       "employee",
		Department: "Engineering",
	}
}

func TestAuthService_Register_SequentialCodes(t *testing.T) {
	ctx := context.Background()
	svc := newAuthTestService(t, ctx)

	first, err := svc.Register(ctx, registerRequest("a"))
	require.NoError(t, err)
	assert.Equal(t, "EMP001", first.User.EmployeeCode)
	assert.NotEmpty(t, first.AccessToken)

	second, err := svc.Register(ctx, registerRequest("b"))
	require.NoError(t, err)
	assert.Equal(t, "EMP002", second.User.EmployeeCode)
}

// Concurrent registrations must each get their own code, with no unique
// violation surfacing to any caller.
func TestAuthService_Register_ConcurrentCodes(t *testing.T) {
	ctx := context.Background()
	svc := newAuthTestService(t, ctx)

	const registrations = 5

	var wg sync.WaitGroup
	errs := make([]error, registrations)
	codes := make([]string, registrations)

	for i := 0; i < registrations; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := svc.Register(ctx, registerRequest(fmt.Sprintf("c%d", i)))
			errs[i] = err
			codes[i] = resp.User.EmployeeCode
		}(i)
	}
	wg.Wait()

	seen := make(map[string]int, registrations)
	for i := 0; i < registrations; i++ {
		require.NoError(t, errs[i])
		seen[codes[i]]++
	}
	assert.Len(t, seen, registrations)
}
