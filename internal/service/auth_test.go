package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/security"
	"carrental-backend/internal/service"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	tokens := security.NewTokenManager("test-secret", 60)

	employees := service.NewEmployeeService(store)
	employee := &domain.Employee{
		FirstName: "Ana",
		LastName:  "Diaz",
		Email:     "ana@rental.test",
		Role:      domain.EmployeeRoleManager,
	}
	require.NoError(t, employees.Create(ctx, employee, "s3cret-pass"))

	svc := service.NewAuthService(store, tokens)

	t.Run("ValidCredentials", func(t *testing.T) {
		token, logged, err := svc.Login(ctx, "ana@rental.test", "s3cret-pass")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, employee.ID, logged.ID)

		claims, err := tokens.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, employee.ID, claims.EmployeeID)
		assert.Equal(t, "ana@rental.test", claims.Email)
		assert.Equal(t, string(domain.EmployeeRoleManager), claims.Role)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ana@rental.test", "wrong")
		require.Error(t, err)
		assert.True(t, domain.IsBusinessRule(err))
		assert.EqualError(t, err, "invalid credentials")
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@rental.test", "whatever")
		require.Error(t, err)
		assert.EqualError(t, err, "invalid credentials")
	})

	t.Run("InactiveAccount", func(t *testing.T) {
		inactive := *employee
		inactive.Active = false
		require.NoError(t, store.Repos().Employees.Update(ctx, &inactive))
		defer func() {
			require.NoError(t, store.Repos().Employees.Update(ctx, employee))
		}()

		_, _, err := svc.Login(ctx, "ana@rental.test", "s3cret-pass")
		require.Error(t, err)
		assert.True(t, domain.IsBusinessRule(err))
	})
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := service.NewEmployeeService(store)

	t.Run("ShortPasswordRejected", func(t *testing.T) {
		err := svc.Create(ctx, &domain.Employee{Email: "x@rental.test"}, "short")
		require.Error(t, err)
		assert.True(t, domain.IsBusinessRule(err))
	})

	t.Run("DefaultsToActiveStaff", func(t *testing.T) {
		e := &domain.Employee{FirstName: "Leo", Email: "leo@rental.test"}
		require.NoError(t, svc.Create(ctx, e, "long-enough-pass"))
		assert.Equal(t, domain.EmployeeRoleStaff, e.Role)
		assert.True(t, e.Active)
		assert.NotEmpty(t, e.PasswordHash)
		assert.NotEqual(t, "long-enough-pass", e.PasswordHash)
	})
}
