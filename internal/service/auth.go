package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/security"
)

type authService struct {
	store  repository.Store
	tokens security.TokenManager
}

func NewAuthService(store repository.Store, tokens security.TokenManager) AuthService {
	return &authService{store: store, tokens: tokens}
}

// Login verifies an employee's credentials and issues an access token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.Employee, error) {
	employee, err := s.store.Repos().Employees.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", nil, domain.NewBusinessRule("invalid credentials")
		}
		return "", nil, err
	}
	if !employee.Active {
		return "", nil, domain.NewBusinessRule("employee account is inactive")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.NewBusinessRule("invalid credentials")
	}

	token, err := s.tokens.GenerateAccessToken(employee.ID, employee.Email, string(employee.Role))
	if err != nil {
		return "", nil, err
	}

	logger.Info("Employee logged in", "employee_id", employee.ID)
	return token, employee, nil
}
