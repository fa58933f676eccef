package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type employeeService struct {
	store repository.Store
}

func NewEmployeeService(store repository.Store) EmployeeService {
	return &employeeService{store: store}
}

func (s *employeeService) Create(ctx context.Context, e *domain.Employee, password string) error {
	if len(password) < 8 {
		return domain.NewBusinessRule("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	e.PasswordHash = string(hash)
	if e.Role == "" {
		e.Role = domain.EmployeeRoleStaff
	}
	e.Active = true
	return s.store.Repos().Employees.Create(ctx, e)
}

func (s *employeeService) Update(ctx context.Context, e *domain.Employee) error {
	return s.store.Repos().Employees.Update(ctx, e)
}

func (s *employeeService) Get(ctx context.Context, id int32) (*domain.Employee, error) {
	return s.store.Repos().Employees.GetByID(ctx, id)
}

func (s *employeeService) List(ctx context.Context) ([]domain.Employee, error) {
	return s.store.Repos().Employees.List(ctx)
}

// Delete deactivates rather than removes when the employee is referenced by
// rental history; employees on past rentals must stay resolvable.
func (s *employeeService) Delete(ctx context.Context, id int32) error {
	return s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		e, err := r.Employees.GetByID(ctx, id)
		if err != nil {
			return err
		}
		rentals, err := r.Rentals.List(ctx, repository.RentalFilter{EmployeeID: id})
		if err != nil {
			return err
		}
		if len(rentals) > 0 {
			e.Active = false
			return r.Employees.Update(ctx, e)
		}
		return r.Employees.Delete(ctx, id)
	})
}
