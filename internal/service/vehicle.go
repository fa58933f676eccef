package service

import (
	"context"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type vehicleService struct {
	store repository.Store
}

func NewVehicleService(store repository.Store) VehicleService {
	return &vehicleService{store: store}
}

func (s *vehicleService) Create(ctx context.Context, v *domain.Vehicle) error {
	repos := s.store.Repos()
	if _, err := repos.Categories.GetByID(ctx, v.CategoryID); err != nil {
		return err
	}
	if v.Status == "" {
		v.Status = domain.VehicleStatusAvailable
	}
	return repos.Vehicles.Create(ctx, v)
}

func (s *vehicleService) Update(ctx context.Context, v *domain.Vehicle) error {
	repos := s.store.Repos()
	if _, err := repos.Categories.GetByID(ctx, v.CategoryID); err != nil {
		return err
	}
	return repos.Vehicles.Update(ctx, v)
}

func (s *vehicleService) Get(ctx context.Context, id int32) (*domain.Vehicle, error) {
	return s.store.Repos().Vehicles.GetByID(ctx, id)
}

func (s *vehicleService) List(ctx context.Context, status domain.VehicleStatus, categoryID int32) ([]domain.Vehicle, error) {
	return s.store.Repos().Vehicles.List(ctx, status, categoryID)
}

// Delete removes a vehicle that has no rental history.
func (s *vehicleService) Delete(ctx context.Context, id int32) error {
	return s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		if _, err := r.Vehicles.GetByID(ctx, id); err != nil {
			return err
		}
		rentals, err := r.Rentals.ListByVehicle(ctx, id, nil)
		if err != nil {
			return err
		}
		if len(rentals) > 0 {
			return domain.NewBusinessRule("vehicle %d has rental history and cannot be deleted", id)
		}
		return r.Vehicles.Delete(ctx, id)
	})
}
