package service

import (
	"context"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type categoryService struct {
	store repository.Store
}

func NewCategoryService(store repository.Store) CategoryService {
	return &categoryService{store: store}
}

func (s *categoryService) Create(ctx context.Context, c *domain.VehicleCategory) error {
	return s.store.Repos().Categories.Create(ctx, c)
}

func (s *categoryService) Update(ctx context.Context, c *domain.VehicleCategory) error {
	return s.store.Repos().Categories.Update(ctx, c)
}

func (s *categoryService) Get(ctx context.Context, id int32) (*domain.VehicleCategory, error) {
	return s.store.Repos().Categories.GetByID(ctx, id)
}

func (s *categoryService) List(ctx context.Context) ([]domain.VehicleCategory, error) {
	return s.store.Repos().Categories.List(ctx)
}

func (s *categoryService) Delete(ctx context.Context, id int32) error {
	return s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		if _, err := r.Categories.GetByID(ctx, id); err != nil {
			return err
		}
		vehicles, err := r.Vehicles.List(ctx, "", id)
		if err != nil {
			return err
		}
		if len(vehicles) > 0 {
			return domain.NewBusinessRule("category %d has vehicles and cannot be deleted", id)
		}
		return r.Categories.Delete(ctx, id)
	})
}
