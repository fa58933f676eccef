package service

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type clientService struct {
	store repository.Store
}

func NewClientService(store repository.Store) ClientService {
	return &clientService{store: store}
}

func (s *clientService) Create(ctx context.Context, c *domain.Client) error {
	return s.store.Repos().Clients.Create(ctx, c)
}

func (s *clientService) Update(ctx context.Context, c *domain.Client) error {
	return s.store.Repos().Clients.Update(ctx, c)
}

func (s *clientService) Get(ctx context.Context, id int32) (*domain.Client, error) {
	return s.store.Repos().Clients.GetByID(ctx, id)
}

func (s *clientService) List(ctx context.Context, query string) ([]domain.Client, error) {
	return s.store.Repos().Clients.List(ctx, query)
}

// Delete removes a client that has no rental history.
func (s *clientService) Delete(ctx context.Context, id int32) error {
	return s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		if _, err := r.Clients.GetByID(ctx, id); err != nil {
			return err
		}
		rentals, err := r.Rentals.List(ctx, repository.RentalFilter{ClientID: id})
		if err != nil {
			return err
		}
		if len(rentals) > 0 {
			return domain.NewBusinessRule("client %d has rental history and cannot be deleted", id)
		}
		return r.Clients.Delete(ctx, id)
	})
}

func (s *clientService) RentalHistory(ctx context.Context, clientID int32, page, pageSize int32, from, to *time.Time) ([]domain.Rental, int32, error) {
	repos := s.store.Repos()
	if _, err := repos.Clients.GetByID(ctx, clientID); err != nil {
		return nil, 0, err
	}
	return repos.Rentals.ListByClient(ctx, clientID, page, pageSize, from, to)
}
