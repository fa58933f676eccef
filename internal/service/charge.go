package service

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
)

type chargeService struct {
	store repository.Store
}

func NewChargeService(store repository.Store) ChargeService {
	return &chargeService{store: store}
}

// Add records a penalty or damage against a rental. The charge insert and
// the total-cost increment are one unit of work; after it commits,
// total_cost == base_cost + sum of the rental's charges.
func (s *chargeService) Add(ctx context.Context, in ChargeInput) (*domain.Charge, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.NewBusinessRule("charge amount must be positive")
	}

	var charge *domain.Charge
	err := s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		rental, err := r.Rentals.GetByID(ctx, in.RentalID)
		if err != nil {
			return err
		}

		charge = &domain.Charge{
			RentalID:    in.RentalID,
			Type:        in.Type,
			Amount:      in.Amount,
			Description: in.Description,
			RecordedAt:  time.Now(),
		}
		if err := r.Charges.Create(ctx, charge); err != nil {
			return err
		}

		rental.TotalCost = rental.TotalCost.Add(in.Amount)
		return r.Rentals.Update(ctx, rental)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Charge recorded", "charge_id", charge.ID, "rental_id", charge.RentalID, "type", charge.Type, "amount", charge.Amount)
	return charge, nil
}

// Update edits a charge, keeping the owning rental's total consistent.
// Re-pointing the charge to another rental debits the old rental and
// credits the new one in the same transaction.
func (s *chargeService) Update(ctx context.Context, id int32, in UpdateChargeInput) (*domain.Charge, error) {
	if in.Amount != nil && !in.Amount.IsPositive() {
		return nil, domain.NewBusinessRule("charge amount must be positive")
	}

	var charge *domain.Charge
	err := s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		var err error
		charge, err = r.Charges.GetByID(ctx, id)
		if err != nil {
			return err
		}
		owner, err := r.Rentals.GetByID(ctx, charge.RentalID)
		if err != nil {
			return err
		}

		oldAmount := charge.Amount
		newAmount := oldAmount
		if in.Amount != nil {
			newAmount = *in.Amount
		}

		if in.RentalID != nil && *in.RentalID != charge.RentalID {
			target, err := r.Rentals.GetByID(ctx, *in.RentalID)
			if err != nil {
				return err
			}
			owner.TotalCost = owner.TotalCost.Sub(oldAmount)
			if err := r.Rentals.Update(ctx, owner); err != nil {
				return err
			}
			target.TotalCost = target.TotalCost.Add(newAmount)
			if err := r.Rentals.Update(ctx, target); err != nil {
				return err
			}
			charge.RentalID = *in.RentalID
		} else if in.Amount != nil {
			owner.TotalCost = owner.TotalCost.Sub(oldAmount).Add(newAmount)
			if err := r.Rentals.Update(ctx, owner); err != nil {
				return err
			}
		}

		charge.Amount = newAmount
		if in.Type != nil {
			charge.Type = *in.Type
		}
		if in.Description != nil {
			charge.Description = *in.Description
		}
		return r.Charges.Update(ctx, charge)
	})
	if err != nil {
		return nil, err
	}
	return charge, nil
}

func (s *chargeService) Get(ctx context.Context, id int32) (*domain.Charge, error) {
	return s.store.Repos().Charges.GetByID(ctx, id)
}

func (s *chargeService) List(ctx context.Context, f repository.ChargeFilter) ([]domain.Charge, error) {
	return s.store.Repos().Charges.List(ctx, f)
}

func (s *chargeService) ListByRental(ctx context.Context, rentalID int32) ([]domain.Charge, error) {
	repos := s.store.Repos()
	if _, err := repos.Rentals.GetByID(ctx, rentalID); err != nil {
		return nil, err
	}
	return repos.Charges.ListByRental(ctx, rentalID)
}

// Delete removes a charge and debits its amount from the owning rental.
func (s *chargeService) Delete(ctx context.Context, id int32) error {
	return s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		charge, err := r.Charges.GetByID(ctx, id)
		if err != nil {
			return err
		}
		rental, err := r.Rentals.GetByID(ctx, charge.RentalID)
		if err != nil {
			return err
		}
		rental.TotalCost = rental.TotalCost.Sub(charge.Amount)
		if err := r.Rentals.Update(ctx, rental); err != nil {
			return err
		}
		return r.Charges.Delete(ctx, id)
	})
}
