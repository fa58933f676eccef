package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/service"
)

func seedRental(store *memStore, base int64) int32 {
	clientID, _, vehicleID := seedBase(store)
	return store.addRental(domain.Rental{
		ClientID:  clientID,
		VehicleID: vehicleID,
		StartDate: domain.Today(),
		EndDate:   domain.Today().AddDate(0, 0, 3),
		Status:    domain.RentalStatusInProgress,
		BaseCost:  decimal.NewFromInt(base),
		TotalCost: decimal.NewFromInt(base),
	})
}

func TestChargeService_Add(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	rentalID := seedRental(store, 100)
	svc := service.NewChargeService(store)

	charge, err := svc.Add(ctx, service.ChargeInput{
		RentalID:    rentalID,
		Type:        domain.ChargePenalty,
		Amount:      decimal.NewFromInt(40),
		Description: "late return",
	})
	require.NoError(t, err)
	assert.False(t, charge.RecordedAt.IsZero())
	assert.True(t, store.rental(rentalID).TotalCost.Equal(decimal.NewFromInt(140)))

	_, err = svc.Add(ctx, service.ChargeInput{
		RentalID: rentalID,
		Type:     domain.ChargeDamage,
		Amount:   decimal.NewFromInt(60),
	})
	require.NoError(t, err)
	assert.True(t, store.rental(rentalID).TotalCost.Equal(decimal.NewFromInt(200)))

	t.Run("NonPositiveAmountRejected", func(t *testing.T) {
		_, err := svc.Add(ctx, service.ChargeInput{
			RentalID: rentalID,
			Type:     domain.ChargePenalty,
			Amount:   decimal.Zero,
		})
		require.Error(t, err)
		assert.True(t, domain.IsBusinessRule(err))
	})

	t.Run("UnknownRental", func(t *testing.T) {
		_, err := svc.Add(ctx, service.ChargeInput{
			RentalID: 999,
			Type:     domain.ChargePenalty,
			Amount:   decimal.NewFromInt(10),
		})
		require.Error(t, err)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestChargeService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("AmountChangeAdjustsTotal", func(t *testing.T) {
		store := newMemStore()
		rentalID := seedRental(store, 100)
		svc := service.NewChargeService(store)

		charge, err := svc.Add(ctx, service.ChargeInput{
			RentalID: rentalID,
			Type:     domain.ChargePenalty,
			Amount:   decimal.NewFromInt(40),
		})
		require.NoError(t, err)

		newAmount := decimal.NewFromInt(25)
		_, err = svc.Update(ctx, charge.ID, service.UpdateChargeInput{Amount: &newAmount})
		require.NoError(t, err)
		assert.True(t, store.rental(rentalID).TotalCost.Equal(decimal.NewFromInt(125)))
	})

	t.Run("RepointingMovesAmountBetweenRentals", func(t *testing.T) {
		store := newMemStore()
		rentalID := seedRental(store, 100)
		otherID := store.addRental(domain.Rental{
			ClientID:  store.rental(rentalID).ClientID,
			VehicleID: store.rental(rentalID).VehicleID,
			StartDate: domain.Today().AddDate(0, 1, 0),
			EndDate:   domain.Today().AddDate(0, 1, 3),
			Status:    domain.RentalStatusPending,
			BaseCost:  decimal.NewFromInt(200),
			TotalCost: decimal.NewFromInt(200),
		})
		svc := service.NewChargeService(store)

		charge, err := svc.Add(ctx, service.ChargeInput{
			RentalID: rentalID,
			Type:     domain.ChargeDamage,
			Amount:   decimal.NewFromInt(40),
		})
		require.NoError(t, err)

		newAmount := decimal.NewFromInt(70)
		updated, err := svc.Update(ctx, charge.ID, service.UpdateChargeInput{
			RentalID: &otherID,
			Amount:   &newAmount,
		})
		require.NoError(t, err)
		assert.Equal(t, otherID, updated.RentalID)
		assert.True(t, store.rental(rentalID).TotalCost.Equal(decimal.NewFromInt(100)),
			"old rental debited back to its base cost")
		assert.True(t, store.rental(otherID).TotalCost.Equal(decimal.NewFromInt(270)),
			"target rental credited with the new amount")
	})
}

func TestChargeService_List(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	rentalID := seedRental(store, 100)
	svc := service.NewChargeService(store)

	for _, amount := range []string{"19.99", "50", "120.50"} {
		v, err := decimal.NewFromString(amount)
		require.NoError(t, err)
		_, err = svc.Add(ctx, service.ChargeInput{
			RentalID: rentalID,
			Type:     domain.ChargePenalty,
			Amount:   v,
		})
		require.NoError(t, err)
	}

	t.Run("AmountRangeIsInclusive", func(t *testing.T) {
		from := decimal.NewFromInt(50)
		to := decimal.RequireFromString("120.50")
		charges, err := svc.List(ctx, repository.ChargeFilter{
			RentalID:   rentalID,
			AmountFrom: &from,
			AmountTo:   &to,
		})
		require.NoError(t, err)
		require.Len(t, charges, 2)
		for _, c := range charges {
			assert.True(t, c.Amount.GreaterThanOrEqual(from))
			assert.True(t, c.Amount.LessThanOrEqual(to))
		}
	})

	t.Run("LowerBoundExcludesCents", func(t *testing.T) {
		from := decimal.RequireFromString("20.00")
		charges, err := svc.List(ctx, repository.ChargeFilter{
			RentalID:   rentalID,
			AmountFrom: &from,
		})
		require.NoError(t, err)
		assert.Len(t, charges, 2, "19.99 sits below a 20.00 floor")
	})
}

func TestChargeService_Delete(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	rentalID := seedRental(store, 100)
	svc := service.NewChargeService(store)

	charge, err := svc.Add(ctx, service.ChargeInput{
		RentalID: rentalID,
		Type:     domain.ChargePenalty,
		Amount:   decimal.NewFromInt(40),
	})
	require.NoError(t, err)

	err = svc.Delete(ctx, charge.ID)
	require.NoError(t, err)
	assert.True(t, store.rental(rentalID).TotalCost.Equal(decimal.NewFromInt(100)))

	_, err = store.Repos().Charges.GetByID(ctx, charge.ID)
	assert.True(t, domain.IsNotFound(err))
}
