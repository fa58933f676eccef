package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository/postgres"
)

func TestChargeRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewChargeRepository(db)

	charge := &domain.Charge{
		RentalID:    5,
		Type:        domain.ChargePenalty,
		Amount:      decimal.NewFromInt(40),
		Description: "late return",
		RecordedAt:  time.Now(),
	}

	mock.ExpectQuery("INSERT INTO charges").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	require.NoError(t, repo.Create(context.Background(), charge))
	assert.Equal(t, int32(11), charge.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChargeRepository_CountByRental(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewChargeRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM charges WHERE rental_id`).
		WithArgs(int32(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountByRental(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int32(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVehicleRepository_GetByIDForUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewVehicleRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "plate", "brand", "model", "year", "category_id", "status",
		"odometer", "last_maintenance_date", "created_on", "updated_on",
	}).AddRow(3, "AB123CD", "Toyota", "Corolla", 2022, 1, "AVAILABLE", 5000, nil, now, now)

	mock.ExpectQuery("SELECT (.+) FROM vehicles WHERE id (.+) FOR UPDATE").
		WithArgs(int32(3)).
		WillReturnRows(rows)

	vehicle, err := repo.GetByIDForUpdate(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleStatusAvailable, vehicle.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
