package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/repository/postgres"
)

var rentalCols = []string{
	"id", "client_id", "vehicle_id", "employee_id", "start_date", "end_date", "status",
	"base_cost", "total_cost", "observations", "initial_odometer", "final_odometer",
	"cancel_reason", "cancelled_at", "cancelled_by", "created_on", "updated_on",
}

func rentalRow(mockTime time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(rentalCols).AddRow(
		1, 2, 3, 4, mockTime, mockTime.AddDate(0, 0, 3), "PENDING",
		"100", "140", "weekend trip", 5000, nil,
		nil, nil, nil, mockTime, mockTime,
	)
}

func TestRentalRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id").
			WithArgs(int32(1)).
			WillReturnRows(rentalRow(now))

		rt, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int32(1), rt.ID)
		assert.Equal(t, domain.RentalStatusPending, rt.Status)
		assert.Equal(t, "weekend trip", rt.Observations)
		require.NotNil(t, rt.InitialOdometer)
		assert.Equal(t, int32(5000), *rt.InitialOdometer)
		assert.Nil(t, rt.FinalOdometer)
		assert.True(t, rt.TotalCost.String() == "140")
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id").
			WithArgs(int32(9)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, 9)
		assert.True(t, domain.IsNotFound(err))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	rt := &domain.Rental{
		ClientID:   2,
		VehicleID:  3,
		EmployeeID: 4,
		StartDate:  time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC),
		Status:     domain.RentalStatusPending,
	}

	mock.ExpectQuery("INSERT INTO rentals").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	require.NoError(t, repo.Create(ctx, rt))
	assert.Equal(t, int32(7), rt.ID)
	assert.False(t, rt.CreatedOn.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_Update_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewRentalRepository(db)

	mock.ExpectExec("UPDATE rentals SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), &domain.Rental{ID: 99, Status: domain.RentalStatusPending})
	assert.True(t, domain.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_ListByVehicle(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM rentals WHERE vehicle_id").
		WithArgs(int32(3), domain.RentalStatusPending, domain.RentalStatusInProgress, domain.RentalStatusCheckout).
		WillReturnRows(rentalRow(now))

	rentals, err := repo.ListByVehicle(context.Background(), 3, domain.BlockingRentalStatuses)
	require.NoError(t, err)
	require.Len(t, rentals, 1)
	assert.Equal(t, int32(3), rentals[0].VehicleID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_WithinTx(t *testing.T) {
	t.Run("CommitsOnSuccess", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		store := postgres.NewStore(db)
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM rentals WHERE id").
			WithArgs(int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = store.WithinTx(context.Background(), func(r *repository.Repositories) error {
			return r.Rentals.Delete(context.Background(), 1)
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollsBackOnError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		store := postgres.NewStore(db)
		mock.ExpectBegin()
		mock.ExpectRollback()

		err = store.WithinTx(context.Background(), func(r *repository.Repositories) error {
			return domain.NewBusinessRule("nope")
		})
		assert.True(t, domain.IsBusinessRule(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
