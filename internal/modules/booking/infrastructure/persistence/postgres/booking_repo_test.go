package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendly/lendly-backend/internal/modules/booking/domain"
	notifdomain "github.com/lendly/lendly-backend/internal/modules/notification/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func fixtureBooking(t *testing.T) (*domain.Booking, *notifdomain.Notification) {
	t.Helper()
	booker := uuid.New()
	owner := uuid.New()
	community := uuid.New()

	b, err := domain.NewBooking(booker, uuid.New(), community, domain.TimeFrameASAP, nil, nil)
	require.NoError(t, err)
	n, err := notifdomain.NewBookingNotification(booker, owner, community, b.ID)
	require.NoError(t, err)
	return b, n
}

func TestPgBookingRepository_CreateWithNotification(t *testing.T) {
	t.Run("both rows land in one transaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPgBookingRepository(db)
		b, n := fixtureBooking(t)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO bookings").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO notifications").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.CreateWithNotification(context.Background(), b, n))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("notification failure rolls the booking back", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPgBookingRepository(db)
		b, n := fixtureBooking(t)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO bookings").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO notifications").
			WillReturnError(errors.New("constraint violation"))
		mock.ExpectRollback()

		assert.Error(t, repo.CreateWithNotification(context.Background(), b, n))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgBookingRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPgBookingRepository(db)

	id := uuid.New()
	now := time.Now()
	columns := []string{"id", "post_id", "booker_id", "community_id", "status", "time_frame", "date_need", "date_return", "created_at", "updated_at"}

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(columns).
			AddRow(id, uuid.New(), uuid.New(), uuid.New(), "pending", "asap", nil, nil, now, now)
		mock.ExpectQuery("SELECT \\* FROM bookings").
			WithArgs(id).
			WillReturnRows(rows)

		b, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, b.ID)
		assert.Equal(t, domain.StatusPending, b.Status)
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM bookings").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	})
}

func TestPgBookingRepository_UpdateStatus(t *testing.T) {
	id := uuid.New()

	t.Run("wins while still pending", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPgBookingRepository(db)

		mock.ExpectExec("UPDATE bookings").
			WithArgs(id, domain.StatusAccepted).
			WillReturnResult(sqlmock.NewResult(0, 1))

		updated, err := repo.UpdateStatus(context.Background(), id, domain.StatusAccepted)
		require.NoError(t, err)
		assert.True(t, updated)
	})

	t.Run("loses when already resolved", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPgBookingRepository(db)

		mock.ExpectExec("UPDATE bookings").
			WithArgs(id, domain.StatusDeclined).
			WillReturnResult(sqlmock.NewResult(0, 0))

		updated, err := repo.UpdateStatus(context.Background(), id, domain.StatusDeclined)
		require.NoError(t, err)
		assert.False(t, updated)
	})
}
