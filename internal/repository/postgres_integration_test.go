//go:build integration

package repository

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/database"
	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/dues"
	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run with: TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/repository/
func newPostgresStore(t *testing.T) (*PostgresStore, *pgxpool.Pool) {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := database.Connect(ctx, database.PoolConfig{URL: url, MaxConns: 8})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE students CASCADE`)
	require.NoError(t, err)

	return NewPostgresStore(pool), pool
}

func TestPostgres_GuardOnCreateAndUpdate(t *testing.T) {
	store, _ := newPostgresStore(t)
	ctx := context.Background()
	s := seedStudent(t, store)

	for month := 1; month <= 3; month++ {
		require.NoError(t, store.CreatePayment(ctx, payment(s.ID, month, models.StatusPending)))
	}
	assert.ErrorIs(t, store.CreatePayment(ctx, payment(s.ID, 4, models.StatusUnpaid)), dues.ErrMaxOutstandingExceeded)

	paid := payment(s.ID, 4, models.StatusCurrent)
	require.NoError(t, store.CreatePayment(ctx, paid))

	unpaid := models.StatusUnpaid
	_, err := store.UpdatePayment(ctx, paid.ID, models.PaymentUpdate{Status: &unpaid}, time.Now())
	assert.ErrorIs(t, err, dues.ErrMaxOutstandingExceeded)

	got, err := store.GetStudent(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, dues.CountOutstanding(got.Payments, uuid.Nil))
}

func TestPostgres_UpdateStampsPaidAt(t *testing.T) {
	store, _ := newPostgresStore(t)
	ctx := context.Background()
	s := seedStudent(t, store)

	p := payment(s.ID, 5, models.StatusPending)
	require.NoError(t, store.CreatePayment(ctx, p))

	current := models.StatusCurrent
	now := time.Now().UTC().Truncate(time.Microsecond)
	updated, err := store.UpdatePayment(ctx, p.ID, models.PaymentUpdate{Status: &current}, now)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCurrent, updated.Status)
	require.NotNil(t, updated.PaidAt)
	assert.True(t, now.Equal(*updated.PaidAt))

	_, err = store.UpdatePayment(ctx, uuid.New(), models.PaymentUpdate{Status: &current}, now)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestPostgres_TriggerBackstop(t *testing.T) {
	store, pool := newPostgresStore(t)
	ctx := context.Background()
	s := seedStudent(t, store)

	for month := 1; month <= 3; month++ {
		require.NoError(t, store.CreatePayment(ctx, payment(s.ID, month, models.StatusUnpaid)))
	}

	// a write that skips the application check
	_, err := pool.Exec(ctx,
		`INSERT INTO payments (id, student_id, year, month, status) VALUES ($1, $2, 2025, 4, 'pending')`,
		uuid.New(), s.ID,
	)
	require.Error(t, err)
	assert.ErrorIs(t, mapError(err), dues.ErrMaxOutstandingExceeded)
}

func TestPostgres_ConcurrentCreatesRespectCap(t *testing.T) {
	store, _ := newPostgresStore(t)
	ctx := context.Background()
	s := seedStudent(t, store)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for month := 1; month <= 8; month++ {
		wg.Add(1)
		go func(month int) {
			defer wg.Done()
			errs <- store.CreatePayment(ctx, payment(s.ID, month, models.StatusPending))
		}(month)
	}
	wg.Wait()
	close(errs)

	accepted := 0
	for err := range errs {
		if err == nil {
			accepted++
			continue
		}
		assert.ErrorIs(t, err, dues.ErrMaxOutstandingExceeded)
	}
	assert.Equal(t, dues.MaxOutstanding, accepted)
}

func TestPostgres_DeleteStudentCascades(t *testing.T) {
	store, _ := newPostgresStore(t)
	ctx := context.Background()
	s := seedStudent(t, store)
	require.NoError(t, store.CreatePayment(ctx, payment(s.ID, 1, models.StatusCurrent)))

	require.NoError(t, store.DeleteStudent(ctx, s.ID))
	payments, err := store.ListPayments(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)

	assert.ErrorIs(t, store.DeleteStudent(ctx, s.ID), ErrStudentNotFound)
	_, err = store.GetStudent(ctx, s.ID)
	assert.ErrorIs(t, err, ErrStudentNotFound)
	assert.ErrorIs(t, store.CreatePayment(ctx, payment(s.ID, 2, models.StatusPending)), ErrStudentNotFound)
}
