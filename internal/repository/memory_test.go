package repository

import (
	"context"
	"testing"
	"time"

	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/dues"
	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_StudentLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	s := seedStudent(t, store)
	first := payment(s.ID, 1, models.StatusCurrent)
	other := &models.Student{ID: uuid.New(), FirstName: "Eva", LastName: "Ruiz", Category: models.CategoryWomen}
	require.NoError(t, store.CreateStudent(ctx, other, first))
	require.Len(t, other.Payments, 1)

	got, err := store.GetStudent(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, got.Payments, 1)
	assert.Equal(t, first.ID, got.Payments[0].ID)

	got.FirstName = "Changed"
	again, err := store.GetStudent(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "Eva", again.FirstName)

	all, err := store.ListStudents(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, store.DeleteStudent(ctx, other.ID))
	payments, err := store.ListPayments(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)
	assert.ErrorIs(t, store.DeleteStudent(ctx, other.ID), ErrStudentNotFound)

	err = store.UpdateStudent(ctx, other)
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestMemoryStore_PaymentGuard(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	s := seedStudent(t, store)

	for month := 1; month <= 3; month++ {
		require.NoError(t, store.CreatePayment(ctx, payment(s.ID, month, models.StatusPromised)))
	}
	assert.ErrorIs(t, store.CreatePayment(ctx, payment(s.ID, 4, models.StatusPending)), dues.ErrMaxOutstandingExceeded)
	assert.ErrorIs(t, store.CreatePayment(ctx, payment(uuid.New(), 4, models.StatusPending)), ErrStudentNotFound)

	paid := payment(s.ID, 4, models.StatusCurrent)
	require.NoError(t, store.CreatePayment(ctx, paid))

	pending := models.StatusPending
	_, err := store.UpdatePayment(ctx, paid.ID, models.PaymentUpdate{Status: &pending}, time.Now())
	assert.ErrorIs(t, err, dues.ErrMaxOutstandingExceeded)

	history, err := store.ListPayments(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, 4, history[0].Month)
	assert.Equal(t, models.StatusCurrent, history[0].Status)

	_, err = store.UpdatePayment(ctx, uuid.New(), models.PaymentUpdate{Status: &pending}, time.Now())
	assert.ErrorIs(t, err, ErrPaymentNotFound)
	assert.ErrorIs(t, store.DeletePayment(ctx, uuid.New()), ErrPaymentNotFound)
}

func TestMemoryStore_ListStudentsOrderIsDeterministic(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	same := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		s := &models.Student{ID: uuid.New(), FirstName: "Ana", LastName: "Gomez", CreatedAt: same, UpdatedAt: same}
		require.NoError(t, store.CreateStudent(ctx, s, nil))
	}
	newest := &models.Student{ID: uuid.New(), FirstName: "Eva", CreatedAt: same.Add(time.Minute)}
	require.NoError(t, store.CreateStudent(ctx, newest, nil))

	first, err := store.ListStudents(ctx)
	require.NoError(t, err)
	require.Len(t, first, 7)
	assert.Equal(t, newest.ID, first[0].ID)
	for i := 2; i < len(first); i++ {
		assert.Less(t, first[i-1].ID.String(), first[i].ID.String())
	}

	for i := 0; i < 10; i++ {
		again, err := store.ListStudents(ctx)
		require.NoError(t, err)
		for i := range first {
			assert.Equal(t, first[i].ID, again[i].ID)
		}
	}
}
