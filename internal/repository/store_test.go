package repository

import (
	"context"
	"testing"
	"time"

	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func seedStudent(t *testing.T, store Store) *models.Student {
	t.Helper()
	now := time.Now().UTC()
	s := &models.Student{
		ID:          uuid.New(),
		FirstName:   "Ana",
		LastName:    "Gomez",
		Gender:      models.GenderWoman,
		Category:    models.CategoryWomen,
		PhoneNumber: "1155551234",
		PhoneLabel:  models.PhoneMother,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, store.CreateStudent(context.Background(), s, nil))
	return s
}

func payment(studentID uuid.UUID, month int, status models.PaymentStatus) *models.Payment {
	now := time.Now().UTC()
	return &models.Payment{
		StudentID: studentID,
		Year:      2025,
		Month:     month,
		Amount:    models.DefaultDuesAmount,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
