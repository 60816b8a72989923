package repository

import (
	"context"
	"errors"
	"time"

	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/models"
	"github.com/google/uuid"
)

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrPaymentNotFound = errors.New("payment not found")
)

// Store persists students and their payments.
//
// CreateStudent, CreatePayment and UpdatePayment run the outstanding-months
// guard inside the same atomic section as the write, so concurrent requests
// for one student cannot push it past the cap.
type Store interface {
	// ListStudents returns every student with its payments, newest registration first
	ListStudents(ctx context.Context) ([]models.Student, error)
	GetStudent(ctx context.Context, id uuid.UUID) (*models.Student, error)
	// CreateStudent inserts s and, when first is not nil, its first payment
	CreateStudent(ctx context.Context, s *models.Student, first *models.Payment) error
	UpdateStudent(ctx context.Context, s *models.Student) error
	// DeleteStudent removes the student and all of its payments
	DeleteStudent(ctx context.Context, id uuid.UUID) error

	CreatePayment(ctx context.Context, p *models.Payment) error
	// UpdatePayment applies u to the payment and returns the stored result
	UpdatePayment(ctx context.Context, id uuid.UUID, u models.PaymentUpdate, now time.Time) (*models.Payment, error)
	// ListPayments returns the history of one student, year and month descending
	ListPayments(ctx context.Context, studentID uuid.UUID) ([]models.Payment, error)
	DeletePayment(ctx context.Context, id uuid.UUID) error

	Health(ctx context.Context) error
	Name() string
}
