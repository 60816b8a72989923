package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/dues"
	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/models"
	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService records and updates monthly dues
type PaymentService struct {
	store         repository.Store
	logger        *zap.Logger
	defaultAmount int64
	now           func() time.Time
}

func NewPaymentService(store repository.Store, logger *zap.Logger, opts Options) *PaymentService {
	if opts.DefaultAmount <= 0 {
		opts.DefaultAmount = models.DefaultDuesAmount
	}
	return &PaymentService{store: store, logger: logger, defaultAmount: opts.DefaultAmount, now: time.Now}
}

// Create adds a month for a student. It defaults to the pending status.
func (s *PaymentService) Create(ctx context.Context, req models.PaymentCreateRequest) (*models.Payment, error) {
	if req.StudentID == uuid.Nil {
		return nil, invalid("student_id", "is required")
	}
	if err := validatePeriod(req.Year, req.Month); err != nil {
		return nil, err
	}
	if err := validateStatus(req.Status); err != nil {
		return nil, err
	}
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}

	p := dues.NewPayment(req, s.defaultAmount, s.now())
	if err := s.store.CreatePayment(ctx, &p); err != nil {
		if errors.Is(err, dues.ErrMaxOutstandingExceeded) {
			s.logger.Info("payment rejected, outstanding cap reached",
				zap.String("student_id", req.StudentID.String()),
				zap.Int("year", req.Year),
				zap.Int("month", req.Month),
			)
		}
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	s.logger.Info("payment created",
		zap.String("payment_id", p.ID.String()),
		zap.String("student_id", p.StudentID.String()),
		zap.String("status", string(p.Status)),
	)
	return &p, nil
}

// Update changes status, reason, notes, amount or paid_at of a payment
func (s *PaymentService) Update(ctx context.Context, id uuid.UUID, u models.PaymentUpdate) (*models.Payment, error) {
	if u.Empty() {
		return nil, invalid("", "no fields to update")
	}
	if err := validateStatus(u.Status); err != nil {
		return nil, err
	}
	if err := validateAmount(u.Amount); err != nil {
		return nil, err
	}

	p, err := s.store.UpdatePayment(ctx, id, u, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to update payment %s: %w", id, err)
	}

	s.logger.Info("payment updated",
		zap.String("payment_id", id.String()),
		zap.String("status", string(p.Status)),
	)
	return p, nil
}

// History returns a student's payments, newest month first
func (s *PaymentService) History(ctx context.Context, studentID uuid.UUID) ([]models.Payment, error) {
	payments, err := s.store.ListPayments(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments of %s: %w", studentID, err)
	}
	dues.SortHistory(payments)
	return payments, nil
}

func (s *PaymentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeletePayment(ctx, id); err != nil {
		return fmt.Errorf("failed to delete payment %s: %w", id, err)
	}
	s.logger.Info("payment deleted", zap.String("payment_id", id.String()))
	return nil
}
