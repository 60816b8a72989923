package service

import (
	"context"
	"fmt"
	"time"

	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/dues"
	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/models"
	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options tunes the dues rules that are configurable per club
type Options struct {
	DefaultAmount      int64
	RegisterFirstMonth bool
}

// StudentService manages the roster
type StudentService struct {
	store  repository.Store
	logger *zap.Logger
	opts   Options
	now    func() time.Time
}

func NewStudentService(store repository.Store, logger *zap.Logger, opts Options) *StudentService {
	if opts.DefaultAmount <= 0 {
		opts.DefaultAmount = models.DefaultDuesAmount
	}
	return &StudentService{store: store, logger: logger, opts: opts, now: time.Now}
}

// List returns the filtered roster, most severe standing first
func (s *StudentService) List(ctx context.Context, f dues.RosterFilter) ([]models.Student, error) {
	students, err := s.store.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	students = dues.FilterRoster(students, f)
	dues.SortByWorstStatus(students)
	for i := range students {
		dues.Annotate(&students[i])
	}
	return students, nil
}

// Stats counts the students of a category (all when empty) by worst status
func (s *StudentService) Stats(ctx context.Context, category models.Category) (models.StatusCounts, error) {
	students, err := s.store.ListStudents(ctx)
	if err != nil {
		return models.StatusCounts{}, fmt.Errorf("failed to list students: %w", err)
	}
	return dues.CountByWorstStatus(dues.FilterRoster(students, dues.RosterFilter{Category: category})), nil
}

func (s *StudentService) Get(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	student, err := s.store.GetStudent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get student %s: %w", id, err)
	}
	dues.Annotate(student)
	return student, nil
}

// Outstanding returns the student's unpaid, pending and promised months, newest first
func (s *StudentService) Outstanding(ctx context.Context, id uuid.UUID) ([]models.Payment, error) {
	student, err := s.store.GetStudent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get student %s: %w", id, err)
	}
	return dues.OutstandingMonths(student.Payments), nil
}

// Create registers a student. When enabled, the month of registration is
// recorded as paid in the same write.
func (s *StudentService) Create(ctx context.Context, req models.StudentCreateRequest) (*models.Student, error) {
	now := s.now()
	student := &models.Student{
		ID:          uuid.New(),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Gender:      req.Gender,
		Category:    req.Category,
		PhoneNumber: req.PhoneNumber,
		PhoneLabel:  req.PhoneLabel,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := normalizeStudent(student); err != nil {
		return nil, err
	}

	var first *models.Payment
	if s.opts.RegisterFirstMonth {
		status := models.StatusCurrent
		p := dues.NewPayment(models.PaymentCreateRequest{
			StudentID: student.ID,
			Year:      now.Year(),
			Month:     int(now.Month()),
			Status:    &status,
		}, s.opts.DefaultAmount, now)
		first = &p
	}

	if err := s.store.CreateStudent(ctx, student, first); err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}
	dues.Annotate(student)

	s.logger.Info("student created",
		zap.String("student_id", student.ID.String()),
		zap.Bool("first_month_recorded", first != nil),
	)
	return student, nil
}

func (s *StudentService) Update(ctx context.Context, id uuid.UUID, req models.StudentUpdateRequest) (*models.Student, error) {
	if req.Empty() {
		return nil, invalid("", "no fields to update")
	}

	student, err := s.store.GetStudent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get student %s: %w", id, err)
	}
	req.Apply(student)
	if err := normalizeStudent(student); err != nil {
		return nil, err
	}

	if err := s.store.UpdateStudent(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to update student %s: %w", id, err)
	}
	dues.Annotate(student)

	s.logger.Info("student updated", zap.String("student_id", id.String()))
	return student, nil
}

// Delete removes the student together with its payment history
func (s *StudentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteStudent(ctx, id); err != nil {
		return fmt.Errorf("failed to delete student %s: %w", id, err)
	}
	s.logger.Info("student deleted", zap.String("student_id", id.String()))
	return nil
}
