package repository

import (
	"context"
	"errors"
	"time"

	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/database"
	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/dues"
	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const paymentColumns = `id, student_id, year, month, amount, status, reason, notes, paid_at, created_at, updated_at`

const studentColumns = `id, first_name, last_name, gender, category, phone_number, phone_label, created_at, updated_at`

// PostgresStore is the Store backed by the club's Postgres database
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (r *PostgresStore) Name() string { return "postgres" }

func (r *PostgresStore) Health(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// ListStudents loads the roster and all payments in two queries
func (r *PostgresStore) ListStudents(ctx context.Context) ([]models.Student, error) {
	rows, err := r.db.Query(ctx, `SELECT `+studentColumns+` FROM students ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []models.Student{}
	index := map[uuid.UUID]int{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		s.Payments = []models.Payment{}
		index[s.ID] = len(students)
		students = append(students, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	prows, err := r.db.Query(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY year DESC, month DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer prows.Close()

	for prows.Next() {
		p, err := scanPayment(prows)
		if err != nil {
			return nil, err
		}
		if i, ok := index[p.StudentID]; ok {
			students[i].Payments = append(students[i].Payments, *p)
		}
	}
	return students, prows.Err()
}

func (r *PostgresStore) GetStudent(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	s, err := scanStudent(r.db.QueryRow(ctx, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	s.Payments, err = r.ListPayments(ctx, id)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *PostgresStore) CreateStudent(ctx context.Context, s *models.Student, first *models.Payment) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO students (id, first_name, last_name, gender, category, phone_number, phone_label, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING created_at, updated_at
	`, s.ID, s.FirstName, s.LastName, s.Gender, s.Category, s.PhoneNumber, s.PhoneLabel, s.CreatedAt,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return mapError(err)
	}

	s.Payments = []models.Payment{}
	if first != nil {
		first.StudentID = s.ID
		if err := insertPayment(ctx, tx, first); err != nil {
			return err
		}
		s.Payments = append(s.Payments, *first)
	}

	return tx.Commit(ctx)
}

func (r *PostgresStore) UpdateStudent(ctx context.Context, s *models.Student) error {
	err := r.db.QueryRow(ctx, `
		UPDATE students
		SET first_name = $1, last_name = $2, gender = $3, category = $4,
			phone_number = $5, phone_label = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`, s.FirstName, s.LastName, s.Gender, s.Category, s.PhoneNumber, s.PhoneLabel, s.ID,
	).Scan(&s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrStudentNotFound
		}
		return mapError(err)
	}
	return nil
}

// DeleteStudent relies on ON DELETE CASCADE for the payments
func (r *PostgresStore) DeleteStudent(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrStudentNotFound
	}
	return nil
}

// CreatePayment locks the student row before counting so two concurrent
// inserts for one student are serialized
func (r *PostgresStore) CreatePayment(ctx context.Context, p *models.Payment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	existing, err := lockStudentPayments(ctx, tx, p.StudentID)
	if err != nil {
		return err
	}
	if err := dues.CanAdd(existing, p.Status); err != nil {
		return err
	}
	if err := insertPayment(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PostgresStore) UpdatePayment(ctx context.Context, id uuid.UUID, u models.PaymentUpdate, now time.Time) (*models.Payment, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var studentID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT student_id FROM payments WHERE id = $1`, id).Scan(&studentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	existing, err := lockStudentPayments(ctx, tx, studentID)
	if err != nil {
		return nil, err
	}

	var current *models.Payment
	for i := range existing {
		if existing[i].ID == id {
			current = &existing[i]
			break
		}
	}
	if current == nil {
		// deleted between the lookup and the lock
		return nil, ErrPaymentNotFound
	}

	next := *current
	dues.ApplyUpdate(&next, u, now)
	if next.Status != current.Status {
		if err := dues.CanTransition(existing, id, next.Status); err != nil {
			return nil, err
		}
	}

	updated, err := scanPayment(tx.QueryRow(ctx, `
		UPDATE payments
		SET status = $1, reason = $2, notes = $3, amount = $4, paid_at = $5, updated_at = $6
		WHERE id = $7
		RETURNING `+paymentColumns,
		next.Status, next.Reason, next.Notes, next.Amount, next.PaidAt, next.UpdatedAt, id,
	))
	if err != nil {
		return nil, mapError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *PostgresStore) ListPayments(ctx context.Context, studentID uuid.UUID) ([]models.Payment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+paymentColumns+`
		FROM payments
		WHERE student_id = $1
		ORDER BY year DESC, month DESC, created_at DESC
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

func (r *PostgresStore) DeletePayment(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

// lockStudentPayments takes the student row lock and returns its payments
func lockStudentPayments(ctx context.Context, tx pgx.Tx, studentID uuid.UUID) ([]models.Payment, error) {
	var locked uuid.UUID
	err := tx.QueryRow(ctx, `SELECT id FROM students WHERE id = $1 FOR UPDATE`, studentID).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	rows, err := tx.Query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE student_id = $1`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

func insertPayment(ctx context.Context, tx pgx.Tx, p *models.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	err := tx.QueryRow(ctx, `
		INSERT INTO payments (id, student_id, year, month, amount, status, reason, notes, paid_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING created_at, updated_at
	`, p.ID, p.StudentID, p.Year, p.Month, p.Amount, p.Status, p.Reason, p.Notes, p.PaidAt, p.CreatedAt,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	return mapError(err)
}

func collectPayments(rows pgx.Rows) ([]models.Payment, error) {
	payments := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID,
		&s.FirstName,
		&s.LastName,
		&s.Gender,
		&s.Category,
		&s.PhoneNumber,
		&s.PhoneLabel,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	err := row.Scan(
		&p.ID,
		&p.StudentID,
		&p.Year,
		&p.Month,
		&p.Amount,
		&p.Status,
		&p.Reason,
		&p.Notes,
		&p.PaidAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// mapError turns the database's constraint signals into typed errors
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch {
	case pgErr.Code == database.CodeCheckViolation && pgErr.ConstraintName == database.ConstraintMaxOutstanding:
		return dues.ErrMaxOutstandingExceeded
	case pgErr.Code == database.CodeForeignKeyViolation:
		return ErrStudentNotFound
	}
	return err
}
