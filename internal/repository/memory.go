package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/dues"
	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/models"
	"github.com/google/uuid"
)

// MemoryStore keeps the roster in process memory when the database is disabled.
// The mutex makes every guarded write atomic.
type MemoryStore struct {
	mu       sync.RWMutex
	students map[uuid.UUID]models.Student
	payments map[uuid.UUID]models.Payment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		students: map[uuid.UUID]models.Student{},
		payments: map[uuid.UUID]models.Payment{},
	}
}

func (m *MemoryStore) Name() string { return "memory" }

func (m *MemoryStore) Health(_ context.Context) error { return nil }

func (m *MemoryStore) ListStudents(_ context.Context) ([]models.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Student, 0, len(m.students))
	for _, s := range m.students {
		s.Payments = m.paymentsOf(s.ID)
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (m *MemoryStore) GetStudent(_ context.Context, id uuid.UUID) (*models.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.students[id]
	if !ok {
		return nil, ErrStudentNotFound
	}
	s.Payments = m.paymentsOf(id)
	return &s, nil
}

func (m *MemoryStore) CreateStudent(_ context.Context, s *models.Student, first *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	stored := *s
	stored.Payments = nil
	m.students[s.ID] = stored

	s.Payments = []models.Payment{}
	if first != nil {
		first.StudentID = s.ID
		if first.ID == uuid.Nil {
			first.ID = uuid.New()
		}
		m.payments[first.ID] = clonePayment(*first)
		s.Payments = append(s.Payments, clonePayment(*first))
	}
	return nil
}

func (m *MemoryStore) UpdateStudent(_ context.Context, s *models.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.students[s.ID]; !ok {
		return ErrStudentNotFound
	}
	stored := *s
	stored.Payments = nil
	m.students[s.ID] = stored
	return nil
}

func (m *MemoryStore) DeleteStudent(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.students[id]; !ok {
		return ErrStudentNotFound
	}
	delete(m.students, id)
	for pid, p := range m.payments {
		if p.StudentID == id {
			delete(m.payments, pid)
		}
	}
	return nil
}

func (m *MemoryStore) CreatePayment(_ context.Context, p *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.students[p.StudentID]; !ok {
		return ErrStudentNotFound
	}
	if err := dues.CanAdd(m.paymentsOf(p.StudentID), p.Status); err != nil {
		return err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.payments[p.ID] = clonePayment(*p)
	return nil
}

func (m *MemoryStore) UpdatePayment(_ context.Context, id uuid.UUID, u models.PaymentUpdate, now time.Time) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.payments[id]
	if !ok {
		return nil, ErrPaymentNotFound
	}
	next := clonePayment(current)
	dues.ApplyUpdate(&next, u, now)
	if next.Status != current.Status {
		if err := dues.CanTransition(m.paymentsOf(current.StudentID), id, next.Status); err != nil {
			return nil, err
		}
	}
	m.payments[id] = next
	out := clonePayment(next)
	return &out, nil
}

func (m *MemoryStore) ListPayments(_ context.Context, studentID uuid.UUID) ([]models.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.paymentsOf(studentID), nil
}

func (m *MemoryStore) DeletePayment(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.payments[id]; !ok {
		return ErrPaymentNotFound
	}
	delete(m.payments, id)
	return nil
}

// paymentsOf returns copies of the student's payments; callers hold the lock
func (m *MemoryStore) paymentsOf(studentID uuid.UUID) []models.Payment {
	out := []models.Payment{}
	for _, p := range m.payments {
		if p.StudentID == studentID {
			out = append(out, clonePayment(p))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		if out[i].Month != out[j].Month {
			return out[i].Month > out[j].Month
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func clonePayment(p models.Payment) models.Payment {
	if p.Reason != nil {
		r := *p.Reason
		p.Reason = &r
	}
	if p.Notes != nil {
		n := *p.Notes
		p.Notes = &n
	}
	if p.PaidAt != nil {
		t := *p.PaidAt
		p.PaidAt = &t
	}
	return p
}
