package dues

import (
	"errors"

	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/models"
	"github.com/google/uuid"
)

// MaxOutstanding is the number of unpaid, pending or promised months a member may carry at once
const MaxOutstanding = 3

// ErrMaxOutstandingExceeded is returned when a write would give a member a fourth outstanding month
var ErrMaxOutstandingExceeded = errors.New("member already has 3 outstanding months; cannot add more")

// CountOutstanding counts the outstanding records in payments, skipping the one with id exclude
func CountOutstanding(payments []models.Payment, exclude uuid.UUID) int {
	n := 0
	for _, p := range payments {
		if exclude != uuid.Nil && p.ID == exclude {
			continue
		}
		if Outstanding(p.Status) {
			n++
		}
	}
	return n
}

// CanAdd checks whether a new record with the proposed status may be added
// to a member whose current records are existing.
//
// The check is a pure predicate. Callers must run it in the same atomic
// section as the write it guards.
func CanAdd(existing []models.Payment, proposed models.PaymentStatus) error {
	return check(existing, uuid.Nil, proposed)
}

// CanTransition checks whether the record paymentID may move to next
func CanTransition(existing []models.Payment, paymentID uuid.UUID, next models.PaymentStatus) error {
	return check(existing, paymentID, next)
}

func check(existing []models.Payment, exclude uuid.UUID, status models.PaymentStatus) error {
	if !Outstanding(status) {
		return nil
	}
	if CountOutstanding(existing, exclude) >= MaxOutstanding {
		return ErrMaxOutstandingExceeded
	}
	return nil
}
