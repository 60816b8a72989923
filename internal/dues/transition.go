package dues

import (
	"time"

	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/models"
	"github.com/google/uuid"
)

// NewPayment builds a payment record from a create request, filling the
// default amount and the pending status when the caller left them out.
// A record created directly as current is stamped with now unless the
// request carries its own paid_at. Any other status starts without paid_at.
func NewPayment(req models.PaymentCreateRequest, defaultAmount int64, now time.Time) models.Payment {
	p := models.Payment{
		ID:        uuid.New(),
		StudentID: req.StudentID,
		Year:      req.Year,
		Month:     req.Month,
		Amount:    defaultAmount,
		Status:    models.StatusPending,
		Reason:    req.Reason,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Amount != nil {
		p.Amount = *req.Amount
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	if p.Status == models.StatusCurrent {
		paid := now
		if req.PaidAt != nil {
			paid = *req.PaidAt
		}
		p.PaidAt = &paid
	}
	return p
}

// ApplyUpdate copies the fields present in u onto p.
//
// Setting the status to current stamps paid_at with now unless u carries
// paid_at itself. An explicit paid_at, null included, is written as given.
// Leaving current does not clear paid_at, and reason is kept as is.
func ApplyUpdate(p *models.Payment, u models.PaymentUpdate, now time.Time) {
	if u.Status != nil {
		p.Status = *u.Status
		if p.Status == models.StatusCurrent && !u.PaidAt.Set {
			paid := now
			p.PaidAt = &paid
		}
	}
	if u.Reason != nil {
		p.Reason = u.Reason
	}
	if u.Notes != nil {
		p.Notes = u.Notes
	}
	if u.Amount != nil {
		p.Amount = *u.Amount
	}
	if u.PaidAt.Set {
		if u.PaidAt.Time == nil {
			p.PaidAt = nil
		} else {
			paid := *u.PaidAt.Time
			p.PaidAt = &paid
		}
	}
	p.UpdatedAt = now
}
