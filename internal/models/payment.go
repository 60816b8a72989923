package models

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PaymentStatus of a single month's dues
type PaymentStatus string

const (
	StatusUnpaid   PaymentStatus = "unpaid"
	StatusPending  PaymentStatus = "pending"
	StatusPromised PaymentStatus = "promised"
	StatusCurrent  PaymentStatus = "current"
)

// DefaultDuesAmount is the monthly fee in minor units when none is configured
const DefaultDuesAmount int64 = 12000

// Payment is one month's dues entry for a student
type Payment struct {
	ID        uuid.UUID     `json:"id" db:"id"`
	StudentID uuid.UUID     `json:"student_id" db:"student_id"`
	Year      int           `json:"year" db:"year"`
	Month     int           `json:"month" db:"month"`
	Amount    int64         `json:"amount" db:"amount"`
	Status    PaymentStatus `json:"status" db:"status"`
	Reason    *string       `json:"reason" db:"reason"`
	Notes     *string       `json:"notes" db:"notes"`
	PaidAt    *time.Time    `json:"paid_at" db:"paid_at"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// PaymentCreateRequest is the request body for POST /payments
type PaymentCreateRequest struct {
	StudentID uuid.UUID      `json:"student_id" binding:"required"`
	Year      int            `json:"year" binding:"required"`
	Month     int            `json:"month" binding:"required"`
	Amount    *int64         `json:"amount,omitempty"`
	Status    *PaymentStatus `json:"status,omitempty"`
	Reason    *string        `json:"reason,omitempty"`
	Notes     *string        `json:"notes,omitempty"`
	PaidAt    *time.Time     `json:"paid_at,omitempty"`
}

// PaymentUpdate is the request body for PATCH /payments/:id.
// PaidAt distinguishes an absent field from an explicit null.
type PaymentUpdate struct {
	Status *PaymentStatus `json:"status,omitempty"`
	Reason *string        `json:"reason,omitempty"`
	Notes  *string        `json:"notes,omitempty"`
	Amount *int64         `json:"amount,omitempty"`
	PaidAt OptionalTime   `json:"paid_at"`
}

// Empty reports whether the update carries no fields
func (u PaymentUpdate) Empty() bool {
	return u.Status == nil && u.Reason == nil && u.Notes == nil && u.Amount == nil && !u.PaidAt.Set
}

// OptionalTime is a nullable timestamp that remembers whether it was present in the JSON body
type OptionalTime struct {
	Set  bool
	Time *time.Time
}

// NewOptionalTime returns a set OptionalTime holding t
func NewOptionalTime(t time.Time) OptionalTime {
	return OptionalTime{Set: true, Time: &t}
}

func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Time = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	o.Time = &t
	return nil
}
