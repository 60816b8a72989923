package models

import (
	"time"

	"github.com/google/uuid"
)

// Gender of a club member
type Gender string

const (
	GenderWoman Gender = "woman"
	GenderMan   Gender = "man"
	GenderOther Gender = "other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderWoman, GenderMan, GenderOther:
		return true
	}
	return false
}

// Category is the roster segment a member trains in. It is independent of Gender.
type Category string

const (
	CategoryWomen Category = "women"
	CategoryMen   Category = "men"
)

func (c Category) Valid() bool {
	return c == CategoryWomen || c == CategoryMen
}

// PhoneLabel says who answers the member's contact phone
type PhoneLabel string

const (
	PhoneSelf     PhoneLabel = "self"
	PhoneFather   PhoneLabel = "father"
	PhoneMother   PhoneLabel = "mother"
	PhoneGuardian PhoneLabel = "guardian"
	PhoneOther    PhoneLabel = "other"
)

func (p PhoneLabel) Valid() bool {
	switch p {
	case PhoneSelf, PhoneFather, PhoneMother, PhoneGuardian, PhoneOther:
		return true
	}
	return false
}

// Student represents a club member tracked for dues
type Student struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	FirstName   string     `json:"first_name" db:"first_name"`
	LastName    string     `json:"last_name" db:"last_name"`
	Gender      Gender     `json:"gender" db:"gender"`
	Category    Category   `json:"category" db:"category"`
	PhoneNumber string     `json:"phone_number" db:"phone_number"`
	PhoneLabel  PhoneLabel `json:"phone_label" db:"phone_label"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`

	Payments []Payment `json:"payments" db:"-"`

	// Computed from Payments before the student leaves the service layer
	WorstStatus      PaymentStatus `json:"worst_status" db:"-"`
	OutstandingCount int           `json:"outstanding_count" db:"-"`
}

// StudentCreateRequest is the request body for POST /students
type StudentCreateRequest struct {
	FirstName   string     `json:"first_name" binding:"required"`
	LastName    string     `json:"last_name" binding:"required"`
	Gender      Gender     `json:"gender" binding:"required"`
	Category    Category   `json:"category" binding:"required"`
	PhoneNumber string     `json:"phone_number" binding:"required"`
	PhoneLabel  PhoneLabel `json:"phone_label" binding:"required"`
}

// StudentUpdateRequest is the request body for PATCH /students/:id
type StudentUpdateRequest struct {
	FirstName   *string     `json:"first_name,omitempty"`
	LastName    *string     `json:"last_name,omitempty"`
	Gender      *Gender     `json:"gender,omitempty"`
	Category    *Category   `json:"category,omitempty"`
	PhoneNumber *string     `json:"phone_number,omitempty"`
	PhoneLabel  *PhoneLabel `json:"phone_label,omitempty"`
}

// Empty reports whether the update carries no fields
func (r StudentUpdateRequest) Empty() bool {
	return r.FirstName == nil && r.LastName == nil && r.Gender == nil &&
		r.Category == nil && r.PhoneNumber == nil && r.PhoneLabel == nil
}

// Apply copies the non-nil fields onto s
func (r StudentUpdateRequest) Apply(s *Student) {
	if r.FirstName != nil {
		s.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		s.LastName = *r.LastName
	}
	if r.Gender != nil {
		s.Gender = *r.Gender
	}
	if r.Category != nil {
		s.Category = *r.Category
	}
	if r.PhoneNumber != nil {
		s.PhoneNumber = *r.PhoneNumber
	}
	if r.PhoneLabel != nil {
		s.PhoneLabel = *r.PhoneLabel
	}
}

// StatusCounts holds the dashboard tile counts, keyed by worst status
type StatusCounts struct {
	Unpaid   int `json:"unpaid"`
	Pending  int `json:"pending"`
	Promised int `json:"promised"`
	Current  int `json:"current"`
	Total    int `json:"total"`
}
