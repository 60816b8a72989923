package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/dues"
	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/models"
)

const (
	maxNameLength  = 100
	maxPhoneLength = 20
)

// ValidationError reports a missing or malformed request field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// normalizeStudent trims the text fields of s and checks every field
func normalizeStudent(s *models.Student) error {
	s.FirstName = strings.TrimSpace(s.FirstName)
	s.LastName = strings.TrimSpace(s.LastName)
	s.PhoneNumber = strings.TrimSpace(s.PhoneNumber)

	if err := requireText("first_name", s.FirstName, maxNameLength); err != nil {
		return err
	}
	if err := requireText("last_name", s.LastName, maxNameLength); err != nil {
		return err
	}
	if !s.Gender.Valid() {
		return invalid("gender", "must be one of woman, man, other")
	}
	if !s.Category.Valid() {
		return invalid("category", "must be one of women, men")
	}
	if err := requireText("phone_number", s.PhoneNumber, maxPhoneLength); err != nil {
		return err
	}
	if !s.PhoneLabel.Valid() {
		return invalid("phone_label", "must be one of self, father, mother, guardian, other")
	}
	return nil
}

func requireText(field, value string, max int) error {
	if value == "" {
		return invalid(field, "is required")
	}
	if utf8.RuneCountInString(value) > max {
		return invalid(field, "must be at most %d characters", max)
	}
	return nil
}

func validatePeriod(year, month int) error {
	if year < 1 || year > 9999 {
		return invalid("year", "is required and must be a valid year")
	}
	if month < 1 || month > 12 {
		return invalid("month", "is required and must be between 1 and 12")
	}
	return nil
}

func validateStatus(s *models.PaymentStatus) error {
	if s != nil && !dues.Valid(*s) {
		return invalid("status", "must be one of unpaid, pending, promised, current")
	}
	return nil
}

func validateAmount(a *int64) error {
	if a != nil && *a < 0 {
		return invalid("amount", "must not be negative")
	}
	return nil
}

// ParseRosterFilter validates the roster query parameters
func ParseRosterFilter(category, query, status string) (dues.RosterFilter, error) {
	f := dues.RosterFilter{Query: strings.TrimSpace(query)}
	if category != "" {
		f.Category = models.Category(category)
		if !f.Category.Valid() {
			return f, invalid("category", "must be one of women, men")
		}
	}
	if status != "" {
		s, err := dues.ParseStatus(status)
		if err != nil {
			return f, invalid("status", "must be one of unpaid, pending, promised, current")
		}
		f.Status = s
	}
	return f, nil
}
