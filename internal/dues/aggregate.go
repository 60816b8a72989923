package dues

import (
	"sort"

	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/models"
	"github.com/google/uuid"
)

// WorstStatus returns the most severe status among payments.
// A member without any record is in good standing.
func WorstStatus(payments []models.Payment) models.PaymentStatus {
	worst := models.StatusCurrent
	for _, p := range payments {
		if Priority(p.Status) < Priority(worst) {
			worst = p.Status
		}
	}
	return worst
}

// OutstandingMonths returns the outstanding records, newest month first
func OutstandingMonths(payments []models.Payment) []models.Payment {
	out := make([]models.Payment, 0, MaxOutstanding)
	for _, p := range payments {
		if Outstanding(p.Status) {
			out = append(out, p)
		}
	}
	SortHistory(out)
	return out
}

// SortHistory orders payments by year then month, both descending
func SortHistory(payments []models.Payment) {
	sort.SliceStable(payments, func(i, j int) bool {
		if payments[i].Year != payments[j].Year {
			return payments[i].Year > payments[j].Year
		}
		return payments[i].Month > payments[j].Month
	})
}

// Annotate fills the computed standing fields of s from its payments
func Annotate(s *models.Student) {
	if s.Payments == nil {
		s.Payments = []models.Payment{}
	}
	s.WorstStatus = WorstStatus(s.Payments)
	s.OutstandingCount = CountOutstanding(s.Payments, uuid.Nil)
}
