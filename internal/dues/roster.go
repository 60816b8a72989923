package dues

import (
	"sort"
	"strings"

	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/models"
)

// RosterFilter narrows a roster. Zero fields do not filter.
type RosterFilter struct {
	Category models.Category
	Query    string
	Status   models.PaymentStatus
}

// FilterRoster returns the students matching f, keeping their order.
//
// The status filter keeps students holding at least one record with that
// exact status, which is not necessarily their worst one.
func FilterRoster(students []models.Student, f RosterFilter) []models.Student {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]models.Student, 0, len(students))
	for _, s := range students {
		if f.Category != "" && s.Category != f.Category {
			continue
		}
		if q != "" && !matchesName(s, q) {
			continue
		}
		if f.Status != "" && !hasStatus(s.Payments, f.Status) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func matchesName(s models.Student, q string) bool {
	return strings.Contains(strings.ToLower(s.FirstName), q) ||
		strings.Contains(strings.ToLower(s.LastName), q)
}

func hasStatus(payments []models.Payment, status models.PaymentStatus) bool {
	for _, p := range payments {
		if p.Status == status {
			return true
		}
	}
	return false
}

// SortByWorstStatus orders students most severe first. Ties keep their input order.
func SortByWorstStatus(students []models.Student) {
	sort.SliceStable(students, func(i, j int) bool {
		return Priority(WorstStatus(students[i].Payments)) < Priority(WorstStatus(students[j].Payments))
	})
}

// CountByWorstStatus tallies students by their worst status
func CountByWorstStatus(students []models.Student) models.StatusCounts {
	var c models.StatusCounts
	for _, s := range students {
		switch WorstStatus(s.Payments) {
		case models.StatusUnpaid:
			c.Unpaid++
		case models.StatusPending:
			c.Pending++
		case models.StatusPromised:
			c.Promised++
		case models.StatusCurrent:
			c.Current++
		}
		c.Total++
	}
	return c
}
