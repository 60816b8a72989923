// Package dues holds the payment-status rules of the club: which statuses
// exist, how severe each one is, how many unpaid months a member may carry
// and how a roster is ranked by its members' standing.
package dues

import (
	"fmt"
	"strings"

	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/models"
)

// Statuses lists every payment status, most severe first
var Statuses = []models.PaymentStatus{
	models.StatusUnpaid,
	models.StatusPending,
	models.StatusPromised,
	models.StatusCurrent,
}

var priority = map[models.PaymentStatus]int{
	models.StatusUnpaid:   1,
	models.StatusPending:  2,
	models.StatusPromised: 3,
	models.StatusCurrent:  4,
}

// Priority returns 1 for the most severe status and 4 for current.
// Unknown statuses rank after current.
func Priority(s models.PaymentStatus) int {
	if p, ok := priority[s]; ok {
		return p
	}
	return len(priority) + 1
}

// Valid reports whether s is a known payment status
func Valid(s models.PaymentStatus) bool {
	_, ok := priority[s]
	return ok
}

// Outstanding reports whether s counts against the outstanding-months cap
func Outstanding(s models.PaymentStatus) bool {
	return s == models.StatusUnpaid || s == models.StatusPending || s == models.StatusPromised
}

// ParseStatus validates a raw status value
func ParseStatus(raw string) (models.PaymentStatus, error) {
	s := models.PaymentStatus(strings.TrimSpace(raw))
	if !Valid(s) {
		return "", fmt.Errorf("unknown payment status %q", raw)
	}
	return s, nil
}
