package handlers

import (
	"net/http"

	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/models"
	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ListPayments returns the payment history of the student given by ?student_id=
func ListPayments(svc *service.PaymentService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Query("student_id")
		if raw == "" {
			badRequest(c, "student_id parameter is required")
			return
		}
		studentID, err := uuid.Parse(raw)
		if err != nil {
			badRequest(c, "Invalid student ID format")
			return
		}

		payments, err := svc.History(c.Request.Context(), studentID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, payments)
	}
}

// CreatePayment adds a month for a student, pending unless told otherwise
func CreatePayment(svc *service.PaymentService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.PaymentCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "student_id, year and month are required")
			return
		}

		payment, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, payment)
	}
}

// UpdatePayment changes a payment. Marking it current stamps paid_at unless the body sets it.
func UpdatePayment(svc *service.PaymentService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		paymentID, ok := parseID(c, "payment")
		if !ok {
			return
		}

		var req models.PaymentUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request body")
			return
		}

		payment, err := svc.Update(c.Request.Context(), paymentID, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, payment)
	}
}

func DeletePayment(svc *service.PaymentService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		paymentID, ok := parseID(c, "payment")
		if !ok {
			return
		}

		if err := svc.Delete(c.Request.Context(), paymentID); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
