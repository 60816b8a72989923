package handlers

import (
	"errors"
	"net/http"

	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/dues"
	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/repository"
	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError writes err as {"error": "..."} with the status its kind maps to
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, dues.ErrMaxOutstandingExceeded):
		c.JSON(http.StatusBadRequest, gin.H{"error": dues.ErrMaxOutstandingExceeded.Error()})
	case errors.Is(err, repository.ErrStudentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
	case errors.Is(err, repository.ErrPaymentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
	default:
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
