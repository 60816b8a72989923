package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/auth"
	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/middleware"
	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthChecker reports whether the backing store answers
type HealthChecker interface {
	Health(ctx context.Context) error
	Name() string
}

// Dependencies are the collaborators the HTTP surface needs
type Dependencies struct {
	Students *service.StudentService
	Payments *service.PaymentService
	Admin    *auth.Admin
	Tokens   *auth.JWTService
	Store    HealthChecker
	Logger   *zap.Logger
	Version  string
}

// RegisterRoutes mounts every endpoint on r
func RegisterRoutes(r *gin.Engine, d Dependencies) {
	r.GET("/health", Health(d.Store, d.Version))
	r.POST("/auth/login", Login(d.Admin, d.Tokens, d.Logger))

	api := r.Group("/", middleware.RequireAuth(d.Tokens))

	students := api.Group("/students")
	students.GET("", ListStudents(d.Students, d.Logger))
	students.GET("/stats", StudentStats(d.Students, d.Logger))
	students.GET("/:id", GetStudent(d.Students, d.Logger))
	students.GET("/:id/outstanding", GetOutstandingMonths(d.Students, d.Logger))
	students.POST("", CreateStudent(d.Students, d.Logger))
	students.PATCH("/:id", UpdateStudent(d.Students, d.Logger))
	students.DELETE("/:id", DeleteStudent(d.Students, d.Logger))

	payments := api.Group("/payments")
	payments.GET("", ListPayments(d.Payments, d.Logger))
	payments.POST("", CreatePayment(d.Payments, d.Logger))
	payments.PATCH("/:id", UpdatePayment(d.Payments, d.Logger))
	payments.DELETE("/:id", DeletePayment(d.Payments, d.Logger))
}

// Health reports the service version and whether the store answers
func Health(store HealthChecker, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := store.Health(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"version": version,
				"store":   store.Name(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": version,
			"store":   store.Name(),
		})
	}
}
