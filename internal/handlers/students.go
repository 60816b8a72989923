package handlers

import (
	"net/http"

	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/models"
	"github.com/4pilaresvoleyoficial-wq/portal-de-gestion-4p/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ListStudents returns the roster filtered by category, q and status, most severe standing first
func ListStudents(svc *service.StudentService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := service.ParseRosterFilter(c.Query("category"), c.Query("q"), c.Query("status"))
		if err != nil {
			respondError(c, logger, err)
			return
		}

		students, err := svc.List(c.Request.Context(), filter)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, students)
	}
}

// StudentStats returns the dashboard counts of students per worst status
func StudentStats(svc *service.StudentService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := service.ParseRosterFilter(c.Query("category"), "", "")
		if err != nil {
			respondError(c, logger, err)
			return
		}

		counts, err := svc.Stats(c.Request.Context(), filter.Category)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, counts)
	}
}

func GetStudent(svc *service.StudentService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		studentID, ok := parseID(c, "student")
		if !ok {
			return
		}

		student, err := svc.Get(c.Request.Context(), studentID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, student)
	}
}

// GetOutstandingMonths returns the student's unpaid, pending and promised months
func GetOutstandingMonths(svc *service.StudentService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		studentID, ok := parseID(c, "student")
		if !ok {
			return
		}

		months, err := svc.Outstanding(c.Request.Context(), studentID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"student_id": studentID,
			"payments":   months,
			"count":      len(months),
		})
	}
}

func CreateStudent(svc *service.StudentService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.StudentCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "All fields are required: first_name, last_name, gender, category, phone_number, phone_label")
			return
		}

		student, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, student)
	}
}

func UpdateStudent(svc *service.StudentService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		studentID, ok := parseID(c, "student")
		if !ok {
			return
		}

		var req models.StudentUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request body")
			return
		}

		student, err := svc.Update(c.Request.Context(), studentID, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, student)
	}
}

// DeleteStudent removes a student and its payment history
func DeleteStudent(svc *service.StudentService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		studentID, ok := parseID(c, "student")
		if !ok {
			return
		}

		if err := svc.Delete(c.Request.Context(), studentID); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// parseID reads the :id path parameter, answering 400 when it is not a UUID
func parseID(c *gin.Context, kind string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid "+kind+" ID format")
		return uuid.Nil, false
	}
	return id, true
}
