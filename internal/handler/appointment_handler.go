package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/healthassist/healthassist-go/internal/model"
	"github.com/healthassist/healthassist-go/internal/service"
	"go.uber.org/zap"
)

// AppointmentHandler serves the appointment CRUD endpoints
type AppointmentHandler struct {
	appointmentService *service.AppointmentService
	logger             *zap.Logger
}

// NewAppointmentHandler creates the appointment handler
func NewAppointmentHandler(appointmentService *service.AppointmentService, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
		logger:             logger,
	}
}

// Create handles POST /appointments
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req model.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}

	username := c.GetString("username")

	err := h.appointmentService.Create(username, req.Title, req.AppointmentTime, req.Recurring)
	if err != nil {
		if errors.Is(err, service.ErrBadAppointmentTime) || errors.Is(err, service.ErrBadRecurring) {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("creating appointment failed",
			zap.String("username", username),
			zap.Error(err))
		c.JSON(500, gin.H{"error": "could not save appointment"})
		return
	}

	c.JSON(200, gin.H{"message": "Appointment saved successfully"})
}

// List handles GET /appointments
func (h *AppointmentHandler) List(c *gin.Context) {
	username := c.GetString("username")

	appts, err := h.appointmentService.List(username)
	if err != nil {
		h.logger.Error("listing appointments failed",
			zap.String("username", username),
			zap.Error(err))
		c.JSON(500, gin.H{"error": "could not list appointments"})
		return
	}

	c.JSON(200, appts)
}
