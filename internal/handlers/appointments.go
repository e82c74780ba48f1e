package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clinicbase/server/internal/middleware"
	"github.com/clinicbase/server/internal/models"
	"github.com/clinicbase/server/internal/notify"
	"github.com/clinicbase/server/internal/scheduling"
	"github.com/clinicbase/server/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	DB        *gorm.DB
	Scheduler *scheduling.Service
	Notifier  *notify.Notifier
	Log       *zap.Logger
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, scheduler *scheduling.Service, notifier *notify.Notifier, log *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Scheduler: scheduler, Notifier: notifier, Log: log}
}

// BookAppointmentRequest represents the request body for booking an appointment.
type BookAppointmentRequest struct {
	DoctorID        string `json:"doctorId" binding:"required,uuid"`
	AppointmentDate string `json:"appointmentDate" binding:"required"`
	AppointmentTime string `json:"appointmentTime" binding:"required"`
	Reason          string `json:"reason"`
	Notes           string `json:"notes"`
}

// BookAppointment books a slot for the authenticated patient. The slot
// guard runs server-side immediately before the insert; rule
// rejections come back as 409 with the guard's reason.
func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	var req BookAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Patient ID not found in token")
		return
	}

	if _, err := scheduling.ParseDate(req.AppointmentDate); err != nil {
		utils.BadRequest(c, "Invalid appointment date, expected YYYY-MM-DD")
		return
	}
	if _, _, sec, err := scheduling.ParseClock(req.AppointmentTime); err != nil || sec != 0 {
		utils.BadRequest(c, "Invalid appointment time, expected HH:MM:SS")
		return
	}
	if !h.Scheduler.Hours().OnSlotBoundary(req.AppointmentTime) {
		utils.BadRequest(c, "Appointment time must fall on a 30-minute slot boundary")
		return
	}

	appointment, verdict, err := h.Scheduler.Book(scheduling.BookingRequest{
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		Date:      req.AppointmentDate,
		Time:      req.AppointmentTime,
		Reason:    req.Reason,
		Notes:     req.Notes,
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to book appointment: "+err.Error())
		return
	}
	if !verdict.Available {
		if verdict.Reason == scheduling.ReasonDoctorNotFound {
			utils.NotFound(c, verdict.Reason)
			return
		}
		utils.Conflict(c, verdict.Reason)
		return
	}

	h.notifyAsync("confirmation", appointment)
	utils.Created(c, "Appointment booked successfully", appointment)
}

// GetDoctorAvailability lists the free slots for a doctor on a date.
func (h *AppointmentHandler) GetDoctorAvailability(c *gin.Context) {
	doctorID := c.Param("id")
	date := c.Query("date")
	if date == "" {
		utils.BadRequest(c, "Query parameter 'date' is required (YYYY-MM-DD)")
		return
	}

	result, err := h.Scheduler.AvailableSlots(doctorID, date)
	if err != nil {
		utils.InternalServerError(c, "Failed to compute availability: "+err.Error())
		return
	}
	if !result.Available {
		if result.Reason == scheduling.ReasonDoctorNotFound {
			utils.NotFound(c, result.Reason)
			return
		}
		c.JSON(400, utils.ResponseData{Status: 400, Message: "Date not bookable", Data: result, Error: result.Reason})
		return
	}

	utils.Success(c, "Availability fetched successfully", result)
}

// CancelAppointmentRequest represents the request body for a patient
// cancellation.
type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// CancelAppointment cancels the patient's own pending appointment,
// subject to the eligibility rule.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req CancelAppointmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequest(c, "Invalid request payload: "+err.Error())
			return
		}
	}

	appointment, verdict, err := h.Scheduler.CancelByPatient(c.Param("id"), patientID, req.Reason)
	switch {
	case errors.Is(err, scheduling.ErrAppointmentNotFound):
		utils.NotFound(c, "Appointment not found")
		return
	case errors.Is(err, scheduling.ErrNotOwner):
		utils.Forbidden(c, "You are not authorized to cancel this appointment")
		return
	case err != nil:
		utils.InternalServerError(c, "Failed to cancel appointment: "+err.Error())
		return
	}
	if !verdict.CanCancel {
		utils.Conflict(c, verdict.Reason)
		return
	}

	h.notifyAsync("cancellation", appointment)
	utils.Success(c, "Appointment cancelled successfully", appointment)
}

// UpdateAppointmentStatusRequest represents the request body for a
// doctor-side status update.
type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required,oneof=confirmed completed cancelled"`
	Notes  string                   `json:"notes"`
}

// UpdateAppointmentStatus applies a status transition on behalf of the
// owning doctor. Transitions outside the status table are rejected
// with 409.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, verdict, err := h.Scheduler.UpdateStatus(c.Param("id"), doctorID, req.Status, req.Notes)
	switch {
	case errors.Is(err, scheduling.ErrAppointmentNotFound):
		utils.NotFound(c, "Appointment not found")
		return
	case errors.Is(err, scheduling.ErrNotOwner):
		utils.Forbidden(c, "You are not authorized to update this appointment")
		return
	case err != nil:
		utils.InternalServerError(c, "Failed to update appointment status: "+err.Error())
		return
	}
	if !verdict.Available {
		utils.Conflict(c, verdict.Reason)
		return
	}

	switch req.Status {
	case models.StatusConfirmed:
		h.notifyAsync("confirmation", appointment)
	case models.StatusCancelled:
		h.notifyAsync("cancellation", appointment)
	}

	utils.Success(c, "Appointment status updated successfully", appointment)
}

// GetAppointmentsForUser fetches the appointments of the logged-in
// patient or doctor, soonest first.
func (h *AppointmentHandler) GetAppointmentsForUser(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	query := h.DB.Order("appointment_date asc, appointment_time asc")

	var appointments []models.Appointment
	var err error
	switch userRole {
	case models.RolePatient:
		err = query.Where("patient_id = ?", userID).Find(&appointments).Error
	case models.RoleDoctor:
		err = query.Where("doctor_id = ?", userID).Find(&appointments).Error
	case models.RoleAdmin:
		err = query.Find(&appointments).Error
	default:
		utils.Forbidden(c, "User role not permitted to view appointments")
		return
	}
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentByID fetches a single appointment. Accessible by the
// involved patient, the involved doctor, or an admin.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	if userRole != models.RoleAdmin && userID != appointment.PatientID && userID != appointment.DoctorID {
		utils.Forbidden(c, "You are not authorized to view this appointment")
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}

// notifyAsync sends a notification without blocking or failing the
// request that triggered it.
func (h *AppointmentHandler) notifyAsync(kind string, appointment *models.Appointment) {
	appt := *appointment
	go func() {
		var patient, doctor models.User
		if err := h.DB.First(&patient, "id = ?", appt.PatientID).Error; err != nil {
			h.Log.Warn("notification skipped, patient lookup failed",
				zap.String("appointment_id", appt.ID), zap.Error(err))
			return
		}
		if err := h.DB.First(&doctor, "id = ?", appt.DoctorID).Error; err != nil {
			h.Log.Warn("notification skipped, doctor lookup failed",
				zap.String("appointment_id", appt.ID), zap.Error(err))
			return
		}

		var err error
		if kind == "cancellation" {
			err = h.Notifier.SendAppointmentCancellation(&appt, &patient, &doctor)
		} else {
			err = h.Notifier.SendAppointmentConfirmation(&appt, &patient, &doctor)
		}
		if err != nil {
			h.Log.Warn("notification failed",
				zap.String("kind", kind),
				zap.String("appointment_id", appt.ID),
				zap.Error(err))
		}
	}()
}
