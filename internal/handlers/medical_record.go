package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinicbase/server/internal/middleware"
	"github.com/clinicbase/server/internal/models"
	"github.com/clinicbase/server/internal/utils"
)

// MedicalRecordHandler handles medical record related requests.
// Records are immutable: there are create and read operations only.
type MedicalRecordHandler struct {
	DB *gorm.DB
}

// NewMedicalRecordHandler creates a new MedicalRecordHandler.
func NewMedicalRecordHandler(db *gorm.DB) *MedicalRecordHandler {
	return &MedicalRecordHandler{DB: db}
}

// PrescriptionRequest is a single prescription line in a record
// creation request.
type PrescriptionRequest struct {
	Medication   string `json:"medication" binding:"required"`
	Dosage       string `json:"dosage" binding:"required"`
	Frequency    string `json:"frequency" binding:"required"`
	Duration     string `json:"duration" binding:"required"`
	Instructions string `json:"instructions"`
}

// CreateMedicalRecordRequest represents the request body for creating a
// medical record from a completed appointment.
type CreateMedicalRecordRequest struct {
	AppointmentID string                `json:"appointmentId" binding:"required,uuid"`
	Title         string                `json:"title" binding:"required"`
	Diagnosis     string                `json:"diagnosis" binding:"required"`
	Summary       string                `json:"summary"`
	Prescriptions []PrescriptionRequest `json:"prescriptions"`
}

// CreateMedicalRecord creates a medical record and its prescriptions in
// one transaction. Only the doctor who owns the appointment may write
// the record, and only once the appointment is completed.
func (h *MedicalRecordHandler) CreateMedicalRecord(c *gin.Context) {
	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreateMedicalRecordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", req.AppointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if appointment.DoctorID != doctorID {
		utils.Forbidden(c, "You can only write records for your own appointments")
		return
	}
	if appointment.Status != models.StatusCompleted {
		utils.Conflict(c, "Medical records can only be created for completed appointments")
		return
	}

	var existing models.MedicalRecord
	if err := h.DB.First(&existing, "appointment_id = ?", appointment.ID).Error; err == nil {
		utils.Conflict(c, "A medical record already exists for this appointment")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	record := models.MedicalRecord{
		AppointmentID: appointment.ID,
		PatientID:     appointment.PatientID,
		DoctorID:      appointment.DoctorID,
		RecordDate:    time.Now(),
		Title:         req.Title,
		Diagnosis:     req.Diagnosis,
		Summary:       req.Summary,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		for _, p := range req.Prescriptions {
			prescription := models.Prescription{
				MedicalRecordID: record.ID,
				Medication:      p.Medication,
				Dosage:          p.Dosage,
				Frequency:       p.Frequency,
				Duration:        p.Duration,
				Instructions:    p.Instructions,
			}
			if err := tx.Create(&prescription).Error; err != nil {
				return err
			}
			record.Prescriptions = append(record.Prescriptions, prescription)
		}
		return nil
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create medical record: "+err.Error())
		return
	}

	utils.Created(c, "Medical record created successfully", record)
}

// GetMedicalRecordsForPatient lists a patient's records with their
// prescriptions. Patients see their own; doctors see records they
// authored for that patient; admins see all.
func (h *MedicalRecordHandler) GetMedicalRecordsForPatient(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	patientID := c.Param("patientId")
	if patientID == "" {
		patientID = userID
	}

	query := h.DB.Preload("Prescriptions").Order("record_date desc").Where("patient_id = ?", patientID)
	switch userRole {
	case models.RolePatient:
		if patientID != userID {
			utils.Forbidden(c, "Patients can only view their own medical records")
			return
		}
	case models.RoleDoctor:
		query = query.Where("doctor_id = ?", userID)
	case models.RoleAdmin:
		// unrestricted
	default:
		utils.Forbidden(c, "User role not permitted to view medical records")
		return
	}

	var records []models.MedicalRecord
	if err := query.Find(&records).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch medical records: "+err.Error())
		return
	}

	utils.Success(c, "Medical records fetched successfully", records)
}

// GetMedicalRecordByID fetches a single record with prescriptions.
// Accessible by the record's patient, its authoring doctor, or an
// admin.
func (h *MedicalRecordHandler) GetMedicalRecordByID(c *gin.Context) {
	var record models.MedicalRecord
	if err := h.DB.Preload("Prescriptions").First(&record, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Medical record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	if userRole != models.RoleAdmin && userID != record.PatientID && userID != record.DoctorID {
		utils.Forbidden(c, "You are not authorized to view this medical record")
		return
	}

	utils.Success(c, "Medical record fetched successfully", record)
}
