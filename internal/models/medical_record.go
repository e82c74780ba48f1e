package models

import (
	"time"
)

// MedicalRecord represents the clinical outcome of a completed
// appointment. Records are immutable once created: there is no update
// or delete path for them.
type MedicalRecord struct {
	BaseModel
	AppointmentID string    `gorm:"size:36;uniqueIndex" json:"appointmentId"`
	PatientID     string    `gorm:"size:36;index" json:"patientId"`
	DoctorID      string    `gorm:"size:36;index" json:"doctorId"`
	RecordDate    time.Time `json:"recordDate"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Diagnosis     string    `gorm:"type:text" json:"diagnosis"`
	Summary       string    `gorm:"type:text" json:"summary"`

	// Relations
	Patient       User           `gorm:"foreignKey:PatientID" json:"-"`
	Doctor        User           `gorm:"foreignKey:DoctorID" json:"-"`
	Appointment   Appointment    `gorm:"foreignKey:AppointmentID" json:"-"`
	Prescriptions []Prescription `gorm:"foreignKey:MedicalRecordID" json:"prescriptions,omitempty"`
}

// Prescription is a single medication line attached to a medical record.
type Prescription struct {
	BaseModel
	MedicalRecordID string `gorm:"size:36;index;not null" json:"medicalRecordId"`
	Medication      string `gorm:"size:255;not null" json:"medication"`
	Dosage          string `gorm:"size:100" json:"dosage"`
	Frequency       string `gorm:"size:100" json:"frequency"`
	Duration        string `gorm:"size:100" json:"duration"`
	Instructions    string `gorm:"type:text" json:"instructions,omitempty"`
}
