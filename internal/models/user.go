package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// User represents a user in the system
type User struct {
	BaseModel
	Email     string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	FirstName string `gorm:"size:100" json:"firstName"`
	LastName  string `gorm:"size:100" json:"lastName"`
	Role      Role   `gorm:"size:20;default:'patient'" json:"role"`
	IsActive  bool   `gorm:"default:true" json:"isActive"`

	// Relations (not always preloaded)
	Profile             *Profile        `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	Doctor              *Doctor         `gorm:"foreignKey:UserID" json:"doctor,omitempty"`
	Patient             *Patient        `gorm:"foreignKey:UserID" json:"patient,omitempty"`
	RefreshTokens       []RefreshToken  `gorm:"foreignKey:UserID" json:"-"`
	DoctorAppointments  []Appointment   `gorm:"foreignKey:DoctorID" json:"-"`
	PatientAppointments []Appointment   `gorm:"foreignKey:PatientID" json:"-"`
	MedicalRecords      []MedicalRecord `gorm:"foreignKey:PatientID" json:"-"`
}

// Profile holds the personal details shared by every role.
type Profile struct {
	BaseModel
	UserID      string     `gorm:"size:36;uniqueIndex" json:"userId"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	PhoneNumber string     `gorm:"size:30" json:"phoneNumber,omitempty"`
	Address     string     `gorm:"size:255" json:"address,omitempty"`
}

// Doctor holds the doctor-specific columns for a user with RoleDoctor.
type Doctor struct {
	BaseModel
	UserID         string `gorm:"size:36;uniqueIndex" json:"userId"`
	Specialization string `gorm:"size:100" json:"specialization"`
	LicenseNumber  string `gorm:"size:50" json:"licenseNumber"`
	Biography      string `gorm:"type:text" json:"biography,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Patient holds the patient-specific columns for a user with RolePatient.
type Patient struct {
	BaseModel
	UserID           string `gorm:"size:36;uniqueIndex" json:"userId"`
	InsuranceNumber  string `gorm:"size:50" json:"insuranceNumber,omitempty"`
	EmergencyContact string `gorm:"size:100" json:"emergencyContact,omitempty"`
	BloodType        string `gorm:"size:5" json:"bloodType,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// UserSanitized represents the user data that is safe to send in API responses.
type UserSanitized struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"isActive"`
	Profile   *Profile  `json:"profile,omitempty"`
	Doctor    *Doctor   `json:"doctor,omitempty"`
	Patient   *Patient  `json:"patient,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Sanitize creates a UserSanitized struct from a User model, excluding sensitive data.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		Profile:   u.Profile,
		Doctor:    u.Doctor,
		Patient:   u.Patient,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
