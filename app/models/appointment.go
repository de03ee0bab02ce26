package models

import (
	"time"

	"gorm.io/gorm"
)

// AppointmentStatus is the closed set of clinic booking states. It is a
// separate enum from OrderStatus: clinic bookings and retail orders are
// different domains with different lifecycles.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// ValidAppointmentStatus reports whether s is a member of the closed set.
func ValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentPending, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// Appointment books a pet with a veterinarian.
type Appointment struct {
	gorm.Model
	PetID       uint              `gorm:"not null;index" json:"pet_id"`
	OwnerID     uint              `gorm:"not null;index" json:"owner_id"`
	VetID       uint              `gorm:"not null;index" json:"vet_id"`
	ScheduledAt time.Time         `gorm:"not null;index" json:"scheduled_at"`
	Reason      string            `gorm:"size:512" json:"reason"`
	Status      AppointmentStatus `gorm:"size:50;not null;default:pending" json:"status"`
	Notes       string            `gorm:"type:text" json:"notes,omitempty"`
}
