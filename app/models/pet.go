package models

import (
	"time"

	"gorm.io/gorm"
)

// Pet is owned by a user and carries an embedded medical history.
type Pet struct {
	gorm.Model
	OwnerID     uint      `gorm:"not null;index" json:"owner_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Species     string    `gorm:"size:100;not null" json:"species"`
	Breed       string    `gorm:"size:100" json:"breed"`
	Gender      string    `gorm:"size:16" json:"gender"`
	DateOfBirth time.Time `json:"date_of_birth"`

	MedicalRecords []MedicalRecord `gorm:"constraint:OnDelete:CASCADE" json:"medical_records,omitempty"`
}

// MedicalRecord is one visit entry of a pet's medical history.
type MedicalRecord struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PetID     uint      `gorm:"not null;index" json:"pet_id"`
	VetID     uint      `gorm:"not null" json:"vet_id"`
	VisitedAt time.Time `gorm:"not null" json:"visited_at"`
	Condition string    `gorm:"size:512" json:"condition"`
	Treatment string    `gorm:"type:text" json:"treatment"`
}
