package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/pawmart/pawmart/app/models"
)

// AppointmentRepository handles database operations for Appointment.
type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// FindByID loads an appointment by primary key.
func (r *AppointmentRepository) FindByID(id uint) (models.Appointment, error) {
	var appt models.Appointment
	err := r.db.First(&appt, id).Error
	return appt, err
}

// ListByOwner returns a user's appointments, soonest first.
func (r *AppointmentRepository) ListByOwner(ownerID uint) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.Where("owner_id = ?", ownerID).Order("scheduled_at asc").Find(&appts).Error
	return appts, err
}

// ListByVet returns a veterinarian's appointments, soonest first.
func (r *AppointmentRepository) ListByVet(vetID uint) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.Where("vet_id = ?", vetID).Order("scheduled_at asc").Find(&appts).Error
	return appts, err
}

// PendingBetween returns pending appointments scheduled inside [from, to).
// Used by the daily reminder task.
func (r *AppointmentRepository) PendingBetween(from, to time.Time) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.
		Where("status = ? AND scheduled_at >= ? AND scheduled_at < ?",
			models.AppointmentPending, from, to).
		Find(&appts).Error
	return appts, err
}

// Create persists a new appointment.
func (r *AppointmentRepository) Create(appt *models.Appointment) error {
	return r.db.Create(appt).Error
}

// Update persists changes to an appointment.
func (r *AppointmentRepository) Update(appt *models.Appointment) error {
	return r.db.Save(appt).Error
}
