package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/pawmart/pawmart/app/models"
	"github.com/pawmart/pawmart/app/repositories"
	"github.com/pawmart/pawmart/pkg/logger"
)

// AppointmentService books clinic appointments between pet owners and
// veterinarians. Appointments have their own status lifecycle, distinct
// from retail orders.
type AppointmentService struct {
	appointments *repositories.AppointmentRepository
	pets         *repositories.PetRepository
	users        *repositories.UserRepository
}

func NewAppointmentService(
	appointments *repositories.AppointmentRepository,
	pets *repositories.PetRepository,
	users *repositories.UserRepository,
) *AppointmentService {
	return &AppointmentService{appointments: appointments, pets: pets, users: users}
}

// BookInput is the payload for Book.
type BookInput struct {
	PetID       uint   `json:"pet_id" validate:"required"`
	VetID       uint   `json:"vet_id" validate:"required"`
	ScheduledAt string `json:"scheduled_at" validate:"required,date"`
	Reason      string `json:"reason" validate:"nullable,max=512"`
}

// Book creates a pending appointment. The vet must hold the veterinarian
// role and the time must lie in the future.
func (s *AppointmentService) Book(ownerID uint, in BookInput) (models.Appointment, error) {
	pet, err := s.pets.FindByID(in.PetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Appointment{}, ErrNotFound
		}
		return models.Appointment{}, err
	}
	if pet.OwnerID != ownerID {
		return models.Appointment{}, ErrForbidden
	}

	vet, err := s.users.FindByID(in.VetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Appointment{}, ErrNotFound
		}
		return models.Appointment{}, err
	}
	if vet.Role != models.RoleVeterinarian {
		return models.Appointment{}, ErrNotVeterinarian
	}

	when, err := parseSchedule(in.ScheduledAt)
	if err != nil {
		return models.Appointment{}, fmt.Errorf("appointment: parse time: %w", err)
	}
	if !when.After(time.Now()) {
		return models.Appointment{}, ErrPastAppointment
	}

	appt := models.Appointment{
		PetID:       in.PetID,
		OwnerID:     ownerID,
		VetID:       in.VetID,
		ScheduledAt: when,
		Reason:      in.Reason,
		Status:      models.AppointmentPending,
	}
	if err := s.appointments.Create(&appt); err != nil {
		return models.Appointment{}, fmt.Errorf("appointment: create: %w", err)
	}

	logger.Info("appointment booked", "appointment_id", appt.ID, "vet_id", appt.VetID)
	return appt, nil
}

// ListMine returns the owner's appointments.
func (s *AppointmentService) ListMine(ownerID uint) ([]models.Appointment, error) {
	return s.appointments.ListByOwner(ownerID)
}

// ListForVet returns the veterinarian's schedule.
func (s *AppointmentService) ListForVet(vetID uint) ([]models.Appointment, error) {
	return s.appointments.ListByVet(vetID)
}

// UpdateStatus moves an appointment within its own closed status set. Only
// the booked vet, the owner (cancel only) or an admin may change it.
func (s *AppointmentService) UpdateStatus(
	id, requesterID uint,
	requesterRole models.Role,
	status models.AppointmentStatus,
	notes string,
) (models.Appointment, error) {
	if !models.ValidAppointmentStatus(status) {
		return models.Appointment{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	appt, err := s.appointments.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Appointment{}, ErrNotFound
		}
		return models.Appointment{}, err
	}

	switch {
	case requesterRole == models.RoleAdmin:
	case requesterID == appt.VetID:
	case requesterID == appt.OwnerID && status == models.AppointmentCancelled:
	default:
		return models.Appointment{}, ErrForbidden
	}

	appt.Status = status
	if notes != "" {
		appt.Notes = notes
	}
	if err := s.appointments.Update(&appt); err != nil {
		return models.Appointment{}, fmt.Errorf("appointment: update: %w", err)
	}
	return appt, nil
}

// DueTomorrow returns pending appointments scheduled for the next calendar
// day. The daily reminder task feeds these into the mail queue.
func (s *AppointmentService) DueTomorrow(now time.Time) ([]models.Appointment, error) {
	from := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	return s.appointments.PendingBetween(from, from.Add(24*time.Hour))
}

func parseSchedule(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q", s)
}
