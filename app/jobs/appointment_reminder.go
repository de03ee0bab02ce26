package jobs

import (
	"fmt"

	"github.com/pawmart/pawmart/app/models"
	"github.com/pawmart/pawmart/pkg/database"
	"github.com/pawmart/pawmart/pkg/logger"
	"github.com/pawmart/pawmart/pkg/mail"
)

// AppointmentReminderJob emails the pet owner the day before a pending
// appointment. Enqueued by the daily scheduler task.
type AppointmentReminderJob struct {
	AppointmentID uint `json:"appointment_id"`
}

func (j *AppointmentReminderJob) Handle() error {
	var appt models.Appointment
	if err := database.DB.First(&appt, j.AppointmentID).Error; err != nil {
		return fmt.Errorf("appointment reminder: load %d: %w", j.AppointmentID, err)
	}
	if appt.Status != models.AppointmentPending {
		return nil // cancelled or completed since scheduling
	}

	var owner models.User
	if err := database.DB.First(&owner, appt.OwnerID).Error; err != nil {
		return fmt.Errorf("appointment reminder: load owner %d: %w", appt.OwnerID, err)
	}
	var pet models.Pet
	if err := database.DB.First(&pet, appt.PetID).Error; err != nil {
		return fmt.Errorf("appointment reminder: load pet %d: %w", appt.PetID, err)
	}

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Reminder: %s has a veterinary appointment on %s.</p>",
		owner.Name, pet.Name, appt.ScheduledAt.Format("Mon, 2 Jan 2006 at 15:04"),
	)

	if err := mail.To(owner.Email).
		Subject(fmt.Sprintf("Appointment reminder for %s", pet.Name)).
		Body(body).
		Send(); err != nil {
		return fmt.Errorf("appointment reminder: send: %w", err)
	}

	logger.Info("appointment reminder sent", "appointment_id", appt.ID, "email", owner.Email)
	return nil
}
