package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pawmart/pawmart/app/models"
	"github.com/pawmart/pawmart/app/repositories"
)

func newAppointmentService(db *gorm.DB) *AppointmentService {
	return NewAppointmentService(
		repositories.NewAppointmentRepository(db),
		repositories.NewPetRepository(db),
		repositories.NewUserRepository(db),
	)
}

func TestBookAppointment(t *testing.T) {
	db := newTestDB(t)
	svc := newAppointmentService(db)

	owner := seedUser(t, db, models.RoleCustomer)
	vet := seedUser(t, db, models.RoleVeterinarian)
	pet := seedPet(t, db, owner.ID)

	when := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	appt, err := svc.Book(owner.ID, BookInput{
		PetID: pet.ID, VetID: vet.ID, ScheduledAt: when, Reason: "Vaccination",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentPending, appt.Status)
	assert.Equal(t, owner.ID, appt.OwnerID)
}

func TestBookRejectsPastTime(t *testing.T) {
	db := newTestDB(t)
	svc := newAppointmentService(db)

	owner := seedUser(t, db, models.RoleCustomer)
	vet := seedUser(t, db, models.RoleVeterinarian)
	pet := seedPet(t, db, owner.ID)

	past := time.Now().Add(-time.Hour).Format(time.RFC3339)
	_, err := svc.Book(owner.ID, BookInput{PetID: pet.ID, VetID: vet.ID, ScheduledAt: past})
	assert.ErrorIs(t, err, ErrPastAppointment)
}

func TestBookRejectsNonVet(t *testing.T) {
	db := newTestDB(t)
	svc := newAppointmentService(db)

	owner := seedUser(t, db, models.RoleCustomer)
	notVet := seedUser(t, db, models.RoleCustomer)
	pet := seedPet(t, db, owner.ID)

	when := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	_, err := svc.Book(owner.ID, BookInput{PetID: pet.ID, VetID: notVet.ID, ScheduledAt: when})
	assert.ErrorIs(t, err, ErrNotVeterinarian)
}

func TestBookRequiresOwnPet(t *testing.T) {
	db := newTestDB(t)
	svc := newAppointmentService(db)

	owner := seedUser(t, db, models.RoleCustomer)
	stranger := seedUser(t, db, models.RoleCustomer)
	vet := seedUser(t, db, models.RoleVeterinarian)
	pet := seedPet(t, db, owner.ID)

	when := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	_, err := svc.Book(stranger.ID, BookInput{PetID: pet.ID, VetID: vet.ID, ScheduledAt: when})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateStatusPermissions(t *testing.T) {
	db := newTestDB(t)
	svc := newAppointmentService(db)

	owner := seedUser(t, db, models.RoleCustomer)
	vet := seedUser(t, db, models.RoleVeterinarian)
	stranger := seedUser(t, db, models.RoleCustomer)
	pet := seedPet(t, db, owner.ID)

	when := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	appt, err := svc.Book(owner.ID, BookInput{PetID: pet.ID, VetID: vet.ID, ScheduledAt: when})
	require.NoError(t, err)

	// Strangers may not touch the booking.
	_, err = svc.UpdateStatus(appt.ID, stranger.ID, stranger.Role, models.AppointmentCompleted, "")
	assert.ErrorIs(t, err, ErrForbidden)

	// Owners may only cancel.
	_, err = svc.UpdateStatus(appt.ID, owner.ID, owner.Role, models.AppointmentCompleted, "")
	assert.ErrorIs(t, err, ErrForbidden)

	// The booked vet may complete, with notes.
	done, err := svc.UpdateStatus(appt.ID, vet.ID, vet.Role, models.AppointmentCompleted, "All clear")
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCompleted, done.Status)
	assert.Equal(t, "All clear", done.Notes)
}

func TestOwnerCanCancel(t *testing.T) {
	db := newTestDB(t)
	svc := newAppointmentService(db)

	owner := seedUser(t, db, models.RoleCustomer)
	vet := seedUser(t, db, models.RoleVeterinarian)
	pet := seedPet(t, db, owner.ID)

	when := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	appt, err := svc.Book(owner.ID, BookInput{PetID: pet.ID, VetID: vet.ID, ScheduledAt: when})
	require.NoError(t, err)

	cancelled, err := svc.UpdateStatus(appt.ID, owner.ID, owner.Role, models.AppointmentCancelled, "")
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCancelled, cancelled.Status)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	db := newTestDB(t)
	svc := newAppointmentService(db)

	owner := seedUser(t, db, models.RoleCustomer)
	vet := seedUser(t, db, models.RoleVeterinarian)
	pet := seedPet(t, db, owner.ID)

	when := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	appt, err := svc.Book(owner.ID, BookInput{PetID: pet.ID, VetID: vet.ID, ScheduledAt: when})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(appt.ID, vet.ID, vet.Role, "shipped", "")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDueTomorrow(t *testing.T) {
	db := newTestDB(t)
	svc := newAppointmentService(db)

	owner := seedUser(t, db, models.RoleCustomer)
	vet := seedUser(t, db, models.RoleVeterinarian)
	pet := seedPet(t, db, owner.ID)

	now := time.Now()
	tomorrow := now.Truncate(24 * time.Hour).Add(24*time.Hour + 10*time.Hour)
	nextWeek := now.Add(7 * 24 * time.Hour)

	_, err := svc.Book(owner.ID, BookInput{
		PetID: pet.ID, VetID: vet.ID, ScheduledAt: tomorrow.Format(time.RFC3339),
	})
	require.NoError(t, err)
	_, err = svc.Book(owner.ID, BookInput{
		PetID: pet.ID, VetID: vet.ID, ScheduledAt: nextWeek.Format(time.RFC3339),
	})
	require.NoError(t, err)

	due, err := svc.DueTomorrow(now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, tomorrow.Unix(), due[0].ScheduledAt.Unix())
}
