package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawmart/pawmart/app/models"
	"github.com/pawmart/pawmart/app/repositories"
)

func TestCreatePetParsesDateOfBirth(t *testing.T) {
	db := newTestDB(t)
	svc := NewPetService(repositories.NewPetRepository(db), repositories.NewUserRepository(db))

	owner := seedUser(t, db, models.RoleCustomer)

	pet, err := svc.Create(owner.ID, PetInput{
		Name:        "Biscuit",
		Species:     "dog",
		Breed:       "beagle",
		Gender:      "female",
		DateOfBirth: "2022-04-01",
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, pet.OwnerID)
	assert.Equal(t, 2022, pet.DateOfBirth.Year())
}

func TestGetPetVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := NewPetService(repositories.NewPetRepository(db), repositories.NewUserRepository(db))

	owner := seedUser(t, db, models.RoleCustomer)
	stranger := seedUser(t, db, models.RoleCustomer)
	vet := seedUser(t, db, models.RoleVeterinarian)
	pet := seedPet(t, db, owner.ID)

	_, err := svc.Get(pet.ID, owner.ID, owner.Role)
	assert.NoError(t, err)

	_, err = svc.Get(pet.ID, vet.ID, vet.Role)
	assert.NoError(t, err)

	_, err = svc.Get(pet.ID, stranger.ID, stranger.Role)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdatePetOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewPetService(repositories.NewPetRepository(db), repositories.NewUserRepository(db))

	owner := seedUser(t, db, models.RoleCustomer)
	stranger := seedUser(t, db, models.RoleCustomer)
	pet := seedPet(t, db, owner.ID)

	_, err := svc.Update(pet.ID, stranger.ID, PetInput{Name: "Hijacked", Species: "dog"})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(pet.ID, owner.ID, PetInput{Name: "Renamed", Species: "dog"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestDeletePet(t *testing.T) {
	db := newTestDB(t)
	svc := NewPetService(repositories.NewPetRepository(db), repositories.NewUserRepository(db))

	owner := seedUser(t, db, models.RoleCustomer)
	stranger := seedUser(t, db, models.RoleCustomer)
	pet := seedPet(t, db, owner.ID)

	assert.ErrorIs(t, svc.Delete(pet.ID, stranger.ID), ErrForbidden)
	require.NoError(t, svc.Delete(pet.ID, owner.ID))

	_, err := svc.Get(pet.ID, owner.ID, owner.Role)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddMedicalRecordRequiresVet(t *testing.T) {
	db := newTestDB(t)
	svc := NewPetService(repositories.NewPetRepository(db), repositories.NewUserRepository(db))

	owner := seedUser(t, db, models.RoleCustomer)
	vet := seedUser(t, db, models.RoleVeterinarian)
	pet := seedPet(t, db, owner.ID)

	in := MedicalRecordInput{VisitedAt: "2026-08-30", Condition: "Ear infection", Treatment: "Drops"}

	_, err := svc.AddMedicalRecord(pet.ID, owner.ID, in)
	assert.ErrorIs(t, err, ErrNotVeterinarian)

	record, err := svc.AddMedicalRecord(pet.ID, vet.ID, in)
	require.NoError(t, err)
	assert.Equal(t, vet.ID, record.VetID)
	assert.Equal(t, "Ear infection", record.Condition)
}
