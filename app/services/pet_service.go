package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/pawmart/pawmart/app/models"
	"github.com/pawmart/pawmart/app/repositories"
)

// PetService manages pets and their medical histories. Pets are owner-scoped;
// medical records are appended by veterinarians.
type PetService struct {
	pets  *repositories.PetRepository
	users *repositories.UserRepository
}

func NewPetService(pets *repositories.PetRepository, users *repositories.UserRepository) *PetService {
	return &PetService{pets: pets, users: users}
}

// PetInput is the payload for pet create/update.
type PetInput struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Species     string `json:"species" validate:"required,max=100"`
	Breed       string `json:"breed" validate:"nullable,max=100"`
	Gender      string `json:"gender" validate:"nullable,in=male,female,unknown"`
	DateOfBirth string `json:"date_of_birth" validate:"nullable,date"`
}

// Create registers a pet for the owner.
func (s *PetService) Create(ownerID uint, in PetInput) (models.Pet, error) {
	pet := models.Pet{
		OwnerID: ownerID,
		Name:    in.Name,
		Species: in.Species,
		Breed:   in.Breed,
		Gender:  in.Gender,
	}
	if in.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", in.DateOfBirth)
		if err != nil {
			return models.Pet{}, fmt.Errorf("pet: parse date of birth: %w", err)
		}
		pet.DateOfBirth = dob
	}

	if err := s.pets.Create(&pet); err != nil {
		return models.Pet{}, fmt.Errorf("pet: create: %w", err)
	}
	return pet, nil
}

// Get returns a pet visible to the requester: the owner, a vet, or an admin.
func (s *PetService) Get(id, requesterID uint, requesterRole models.Role) (models.Pet, error) {
	pet, err := s.pets.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Pet{}, ErrNotFound
		}
		return models.Pet{}, err
	}
	if pet.OwnerID != requesterID &&
		requesterRole != models.RoleAdmin && requesterRole != models.RoleVeterinarian {
		return models.Pet{}, ErrForbidden
	}
	return pet, nil
}

// ListMine returns the requester's pets.
func (s *PetService) ListMine(ownerID uint) ([]models.Pet, error) {
	return s.pets.ListByOwner(ownerID)
}

// Update overwrites a pet's editable fields. Owner only.
func (s *PetService) Update(id, ownerID uint, in PetInput) (models.Pet, error) {
	pet, err := s.pets.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Pet{}, ErrNotFound
		}
		return models.Pet{}, err
	}
	if pet.OwnerID != ownerID {
		return models.Pet{}, ErrForbidden
	}

	pet.Name = in.Name
	pet.Species = in.Species
	pet.Breed = in.Breed
	pet.Gender = in.Gender
	if in.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", in.DateOfBirth)
		if err != nil {
			return models.Pet{}, fmt.Errorf("pet: parse date of birth: %w", err)
		}
		pet.DateOfBirth = dob
	}

	if err := s.pets.Update(&pet); err != nil {
		return models.Pet{}, fmt.Errorf("pet: update: %w", err)
	}
	return pet, nil
}

// Delete removes the owner's pet.
func (s *PetService) Delete(id, ownerID uint) error {
	pet, err := s.pets.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if pet.OwnerID != ownerID {
		return ErrForbidden
	}
	return s.pets.Delete(id)
}

// MedicalRecordInput is the payload for AddMedicalRecord.
type MedicalRecordInput struct {
	VisitedAt string `json:"visited_at" validate:"required,date"`
	Condition string `json:"condition" validate:"required,max=512"`
	Treatment string `json:"treatment" validate:"nullable,max=10000"`
}

// AddMedicalRecord appends a visit entry. The author must be a verified
// veterinarian role.
func (s *PetService) AddMedicalRecord(petID, vetID uint, in MedicalRecordInput) (models.MedicalRecord, error) {
	vet, err := s.users.FindByID(vetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.MedicalRecord{}, ErrNotFound
		}
		return models.MedicalRecord{}, err
	}
	if vet.Role != models.RoleVeterinarian {
		return models.MedicalRecord{}, ErrNotVeterinarian
	}

	if _, err := s.pets.FindByID(petID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.MedicalRecord{}, ErrNotFound
		}
		return models.MedicalRecord{}, err
	}

	visited, err := time.Parse("2006-01-02", in.VisitedAt)
	if err != nil {
		// Try full timestamps as well.
		visited, err = time.Parse(time.RFC3339, in.VisitedAt)
		if err != nil {
			return models.MedicalRecord{}, fmt.Errorf("pet: parse visited_at: %w", err)
		}
	}

	record := models.MedicalRecord{
		PetID:     petID,
		VetID:     vetID,
		VisitedAt: visited,
		Condition: in.Condition,
		Treatment: in.Treatment,
	}
	if err := s.pets.AddMedicalRecord(&record); err != nil {
		return models.MedicalRecord{}, fmt.Errorf("pet: add medical record: %w", err)
	}
	return record, nil
}
