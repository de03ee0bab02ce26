package repositories

import (
	"gorm.io/gorm"

	"github.com/pawmart/pawmart/app/models"
)

// PetRepository handles database operations for Pet.
type PetRepository struct {
	db *gorm.DB
}

func NewPetRepository(db *gorm.DB) *PetRepository {
	return &PetRepository{db: db}
}

// FindByID loads a pet with its medical records.
func (r *PetRepository) FindByID(id uint) (models.Pet, error) {
	var pet models.Pet
	err := r.db.Preload("MedicalRecords", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("visited_at desc")
	}).First(&pet, id).Error
	return pet, err
}

// ListByOwner returns all pets belonging to a user.
func (r *PetRepository) ListByOwner(ownerID uint) ([]models.Pet, error) {
	var pets []models.Pet
	err := r.db.Where("owner_id = ?", ownerID).Order("id asc").Find(&pets).Error
	return pets, err
}

// Create persists a new pet.
func (r *PetRepository) Create(pet *models.Pet) error {
	return r.db.Create(pet).Error
}

// Update persists changes to a pet.
func (r *PetRepository) Update(pet *models.Pet) error {
	return r.db.Save(pet).Error
}

// Delete removes a pet and its medical records.
func (r *PetRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pet_id = ?", id).Delete(&models.MedicalRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Pet{}, id).Error
	})
}

// AddMedicalRecord appends a visit entry to a pet's history.
func (r *PetRepository) AddMedicalRecord(record *models.MedicalRecord) error {
	return r.db.Create(record).Error
}
