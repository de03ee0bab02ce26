package controllers

import (
	"net/http"

	"github.com/pawmart/pawmart/app/models"
	"github.com/pawmart/pawmart/app/services"
	"github.com/pawmart/pawmart/pkg/bind"
	"github.com/pawmart/pawmart/pkg/middleware"
	"github.com/pawmart/pawmart/pkg/response"
)

type PetController struct {
	pets *services.PetService
}

func NewPetController(pets *services.PetService) *PetController {
	return &PetController{pets: pets}
}

func (c *PetController) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	pets, err := c.pets.ListMine(userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, pets)
}

func (c *PetController) Show(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	role, _ := middleware.RoleFromCtx(r)

	pet, err := c.pets.Get(paramID(r, "id"), userID, models.Role(role))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, pet)
}

func (c *PetController) Store(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.PetInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, "Malformed request body")
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	pet, err := c.pets.Create(userID, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, pet)
}

func (c *PetController) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.PetInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, "Malformed request body")
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	pet, err := c.pets.Update(paramID(r, "id"), userID, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, pet)
}

func (c *PetController) Destroy(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	if err := c.pets.Delete(paramID(r, "id"), userID); err != nil {
		fail(w, r, err)
		return
	}
	response.Message(w, "Pet deleted")
}

// AddMedicalRecord appends a visit entry. Restricted to veterinarians by
// route middleware, the service re-checks the author's role.
func (c *PetController) AddMedicalRecord(w http.ResponseWriter, r *http.Request) {
	vetID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.MedicalRecordInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, "Malformed request body")
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	record, err := c.pets.AddMedicalRecord(paramID(r, "id"), vetID, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, record)
}
