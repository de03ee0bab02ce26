package controllers

import (
	"net/http"

	"github.com/pawmart/pawmart/app/models"
	"github.com/pawmart/pawmart/app/services"
	"github.com/pawmart/pawmart/pkg/bind"
	"github.com/pawmart/pawmart/pkg/middleware"
	"github.com/pawmart/pawmart/pkg/response"
)

type AppointmentController struct {
	appointments *services.AppointmentService
}

func NewAppointmentController(appointments *services.AppointmentService) *AppointmentController {
	return &AppointmentController{appointments: appointments}
}

func (c *AppointmentController) Store(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.BookInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, "Malformed request body")
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	appt, err := c.appointments.Book(userID, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, appt)
}

func (c *AppointmentController) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	appts, err := c.appointments.ListMine(userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, appts)
}

// Schedule lists the authenticated veterinarian's appointments.
func (c *AppointmentController) Schedule(w http.ResponseWriter, r *http.Request) {
	vetID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	appts, err := c.appointments.ListForVet(vetID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, appts)
}

func (c *AppointmentController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	role, _ := middleware.RoleFromCtx(r)

	var in struct {
		Status string `json:"status" validate:"required,in=pending,completed,cancelled"`
		Notes  string `json:"notes" validate:"nullable,max=2000"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, "Malformed request body")
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	appt, err := c.appointments.UpdateStatus(
		paramID(r, "id"), userID,
		models.Role(role),
		models.AppointmentStatus(in.Status),
		in.Notes,
	)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, appt)
}
