package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "hospital/internal/errors"
	"hospital/internal/service"
)

// AppointmentHandler serves /v1/appointments.
type AppointmentHandler struct {
	svc service.AppointmentService
}

func NewAppointmentHandler(svc service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

// List godoc
// @Summary List appointments, earliest first
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Appointment
// @Router /appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	appointments, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appointments)
}

// Create godoc
// @Summary Book an appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AppointmentRequest true "Appointment"
// @Success 201 {object} model.Appointment
// @Failure 400 {object} errors.ErrorResponse
// @Router /appointments [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	var req AppointmentRequest
	if err := bindValid(c, &req, msgInvalidAppointment); err != nil {
		return err
	}
	in, err := req.toInput()
	if err != nil {
		return apperrors.Invalid(msgInvalidAppointment, err)
	}

	appointment, err := h.svc.Create(c.Request().Context(), in)
	if errors.Is(err, service.ErrUnknownReference) {
		return apperrors.Invalid(msgInvalidAppointment, err)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, appointment)
}
