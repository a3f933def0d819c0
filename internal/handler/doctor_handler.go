package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hospital/internal/service"
)

// DoctorHandler serves /v1/doctors.
type DoctorHandler struct {
	svc service.DoctorService
}

func NewDoctorHandler(svc service.DoctorService) *DoctorHandler {
	return &DoctorHandler{svc: svc}
}

// List godoc
// @Summary List doctors
// @Tags doctors
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Doctor
// @Router /doctors [get]
func (h *DoctorHandler) List(c echo.Context) error {
	doctors, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doctors)
}

// Create godoc
// @Summary Register a doctor
// @Tags doctors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DoctorRequest true "Doctor"
// @Success 201 {object} model.Doctor
// @Failure 400 {object} errors.ErrorResponse
// @Router /doctors [post]
func (h *DoctorHandler) Create(c echo.Context) error {
	var req DoctorRequest
	if err := bindValid(c, &req, msgInvalidDoctor); err != nil {
		return err
	}

	doctor, err := h.svc.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, doctor)
}
