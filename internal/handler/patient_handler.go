package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hospital/internal/service"
)

// PatientHandler serves /v1/patients.
type PatientHandler struct {
	svc service.PatientService
}

// NewPatientHandler creates a patient handler.
func NewPatientHandler(svc service.PatientService) *PatientHandler {
	return &PatientHandler{svc: svc}
}

// List godoc
// @Summary List patients
// @Tags patients
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Patient
// @Failure 401 {object} errors.ErrorResponse
// @Router /patients [get]
func (h *PatientHandler) List(c echo.Context) error {
	patients, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patients)
}

// Create godoc
// @Summary Register a patient
// @Tags patients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PatientRequest true "Patient"
// @Success 201 {object} model.Patient
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /patients [post]
func (h *PatientHandler) Create(c echo.Context) error {
	var req PatientRequest
	if err := bindValid(c, &req, msgInvalidPatient); err != nil {
		return err
	}

	patient, err := h.svc.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, patient)
}

// Get godoc
// @Summary Get patient by id
// @Tags patients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Patient ID"
// @Success 200 {object} model.Patient
// @Failure 404 {object} errors.ErrorResponse
// @Router /patients/{id} [get]
func (h *PatientHandler) Get(c echo.Context) error {
	patient, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patient)
}

// Update godoc
// @Summary Update a patient
// @Tags patients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Patient ID"
// @Param request body PatientUpdateRequest true "Fields to change"
// @Success 200 {object} model.Patient
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /patients/{id} [put]
func (h *PatientHandler) Update(c echo.Context) error {
	var req PatientUpdateRequest
	if err := bindValid(c, &req, msgInvalidPatientPatch); err != nil {
		return err
	}

	patient, err := h.svc.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patient)
}

// Delete godoc
// @Summary Delete a patient with its appointments and records
// @Tags patients
// @Security BearerAuth
// @Param id path string true "Patient ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /patients/{id} [delete]
func (h *PatientHandler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
