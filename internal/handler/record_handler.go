package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "hospital/internal/errors"
	"hospital/internal/repository"
	"hospital/internal/service"
)

// RecordHandler serves /v1/records.
type RecordHandler struct {
	svc service.RecordService
}

func NewRecordHandler(svc service.RecordService) *RecordHandler {
	return &RecordHandler{svc: svc}
}

// List godoc
// @Summary List medical records, newest first
// @Tags records
// @Produce json
// @Security BearerAuth
// @Param patientId query string false "Only records of this patient"
// @Success 200 {array} model.Record
// @Router /records [get]
func (h *RecordHandler) List(c echo.Context) error {
	filter := repository.RecordFilter{PatientID: c.QueryParam("patientId")}
	records, err := h.svc.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

// Create godoc
// @Summary Add a medical record
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RecordRequest true "Record"
// @Success 201 {object} model.Record
// @Failure 400 {object} errors.ErrorResponse
// @Router /records [post]
func (h *RecordHandler) Create(c echo.Context) error {
	var req RecordRequest
	if err := bindValid(c, &req, msgInvalidRecord); err != nil {
		return err
	}
	in, err := req.toInput()
	if err != nil {
		return apperrors.Invalid(msgInvalidRecord, err)
	}

	record, err := h.svc.Create(c.Request().Context(), in)
	if errors.Is(err, service.ErrUnknownReference) {
		return apperrors.Invalid(msgInvalidRecord, err)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, record)
}

// Get godoc
// @Summary Get a medical record
// @Tags records
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Success 200 {object} model.Record
// @Failure 404 {object} errors.ErrorResponse
// @Router /records/{id} [get]
func (h *RecordHandler) Get(c echo.Context) error {
	record, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, record)
}

// Delete godoc
// @Summary Delete a medical record
// @Tags records
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /records/{id} [delete]
func (h *RecordHandler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
