package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scholarspoint/coaching-admin/internal/core/ports"
)

type DocumentHandler struct {
	service ports.DocumentService
}

func NewDocumentHandler(service ports.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// Receipt streams the receipt PDF for a payment.
//
// @Summary      Download a payment receipt
// @Tags         documents
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path  string  true  "Payment id"
// @Success      200 {file}  binary
// @Failure      404 {object}  map[string]string
// @Router       /v1/documents/receipts/{id} [get]
func (h *DocumentHandler) Receipt(c echo.Context) error {
	blob, err := h.service.Receipt(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/pdf", blob)
}

// HallTicket streams the hall-ticket PDF for a student. The mother name
// supplied by the caller must match the student record; a mismatch surfaces
// as a 404 with the specific alert the dashboard shows.
//
// @Summary      Download a hall ticket
// @Tags         documents
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id           path   string  true  "Student id"
// @Param        mother_name  query  string  true  "Mother's name, as registered"
// @Success      200  {file}  binary
// @Failure      404  {object}  map[string]string
// @Router       /v1/documents/hall-tickets/{id} [get]
func (h *DocumentHandler) HallTicket(c echo.Context) error {
	blob, err := h.service.HallTicket(c.Request().Context(), c.Param("id"), c.QueryParam("mother_name"))
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/pdf", blob)
}
