package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scholarspoint/coaching-admin/internal/core/ports"
)

type TemplateHandler struct {
	service ports.TemplateService
}

func NewTemplateHandler(service ports.TemplateService) *TemplateHandler {
	return &TemplateHandler{service: service}
}

type templateRequest struct {
	Name string `json:"name" validate:"required"`
	Body string `json:"body" validate:"required"`
}

// Create stores a WhatsApp message template.
//
// @Summary      Create a template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      templateRequest  true  "Template"
// @Success      201   {object}  domain.MessageTemplate
// @Router       /v1/templates [post]
func (h *TemplateHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req templateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tpl, err := h.service.Create(c.Request().Context(), req.Name, req.Body, identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tpl)
}

// List returns the template catalogue.
//
// @Summary      List templates
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.MessageTemplate
// @Router       /v1/templates [get]
func (h *TemplateHandler) List(c echo.Context) error {
	templates, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, templates)
}

// Update rewrites a template's name and body.
//
// @Summary      Update a template
// @Tags         templates
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string           true  "Template id"
// @Param        body  body  templateRequest  true  "Template"
// @Success      204
// @Failure      404   {object}  map[string]string
// @Router       /v1/templates/{id} [put]
func (h *TemplateHandler) Update(c echo.Context) error {
	var req templateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Update(c.Request().Context(), c.Param("id"), req.Name, req.Body); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a template.
//
// @Summary      Delete a template
// @Tags         templates
// @Security     BearerAuth
// @Param        id  path  string  true  "Template id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/templates/{id} [delete]
func (h *TemplateHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
