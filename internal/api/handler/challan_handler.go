package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scholarspoint/coaching-admin/internal/core/domain"
	"github.com/scholarspoint/coaching-admin/internal/core/ports"
	"github.com/scholarspoint/coaching-admin/internal/core/query"
)

// challanFilterKeys are the field filters the challan view exposes.
var challanFilterKeys = []string{"challan_number", "counsellor_id", "centre", "status"}

type ChallanHandler struct {
	service ports.ChallanService
}

func NewChallanHandler(service ports.ChallanService) *ChallanHandler {
	return &ChallanHandler{service: service}
}

type challanItemRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Standard string `json:"standard,omitempty"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

type createChallanRequest struct {
	ChallanNumber string               `json:"challan_number,omitempty"`
	Centre        string               `json:"centre,omitempty"`
	Items         []challanItemRequest `json:"items" validate:"required,min=1,dive"`
}

// listResponse is the shared envelope for every filtered list view.
type listResponse struct {
	Items      []query.Record `json:"items"`
	Page       int            `json:"page"`
	Size       int            `json:"size"`
	TotalItems int            `json:"total_items"`
	TotalPages int            `json:"total_pages"`
	Stats      query.Stats    `json:"stats"`
}

func toListResponse(result *ports.ListResult) listResponse {
	return listResponse{
		Items:      result.Page.Items,
		Page:       result.Page.Number,
		Size:       result.Page.Size,
		TotalItems: result.Page.TotalItems,
		TotalPages: result.Page.TotalPages,
		Stats:      result.Stats,
	}
}

// Create registers a new challan dispatched to a counsellor.
//
// @Summary      Create a challan
// @Tags         challans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createChallanRequest  true  "Challan details"
// @Success      201   {object}  domain.Challan
// @Failure      400   {object}  map[string]string
// @Router       /v1/challans [post]
func (h *ChallanHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createChallanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	items := make([]domain.RawChallanItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = domain.RawChallanItem{
			Name:     it.Name,
			Category: it.Category,
			Standard: it.Standard,
			Quantity: it.Quantity,
		}
	}

	challan, err := h.service.Create(c.Request().Context(), ports.CreateChallanInput{
		ChallanNumber: req.ChallanNumber,
		CounsellorID:  identity.ID,
		Centre:        req.Centre,
		Items:         items,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, challan)
}

// List returns the filtered, paginated challan view with its statistics.
//
// @Summary      List challans
// @Tags         challans
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Free-text search"
// @Param        status  query     string  false  "pending | given | received"
// @Param        from    query     string  false  "Inclusive start date (2006-01-02)"
// @Param        to      query     string  false  "Inclusive end date (2006-01-02)"
// @Param        page    query     int     false  "1-based page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  listResponse
// @Router       /v1/challans [get]
func (h *ChallanHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), listInput(c, identity, challanFilterKeys...))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result))
}

// MarkGiven flips the given flag and responds with the refreshed list.
//
// @Summary      Mark a challan given
// @Tags         challans
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Challan id"
// @Success      200 {object}  listResponse
// @Failure      404 {object}  map[string]string
// @Router       /v1/challans/{id}/given [post]
func (h *ChallanHandler) MarkGiven(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.MarkGiven(c.Request().Context(), c.Param("id"), listInput(c, identity, challanFilterKeys...))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result))
}

// MarkReceived flips the received flag and responds with the refreshed list.
//
// @Summary      Mark a challan received
// @Tags         challans
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Challan id"
// @Success      200 {object}  listResponse
// @Failure      404 {object}  map[string]string
// @Router       /v1/challans/{id}/received [post]
func (h *ChallanHandler) MarkReceived(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.MarkReceived(c.Request().Context(), c.Param("id"), listInput(c, identity, challanFilterKeys...))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result))
}
