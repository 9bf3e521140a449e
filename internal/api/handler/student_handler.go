package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scholarspoint/coaching-admin/internal/core/domain"
	"github.com/scholarspoint/coaching-admin/internal/core/ports"
)

var (
	studentFilterKeys = []string{"name", "standard", "school", "centre", "phone"}
	visitFilterKeys   = []string{"place", "purpose"}
)

type StudentHandler struct {
	service ports.StudentService
}

func NewStudentHandler(service ports.StudentService) *StudentHandler {
	return &StudentHandler{service: service}
}

type registerStudentRequest struct {
	Name       string `json:"name" validate:"required"`
	FatherName string `json:"father_name,omitempty"`
	MotherName string `json:"mother_name,omitempty"`
	Standard   string `json:"standard" validate:"required"`
	School     string `json:"school,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Centre     string `json:"centre,omitempty"`
}

type recordVisitRequest struct {
	Place   string `json:"place" validate:"required"`
	Purpose string `json:"purpose,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// Register creates a student record.
//
// @Summary      Register a student
// @Tags         students
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerStudentRequest  true  "Student details"
// @Success      201   {object}  domain.Student
// @Failure      400   {object}  map[string]string
// @Router       /v1/students [post]
func (h *StudentHandler) Register(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req registerStudentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	student, err := h.service.Register(c.Request().Context(), ports.RegisterStudentInput{
		Name:         req.Name,
		FatherName:   req.FatherName,
		MotherName:   req.MotherName,
		Standard:     req.Standard,
		School:       req.School,
		Phone:        req.Phone,
		Centre:       req.Centre,
		CounsellorID: identity.ID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, student)
}

// List returns the filtered, paginated student view.
//
// @Summary      List students
// @Tags         students
// @Produce      json
// @Security     BearerAuth
// @Param        search    query     string  false  "Free-text search"
// @Param        standard  query     string  false  "Standard filter"
// @Param        page      query     int     false  "1-based page number"
// @Param        limit     query     int     false  "Page size"
// @Success      200       {object}  listResponse
// @Router       /v1/students [get]
func (h *StudentHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), listInput(c, identity, studentFilterKeys...))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result))
}

// RecordVisit stores a counsellor visit.
//
// @Summary      Record a visit
// @Tags         visits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recordVisitRequest  true  "Visit details"
// @Success      201   {object}  domain.Visit
// @Router       /v1/visits [post]
func (h *StudentHandler) RecordVisit(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req recordVisitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	visit, err := h.service.RecordVisit(c.Request().Context(), &domain.Visit{
		CounsellorID: identity.ID,
		Place:        req.Place,
		Purpose:      req.Purpose,
		Notes:        req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, visit)
}

// ListVisits returns the filtered, paginated visit view.
//
// @Summary      List visits
// @Tags         visits
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listResponse
// @Router       /v1/visits [get]
func (h *StudentHandler) ListVisits(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.ListVisits(c.Request().Context(), listInput(c, identity, visitFilterKeys...))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result))
}
