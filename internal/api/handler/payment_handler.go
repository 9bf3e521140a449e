package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scholarspoint/coaching-admin/internal/core/ports"
)

var paymentFilterKeys = []string{"receipt_no", "student_name", "mode"}

type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type recordPaymentRequest struct {
	StudentID string  `json:"student_id" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	Mode      string  `json:"mode,omitempty" validate:"omitempty,oneof=cash upi cheque card"`
}

// Record stores a fee payment against a student.
//
// @Summary      Record a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recordPaymentRequest  true  "Payment details"
// @Success      201   {object}  domain.Payment
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/payments [post]
func (h *PaymentHandler) Record(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req recordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payment, err := h.service.Record(c.Request().Context(), ports.RecordPaymentInput{
		StudentID:    req.StudentID,
		CounsellorID: identity.ID,
		Amount:       req.Amount,
		Mode:         req.Mode,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, payment)
}

// List returns the filtered, paginated payment view.
//
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listResponse
// @Router       /v1/payments [get]
func (h *PaymentHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), listInput(c, identity, paymentFilterKeys...))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result))
}
