package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/objetivatech/convergencia-empreendedora-sub000/checkout"
	"github.com/objetivatech/convergencia-empreendedora-sub000/models"
)

// Orchestrator is what the checkout route needs from the service layer.
type Orchestrator interface {
	Process(ctx context.Context, accountID uint, req *models.CheckoutRequest) (*models.CheckoutResponse, error)
}

type CheckoutHandler struct {
	Service Orchestrator
}

func NewCheckoutHandler(service Orchestrator) *CheckoutHandler {
	return &CheckoutHandler{Service: service}
}

func (h *CheckoutHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Checkout runs one purchase for the authenticated account.
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	var req models.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.CheckoutResponse{
			Success:   false,
			ErrorCode: "invalid_request",
			Message:   "invalid request body: " + err.Error(),
		})
	}

	resp, err := h.Service.Process(c.Context(), userIDFromLocals(c), &req)
	if err != nil {
		return c.Status(statusFor(err)).JSON(models.CheckoutResponse{
			Success:   false,
			ErrorCode: checkout.ErrorCode(err),
			Message:   err.Error(),
		})
	}
	return c.JSON(resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, checkout.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, checkout.ErrValidation), errors.Is(err, checkout.ErrInvalidRequest):
		return fiber.StatusBadRequest
	case errors.Is(err, checkout.ErrPaymentRejected):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, checkout.ErrGatewayUnavailable):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}
