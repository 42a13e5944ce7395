package handlers

import (
	"Coin-Loyalty-Backend/domain"
	"Coin-Loyalty-Backend/internal/api/presenters"
	"Coin-Loyalty-Backend/pkg/purchase"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PurchaseHandler interface {
		RecordPurchase(c *fiber.Ctx) error
		GetPurchaseHistory(c *fiber.Ctx) error
	}

	purchaseHandler struct {
		purchaseService purchase.PurchaseService
		validator       *validator.Validate
	}
)

func NewPurchaseHandler(purchaseService purchase.PurchaseService, validator *validator.Validate) PurchaseHandler {
	return &purchaseHandler{
		purchaseService: purchaseService,
		validator:       validator,
	}
}

func (h *purchaseHandler) RecordPurchase(c *fiber.Ctx) error {
	req := new(domain.RecordPurchaseRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRecordPurchase, err)
	}

	resp, err := h.purchaseService.RecordPurchase(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedRecordPurchase, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusCreated, domain.MessageSuccessRecordPurchase)
}

func (h *purchaseHandler) GetPurchaseHistory(c *fiber.Ctx) error {
	page, limit := pagination(c)

	transactions, count, err := h.purchaseService.GetPurchaseHistory(c.Context(), c.Params("id"), page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetPurchases, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"transactions": transactions,
		"pagination":   domain.NewPagination(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetPurchases)
}
