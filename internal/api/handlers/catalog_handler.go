package handlers

import (
	"Coin-Loyalty-Backend/domain"
	"Coin-Loyalty-Backend/internal/api/presenters"
	"Coin-Loyalty-Backend/pkg/catalog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CatalogHandler interface {
		CreateRewardItem(c *fiber.Ctx) error
		GetRewardItems(c *fiber.Ctx) error
		GetRewardItem(c *fiber.Ctx) error
		DeactivateRewardItem(c *fiber.Ctx) error
	}

	catalogHandler struct {
		catalogService catalog.CatalogService
		validator      *validator.Validate
	}
)

func NewCatalogHandler(catalogService catalog.CatalogService, validator *validator.Validate) CatalogHandler {
	return &catalogHandler{
		catalogService: catalogService,
		validator:      validator,
	}
}

func (h *catalogHandler) CreateRewardItem(c *fiber.Ctx) error {
	req := new(domain.CreateRewardItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateReward, err)
	}

	res, err := h.catalogService.CreateRewardItem(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedCreateReward, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateReward)
}

func (h *catalogHandler) GetRewardItems(c *fiber.Ctx) error {
	items, err := h.catalogService.GetActiveRewardItems(c.Context(), c.Query("category"))
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetRewards, err)
	}

	return presenters.SuccessResponse(c, items, fiber.StatusOK, domain.MessageSuccessGetRewards)
}

func (h *catalogHandler) GetRewardItem(c *fiber.Ctx) error {
	item, err := h.catalogService.GetRewardItem(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetReward, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessGetReward)
}

func (h *catalogHandler) DeactivateRewardItem(c *fiber.Ctx) error {
	if err := h.catalogService.DeactivateRewardItem(c.Context(), c.Params("id")); err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedDeactivateReward, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeactivateReward)
}
