package handlers

import (
	"Coin-Loyalty-Backend/domain"
	"Coin-Loyalty-Backend/internal/api/presenters"
	"Coin-Loyalty-Backend/internal/middleware"
	"Coin-Loyalty-Backend/pkg/redemption"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RedemptionHandler interface {
		RequestRedemption(c *fiber.Ctx) error
		ResolveRedemption(c *fiber.Ctx) error
		GetRedemptions(c *fiber.Ctx) error
		GetPendingByCode(c *fiber.Ctx) error
		GetCustomerRedemptions(c *fiber.Ctx) error
	}

	redemptionHandler struct {
		redemptionService redemption.RedemptionService
		validator         *validator.Validate
	}
)

func NewRedemptionHandler(redemptionService redemption.RedemptionService, validator *validator.Validate) RedemptionHandler {
	return &redemptionHandler{
		redemptionService: redemptionService,
		validator:         validator,
	}
}

func (h *redemptionHandler) RequestRedemption(c *fiber.Ctx) error {
	req := new(domain.RequestRedemptionRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRequestRedemption, err)
	}

	// Customers may only spend their own coins.
	if c.Locals(middleware.LocalRole) == domain.RoleCustomer && c.Locals(middleware.LocalSubjectID) != req.CustomerID {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MesaageUserNotAllowed, domain.ErrUserNotAllowed)
	}

	res, err := h.redemptionService.RequestRedemption(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedRequestRedemption, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRequestRedemption)
}

func (h *redemptionHandler) ResolveRedemption(c *fiber.Ctx) error {
	req := new(domain.ResolveRedemptionRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedResolveRedemption, err)
	}

	staffID, _ := c.Locals(middleware.LocalSubjectID).(string)
	resolution, err := domain.ParseResolution(req.Action, staffID)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedResolveRedemption, err)
	}

	res, err := h.redemptionService.ResolveRedemption(c.Context(), req.RedeemCode, req.CustomerID, resolution)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedResolveRedemption, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessResolveRedemption)
}

func (h *redemptionHandler) GetRedemptions(c *fiber.Ctx) error {
	page, limit := pagination(c)

	redemptions, count, err := h.redemptionService.GetRedemptions(c.Context(), domain.ListRedemptionsRequest{
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetRedemptions, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"redemptions": redemptions,
		"pagination":  domain.NewPagination(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetRedemptions)
}

func (h *redemptionHandler) GetPendingByCode(c *fiber.Ctx) error {
	res, err := h.redemptionService.GetPendingByCode(c.Context(), c.Params("code"))
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetRedemption, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRedemption)
}

func (h *redemptionHandler) GetCustomerRedemptions(c *fiber.Ctx) error {
	page, limit := pagination(c)

	redemptions, count, err := h.redemptionService.GetRedemptions(c.Context(), domain.ListRedemptionsRequest{
		Status:     c.Query("status"),
		CustomerID: c.Params("id"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetRedemptions, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"redemptions": redemptions,
		"pagination":  domain.NewPagination(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetRedemptions)
}
