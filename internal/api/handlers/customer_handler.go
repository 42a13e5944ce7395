package handlers

import (
	"Coin-Loyalty-Backend/domain"
	"Coin-Loyalty-Backend/internal/api/presenters"
	"Coin-Loyalty-Backend/pkg/customer"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CustomerHandler interface {
		RegisterCustomer(c *fiber.Ctx) error
		GetCustomers(c *fiber.Ctx) error
		GetCustomer(c *fiber.Ctx) error
		GetCustomerByPhone(c *fiber.Ctx) error
		UpdateCustomer(c *fiber.Ctx) error
	}

	customerHandler struct {
		customerService customer.CustomerService
		validator       *validator.Validate
	}
)

func NewCustomerHandler(customerService customer.CustomerService, validator *validator.Validate) CustomerHandler {
	return &customerHandler{
		customerService: customerService,
		validator:       validator,
	}
}

func (h *customerHandler) RegisterCustomer(c *fiber.Ctx) error {
	req := new(domain.RegisterCustomerRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRegisterCustomer, err)
	}

	res, err := h.customerService.RegisterCustomer(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedRegisterCustomer, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRegisterCustomer)
}

func (h *customerHandler) GetCustomers(c *fiber.Ctx) error {
	page, limit := pagination(c)

	customers, count, err := h.customerService.GetCustomers(c.Context(), domain.ListCustomersRequest{
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetCustomers, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"customers":  customers,
		"pagination": domain.NewPagination(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetCustomers)
}

func (h *customerHandler) GetCustomer(c *fiber.Ctx) error {
	res, err := h.customerService.GetCustomerByID(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetCustomer, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCustomer)
}

func (h *customerHandler) GetCustomerByPhone(c *fiber.Ctx) error {
	res, err := h.customerService.GetCustomerByPhone(c.Context(), c.Params("phone"))
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetCustomer, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCustomer)
}

func (h *customerHandler) UpdateCustomer(c *fiber.Ctx) error {
	req := new(domain.UpdateCustomerRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateCustomer, err)
	}

	res, err := h.customerService.UpdateCustomer(c.Context(), c.Params("id"), *req)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedUpdateCustomer, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateCustomer)
}
