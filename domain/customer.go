package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessRegisterCustomer = "customer registered successfully"
	MessageSuccessGetCustomer      = "customer retrieved successfully"
	MessageSuccessGetCustomers     = "customers retrieved successfully"
	MessageSuccessUpdateCustomer   = "customer updated successfully"

	MessageFailedRegisterCustomer = "failed to register customer"
	MessageFailedGetCustomer      = "failed to retrieve customer"
	MessageFailedGetCustomers     = "failed to retrieve customers"
	MessageFailedUpdateCustomer   = "failed to update customer"

	ErrCustomerNotFound = fmt.Errorf("customer %w", ErrNotFound)
	ErrCustomerExists   = fmt.Errorf("%w: customer with this phone already exists", ErrConflict)
	ErrInvalidPhone     = fmt.Errorf("%w: phone number is required", ErrInvalidInput)
	ErrInvalidBirthDate = fmt.Errorf("%w: date of birth must be YYYY-MM-DD", ErrInvalidInput)
)

type (
	Customer struct {
		ID           string          `json:"id"`
		Phone        string          `json:"phone"`
		Name         string          `json:"name"`
		PhotoURL     string          `json:"photo_url,omitempty"`
		DateOfBirth  *time.Time      `json:"date_of_birth,omitempty"`
		Coins        int64           `json:"coins"`
		TotalSpent   decimal.Decimal `json:"total_spent"`
		WeeklySpent  decimal.Decimal `json:"weekly_spent"`
		MonthlySpent decimal.Decimal `json:"monthly_spent"`
		CreatedAt    time.Time       `json:"created_at"`
	}

	RegisterCustomerRequest struct {
		Phone       string `json:"phone" validate:"required,min=4,max=20"`
		Name        string `json:"name" validate:"omitempty,max=100"`
		DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	}

	UpdateCustomerRequest struct {
		Name        *string `json:"name" validate:"omitempty,max=100"`
		PhotoURL    *string `json:"photo_url" validate:"omitempty,url"`
		DateOfBirth *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	}

	ListCustomersRequest struct {
		Search string
		Page   int
		Limit  int
	}
)
