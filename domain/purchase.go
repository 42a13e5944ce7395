package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessRecordPurchase = "purchase recorded successfully"
	MessageSuccessGetPurchases   = "purchase history retrieved successfully"

	MessageFailedRecordPurchase = "failed to record purchase"
	MessageFailedGetPurchases   = "failed to retrieve purchase history"

	ErrInvalidAmount      = fmt.Errorf("%w: amount must be greater than zero", ErrInvalidInput)
	ErrAmountTooLarge     = fmt.Errorf("%w: amount must not exceed 999999999999.99", ErrInvalidInput)
	ErrAmountPrecision    = fmt.Errorf("%w: amount must have at most 2 decimal places", ErrInvalidInput)
	ErrInvalidPaymentMode = fmt.Errorf("%w: payment mode must be cash or online", ErrInvalidInput)
)

type (
	RecordPurchaseRequest struct {
		Phone       string          `json:"phone" validate:"required,min=4,max=20"`
		Amount      decimal.Decimal `json:"amount"`
		PaymentMode string          `json:"payment_mode" validate:"required,oneof=cash online"`
		// Name is only used when the purchase auto-registers a new customer.
		Name            string `json:"name" validate:"omitempty,max=100"`
		RequireExisting bool   `json:"require_existing"`
	}

	RecordPurchaseResponse struct {
		TransactionID  string  `json:"transaction_id"`
		CustomerID     string  `json:"customer_id"`
		Phone          string  `json:"phone"`
		CoinsEarned    int64   `json:"coins_earned"`
		NewBalance     int64   `json:"new_balance"`
		AutoRegistered bool    `json:"auto_registered"`
		Reveal         []int64 `json:"reveal"`
	}

	PurchaseTransaction struct {
		ID           string          `json:"id"`
		CustomerID   string          `json:"customer_id"`
		Amount       decimal.Decimal `json:"amount"`
		CoinsAwarded int64           `json:"coins_awarded"`
		PaymentMode  string          `json:"payment_mode"`
		CreatedAt    time.Time       `json:"created_at"`
	}
)
