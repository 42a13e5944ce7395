package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessRequestRedemption = "redemption requested successfully"
	MessageSuccessResolveRedemption = "redemption resolved successfully"
	MessageSuccessGetRedemptions    = "redemptions retrieved successfully"
	MessageSuccessGetRedemption     = "redemption retrieved successfully"

	MessageFailedRequestRedemption = "failed to request redemption"
	MessageFailedResolveRedemption = "failed to resolve redemption"
	MessageFailedGetRedemptions    = "failed to retrieve redemptions"
	MessageFailedGetRedemption     = "failed to retrieve redemption"

	ErrInsufficientCoins     = fmt.Errorf("%w: insufficient coins", ErrInsufficientBalance)
	ErrRedemptionNotFound    = fmt.Errorf("redemption code %w or already resolved", ErrNotFound)
	ErrRedeemCodeTaken       = fmt.Errorf("%w: redeem code already pending", ErrConflict)
	ErrInvalidAction         = fmt.Errorf("%w: action must be APPROVE or REJECT", ErrInvalidInput)
	ErrInvalidRedeemCode     = fmt.Errorf("%w: redeem code is required", ErrInvalidInput)
	ErrMissingResolver       = fmt.Errorf("%w: resolver identity is required", ErrInvalidInput)
	ErrInvalidRedemptionItem = fmt.Errorf("%w: item name or item_id is required", ErrInvalidInput)
	ErrInvalidStatusFilter   = fmt.Errorf("%w: status must be PENDING, APPROVED or REJECTED", ErrInvalidInput)
)

const (
	ActionApprove = "APPROVE"
	ActionReject  = "REJECT"
)

// Resolution is the closed set of transitions out of PENDING.
type Resolution interface {
	Status() string
	Resolver() string
	isResolution()
}

// Approve finalises a redemption. Coins stay debited.
type Approve struct {
	ResolverID string
}

// Reject finalises a redemption and refunds the debited coins.
type Reject struct {
	ResolverID string
}

func (Approve) Status() string     { return "APPROVED" }
func (a Approve) Resolver() string { return a.ResolverID }
func (Approve) isResolution()      {}

func (Reject) Status() string     { return "REJECTED" }
func (r Reject) Resolver() string { return r.ResolverID }
func (Reject) isResolution()      {}

// ParseResolution maps a wire action onto a Resolution.
func ParseResolution(action, resolverID string) (Resolution, error) {
	resolverID = strings.TrimSpace(resolverID)
	if resolverID == "" {
		return nil, ErrMissingResolver
	}
	switch strings.ToUpper(strings.TrimSpace(action)) {
	case ActionApprove:
		return Approve{ResolverID: resolverID}, nil
	case ActionReject:
		return Reject{ResolverID: resolverID}, nil
	default:
		return nil, ErrInvalidAction
	}
}

type (
	RedemptionItem struct {
		Name          string              `json:"name" validate:"omitempty,max=100"`
		Category      string              `json:"category" validate:"omitempty,max=50"`
		RequiredCoins int64               `json:"required_coins" validate:"omitempty,min=1"`
		CashAmount    decimal.NullDecimal `json:"cash_amount"`
	}

	RequestRedemptionRequest struct {
		CustomerID string          `json:"customer_id" validate:"required,uuid"`
		ItemID     string          `json:"item_id" validate:"omitempty,uuid"`
		Item       *RedemptionItem `json:"item" validate:"omitempty"`
	}

	RequestRedemptionResponse struct {
		RedemptionID string `json:"redemption_id"`
		RedeemCode   string `json:"redeem_code"`
		Status       string `json:"status"`
		CoinsSpent   int64  `json:"coins_spent"`
		NewBalance   int64  `json:"new_balance"`
	}

	ResolveRedemptionRequest struct {
		RedeemCode string `json:"redeem_code" validate:"required,len=6,numeric"`
		// Action is matched case-insensitively by ParseResolution.
		Action string `json:"action" validate:"required"`
		// CustomerID optionally narrows the code lookup.
		CustomerID string `json:"customer_id" validate:"omitempty,uuid"`
	}

	ResolveRedemptionResponse struct {
		RedemptionID string `json:"redemption_id"`
		RedeemCode   string `json:"redeem_code"`
		Status       string `json:"status"`
		CoinsSpent   int64  `json:"coins_spent"`
		// NewBalance is only reported on REJECT, where the refund changes it.
		NewBalance *int64 `json:"new_balance,omitempty"`
	}

	Redemption struct {
		ID           string              `json:"id"`
		CustomerID   string              `json:"customer_id"`
		ItemName     string              `json:"item_name"`
		ItemCategory string              `json:"item_category"`
		CoinsSpent   int64               `json:"coins_spent"`
		CashAmount   decimal.NullDecimal `json:"cash_amount"`
		Status       string              `json:"status"`
		RedeemCode   string              `json:"redeem_code"`
		ApprovedBy   *string             `json:"approved_by,omitempty"`
		ResolvedAt   *time.Time          `json:"resolved_at,omitempty"`
		CreatedAt    time.Time           `json:"created_at"`
	}

	ListRedemptionsRequest struct {
		Status     string
		CustomerID string
		Page       int
		Limit      int
	}
)
