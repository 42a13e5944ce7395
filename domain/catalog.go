package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessCreateReward     = "reward item created successfully"
	MessageSuccessGetRewards       = "reward items retrieved successfully"
	MessageSuccessGetReward        = "reward item retrieved successfully"
	MessageSuccessDeactivateReward = "reward item deactivated successfully"

	MessageFailedCreateReward     = "failed to create reward item"
	MessageFailedGetRewards       = "failed to retrieve reward items"
	MessageFailedGetReward        = "failed to retrieve reward item"
	MessageFailedDeactivateReward = "failed to deactivate reward item"

	ErrRewardItemNotFound = fmt.Errorf("reward item %w", ErrNotFound)
	ErrInvalidCoinCost    = fmt.Errorf("%w: required coins must be greater than zero", ErrInvalidInput)
)

type (
	RewardItem struct {
		ID            string              `json:"id"`
		Name          string              `json:"name"`
		Category      string              `json:"category"`
		Description   string              `json:"description,omitempty"`
		RequiredCoins int64               `json:"required_coins"`
		CashAmount    decimal.NullDecimal `json:"cash_amount"`
		ImageURL      string              `json:"image_url,omitempty"`
		CreatedAt     time.Time           `json:"created_at"`
	}

	CreateRewardItemRequest struct {
		Name          string              `json:"name" validate:"required,max=100"`
		Category      string              `json:"category" validate:"required,max=50"`
		Description   string              `json:"description" validate:"omitempty,max=500"`
		RequiredCoins int64               `json:"required_coins" validate:"required,min=1"`
		CashAmount    decimal.NullDecimal `json:"cash_amount"`
		ImageURL      string              `json:"image_url" validate:"omitempty,url"`
	}
)
