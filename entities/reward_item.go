package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RewardItem struct {
	ID            uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	Name          string              `gorm:"not null" json:"name"`
	Category      string              `json:"category"`
	Description   string              `json:"description,omitempty"`
	RequiredCoins int64               `gorm:"not null" json:"required_coins"`
	CashAmount    decimal.NullDecimal `gorm:"type:numeric(14,2)" json:"cash_amount"`
	ImageURL      string              `json:"image_url,omitempty"`
	IsActive      bool                `gorm:"not null" json:"is_active"`

	Timestamp
}

func (i *RewardItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
