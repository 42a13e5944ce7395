package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	RedemptionStatusPending  = "PENDING"
	RedemptionStatusApproved = "APPROVED"
	RedemptionStatusRejected = "REJECTED"
)

type RedemptionRequest struct {
	ID           uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID   uuid.UUID           `gorm:"type:uuid;index;not null" json:"customer_id"`
	RewardItemID *uuid.UUID          `gorm:"type:uuid" json:"reward_item_id,omitempty"`
	ItemName     string              `gorm:"not null" json:"item_name"`
	ItemCategory string              `json:"item_category"`
	CoinsSpent   int64               `gorm:"not null" json:"coins_spent"`
	CashAmount   decimal.NullDecimal `gorm:"type:numeric(14,2)" json:"cash_amount"`
	Status       string              `gorm:"type:varchar(10);index;not null" json:"status"`
	RedeemCode   string              `gorm:"type:varchar(6);index;not null" json:"redeem_code"`
	ApprovedBy   *string             `json:"approved_by,omitempty"`
	ResolvedAt   *time.Time          `json:"resolved_at,omitempty"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"-"`
	Timestamp
}

func (r *RedemptionRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
