package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaymentModeCash   = "cash"
	PaymentModeOnline = "online"
)

// PurchaseTransaction is an append-only ledger row. CoinsAwarded is fixed at creation.
type PurchaseTransaction struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID   uuid.UUID       `gorm:"type:uuid;index;not null" json:"customer_id"`
	Amount       decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	CoinsAwarded int64           `gorm:"not null" json:"coins_awarded"`
	PaymentMode  string          `gorm:"type:varchar(10);not null" json:"payment_mode"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"-"`
	Timestamp
}

func (t *PurchaseTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
