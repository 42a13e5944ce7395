package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Customer struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Phone        string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	Name         string          `json:"name"`
	PhotoURL     string          `json:"photo_url,omitempty"`
	DateOfBirth  *time.Time      `json:"date_of_birth,omitempty"`
	Coins        int64           `gorm:"not null;default:0;check:chk_customers_coins,coins >= 0" json:"coins"`
	TotalSpent   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_spent"`
	WeeklySpent  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"weekly_spent"`
	MonthlySpent decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"monthly_spent"`
	SpendWeek    string          `gorm:"type:varchar(8)" json:"spend_week"`  // ISO week key, e.g. 2026-W42
	SpendMonth   string          `gorm:"type:varchar(7)" json:"spend_month"` // e.g. 2026-10

	PurchaseTransactions []*PurchaseTransaction `gorm:"foreignKey:CustomerID" json:"-"`
	RedemptionRequests   []*RedemptionRequest   `gorm:"foreignKey:CustomerID" json:"-"`
	Timestamp
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
