package migration

import (
	"Coin-Loyalty-Backend/entities"
	"fmt"

	"gorm.io/gorm"
)

// At most one PENDING redemption may hold a given code. Valid on Postgres and SQLite.
const pendingRedeemCodeIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_redemption_requests_pending_code
ON redemption_requests (redeem_code) WHERE status = 'PENDING'`

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.Customer{}); err != nil {
		return fmt.Errorf("migrate customers: %w", err)
	}
	if err := db.AutoMigrate(&entities.PurchaseTransaction{}); err != nil {
		return fmt.Errorf("migrate purchase transactions: %w", err)
	}
	if err := db.AutoMigrate(&entities.RedemptionRequest{}); err != nil {
		return fmt.Errorf("migrate redemption requests: %w", err)
	}
	if err := db.AutoMigrate(&entities.RewardItem{}); err != nil {
		return fmt.Errorf("migrate reward items: %w", err)
	}

	if err := db.Exec(pendingRedeemCodeIndex).Error; err != nil {
		return fmt.Errorf("create pending redeem code index: %w", err)
	}
	return nil
}
