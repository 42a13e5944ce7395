package purchase

import (
	"Coin-Loyalty-Backend/domain"
	"Coin-Loyalty-Backend/entities"
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	PurchaseRepository interface {
		RecordPurchase(ctx context.Context, p PurchaseParams) (*PurchaseResult, error)
		GetPurchasesByCustomer(ctx context.Context, customerID string, page, limit int) ([]*entities.PurchaseTransaction, int64, error)
	}

	// PurchaseParams is a validated purchase with its reward already computed.
	PurchaseParams struct {
		Phone           string
		Name            string
		Amount          decimal.Decimal
		Coins           int64
		PaymentMode     string
		Week            string
		Month           string
		RequireExisting bool
	}

	PurchaseResult struct {
		Customer       *entities.Customer
		Transaction    *entities.PurchaseTransaction
		AutoRegistered bool
	}

	purchaseRepository struct {
		db *gorm.DB
	}
)

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{
		db: db,
	}
}

// RecordPurchase registers the customer when needed, credits the wallet and
// appends the transaction row in one database transaction.
func (r *purchaseRepository) RecordPurchase(ctx context.Context, p PurchaseParams) (*PurchaseResult, error) {
	result := &PurchaseResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !p.RequireExisting {
			created := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "phone"}},
				DoNothing: true,
			}).Create(&entities.Customer{Phone: p.Phone, Name: p.Name})
			if created.Error != nil {
				return fmt.Errorf("upsert customer: %w", created.Error)
			}
			result.AutoRegistered = created.RowsAffected == 1
		}

		var customer entities.Customer
		if err := tx.Where("phone = ?", p.Phone).First(&customer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrCustomerNotFound
			}
			return fmt.Errorf("load customer: %w", err)
		}

		credit := tx.Model(&entities.Customer{}).
			Where("id = ?", customer.ID).
			Updates(map[string]interface{}{
				"coins":       gorm.Expr("coins + ?", p.Coins),
				"total_spent": gorm.Expr("total_spent + CAST(? AS NUMERIC)", p.Amount),
				"weekly_spent": gorm.Expr(
					"CASE WHEN spend_week = ? THEN weekly_spent + CAST(? AS NUMERIC) ELSE CAST(? AS NUMERIC) END",
					p.Week, p.Amount, p.Amount),
				"monthly_spent": gorm.Expr(
					"CASE WHEN spend_month = ? THEN monthly_spent + CAST(? AS NUMERIC) ELSE CAST(? AS NUMERIC) END",
					p.Month, p.Amount, p.Amount),
				"spend_week":  p.Week,
				"spend_month": p.Month,
			})
		if credit.Error != nil {
			return fmt.Errorf("credit customer: %w", credit.Error)
		}
		if credit.RowsAffected == 0 {
			return domain.ErrCustomerNotFound
		}

		transaction := &entities.PurchaseTransaction{
			CustomerID:   customer.ID,
			Amount:       p.Amount,
			CoinsAwarded: p.Coins,
			PaymentMode:  p.PaymentMode,
		}
		if err := tx.Create(transaction).Error; err != nil {
			return fmt.Errorf("create purchase transaction: %w", err)
		}

		var updated entities.Customer
		if err := tx.Where("id = ?", customer.ID).First(&updated).Error; err != nil {
			return fmt.Errorf("reload customer: %w", err)
		}

		result.Customer = &updated
		result.Transaction = transaction
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *purchaseRepository) GetPurchasesByCustomer(ctx context.Context, customerID string, page, limit int) ([]*entities.PurchaseTransaction, int64, error) {
	var transactions []*entities.PurchaseTransaction
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).
		Model(&entities.PurchaseTransaction{}).
		Where("customer_id = ?", customerID)

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("count purchases: %w", err)
	}

	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("list purchases: %w", err)
	}

	return transactions, count, nil
}
