package redemption

import (
	"Coin-Loyalty-Backend/domain"
	"Coin-Loyalty-Backend/entities"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type (
	RedemptionRepository interface {
		CreateRedemption(ctx context.Context, p CreateParams) (*CreateResult, error)
		ResolveRedemption(ctx context.Context, p ResolveParams) (*ResolveResult, error)
		GetPendingByCode(ctx context.Context, code string) (*entities.RedemptionRequest, error)
		GetRedemptions(ctx context.Context, status, customerID string, page, limit int) ([]*entities.RedemptionRequest, int64, error)
	}

	CreateParams struct {
		CustomerID   uuid.UUID
		RewardItemID *uuid.UUID
		ItemName     string
		ItemCategory string
		Coins        int64
		CashAmount   decimal.NullDecimal
		RedeemCode   string
	}

	CreateResult struct {
		Redemption *entities.RedemptionRequest
		NewBalance int64
	}

	ResolveParams struct {
		RedeemCode string
		// CustomerID narrows the lookup when set.
		CustomerID string
		Resolution domain.Resolution
		ResolvedAt time.Time
	}

	ResolveResult struct {
		Redemption *entities.RedemptionRequest
		// NewBalance is set only when coins were refunded.
		NewBalance *int64
	}

	redemptionRepository struct {
		db *gorm.DB
	}
)

func NewRedemptionRepository(db *gorm.DB) RedemptionRepository {
	return &redemptionRepository{
		db: db,
	}
}

// CreateRedemption debits the wallet and stores a PENDING request atomically.
func (r *redemptionRepository) CreateRedemption(ctx context.Context, p CreateParams) (*CreateResult, error) {
	result := &CreateResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pending int64
		if err := tx.Model(&entities.RedemptionRequest{}).
			Where("redeem_code = ? AND status = ?", p.RedeemCode, entities.RedemptionStatusPending).
			Count(&pending).Error; err != nil {
			return fmt.Errorf("check redeem code: %w", err)
		}
		if pending > 0 {
			return domain.ErrRedeemCodeTaken
		}

		debit := tx.Model(&entities.Customer{}).
			Where("id = ? AND coins >= ?", p.CustomerID, p.Coins).
			Updates(map[string]interface{}{
				"coins":       gorm.Expr("coins - ?", p.Coins),
				"total_spent": gorm.Expr("total_spent + CAST(? AS NUMERIC)", p.Coins),
			})
		if debit.Error != nil {
			return fmt.Errorf("debit customer: %w", debit.Error)
		}
		if debit.RowsAffected == 0 {
			var exists int64
			if err := tx.Model(&entities.Customer{}).Where("id = ?", p.CustomerID).Count(&exists).Error; err != nil {
				return fmt.Errorf("check customer: %w", err)
			}
			if exists == 0 {
				return domain.ErrCustomerNotFound
			}
			return domain.ErrInsufficientCoins
		}

		redemption := &entities.RedemptionRequest{
			CustomerID:   p.CustomerID,
			RewardItemID: p.RewardItemID,
			ItemName:     p.ItemName,
			ItemCategory: p.ItemCategory,
			CoinsSpent:   p.Coins,
			CashAmount:   p.CashAmount,
			Status:       entities.RedemptionStatusPending,
			RedeemCode:   p.RedeemCode,
		}
		if err := tx.Create(redemption).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrRedeemCodeTaken
			}
			return fmt.Errorf("create redemption: %w", err)
		}

		var customer entities.Customer
		if err := tx.Select("coins").Where("id = ?", p.CustomerID).First(&customer).Error; err != nil {
			return fmt.Errorf("reload balance: %w", err)
		}

		result.Redemption = redemption
		result.NewBalance = customer.Coins
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ResolveRedemption moves a PENDING request to its final status. The status
// guard on the UPDATE makes a second resolver see zero rows and lose.
func (r *redemptionRepository) ResolveRedemption(ctx context.Context, p ResolveParams) (*ResolveResult, error) {
	result := &ResolveResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var redemption entities.RedemptionRequest
		query := tx.Where("redeem_code = ? AND status = ?", p.RedeemCode, entities.RedemptionStatusPending)
		if p.CustomerID != "" {
			query = query.Where("customer_id = ?", p.CustomerID)
		}
		if err := query.First(&redemption).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRedemptionNotFound
			}
			return fmt.Errorf("find pending redemption: %w", err)
		}

		fields := map[string]interface{}{
			"status":      p.Resolution.Status(),
			"resolved_at": p.ResolvedAt,
		}
		if _, ok := p.Resolution.(domain.Approve); ok {
			fields["approved_by"] = p.Resolution.Resolver()
		}

		swap := tx.Model(&entities.RedemptionRequest{}).
			Where("id = ? AND status = ?", redemption.ID, entities.RedemptionStatusPending).
			Updates(fields)
		if swap.Error != nil {
			return fmt.Errorf("resolve redemption: %w", swap.Error)
		}
		if swap.RowsAffected == 0 {
			return domain.ErrRedemptionNotFound
		}

		if _, ok := p.Resolution.(domain.Reject); ok {
			refund := tx.Model(&entities.Customer{}).
				Where("id = ?", redemption.CustomerID).
				Updates(map[string]interface{}{
					"coins":       gorm.Expr("coins + ?", redemption.CoinsSpent),
					"total_spent": gorm.Expr("total_spent - CAST(? AS NUMERIC)", redemption.CoinsSpent),
				})
			if refund.Error != nil {
				return fmt.Errorf("refund customer: %w", refund.Error)
			}
			if refund.RowsAffected == 0 {
				return domain.ErrCustomerNotFound
			}

			var customer entities.Customer
			if err := tx.Select("coins").Where("id = ?", redemption.CustomerID).First(&customer).Error; err != nil {
				return fmt.Errorf("reload balance: %w", err)
			}
			result.NewBalance = &customer.Coins
		}

		var resolved entities.RedemptionRequest
		if err := tx.Where("id = ?", redemption.ID).First(&resolved).Error; err != nil {
			return fmt.Errorf("reload redemption: %w", err)
		}
		result.Redemption = &resolved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *redemptionRepository) GetPendingByCode(ctx context.Context, code string) (*entities.RedemptionRequest, error) {
	var redemption entities.RedemptionRequest
	if err := r.db.WithContext(ctx).
		Where("redeem_code = ? AND status = ?", code, entities.RedemptionStatusPending).
		First(&redemption).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRedemptionNotFound
		}
		return nil, fmt.Errorf("get redemption by code: %w", err)
	}
	return &redemption, nil
}

func (r *redemptionRepository) GetRedemptions(ctx context.Context, status, customerID string, page, limit int) ([]*entities.RedemptionRequest, int64, error) {
	var redemptions []*entities.RedemptionRequest
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.RedemptionRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("count redemptions: %w", err)
	}

	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&redemptions).Error; err != nil {
		return nil, 0, fmt.Errorf("list redemptions: %w", err)
	}

	return redemptions, count, nil
}
