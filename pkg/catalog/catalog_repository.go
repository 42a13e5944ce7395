package catalog

import (
	"Coin-Loyalty-Backend/domain"
	"Coin-Loyalty-Backend/entities"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type (
	CatalogRepository interface {
		CreateRewardItem(ctx context.Context, item *entities.RewardItem) error
		GetRewardItemByID(ctx context.Context, id string) (*entities.RewardItem, error)
		GetActiveRewardItems(ctx context.Context, category string) ([]*entities.RewardItem, error)
		DeactivateRewardItem(ctx context.Context, id string) error
	}

	catalogRepository struct {
		db *gorm.DB
	}
)

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{
		db: db,
	}
}

func (r *catalogRepository) CreateRewardItem(ctx context.Context, item *entities.RewardItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("create reward item: %w", err)
	}
	return nil
}

func (r *catalogRepository) GetRewardItemByID(ctx context.Context, id string) (*entities.RewardItem, error) {
	var item entities.RewardItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRewardItemNotFound
		}
		return nil, fmt.Errorf("get reward item: %w", err)
	}
	return &item, nil
}

func (r *catalogRepository) GetActiveRewardItems(ctx context.Context, category string) ([]*entities.RewardItem, error) {
	var items []*entities.RewardItem
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Order("required_coins ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list reward items: %w", err)
	}
	return items, nil
}

func (r *catalogRepository) DeactivateRewardItem(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.RewardItem{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("deactivate reward item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrRewardItemNotFound
	}
	return nil
}
