package catalog

import (
	"Coin-Loyalty-Backend/domain"
	"Coin-Loyalty-Backend/entities"
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	activeItemsKeyPrefix = "catalog:active:"
	activeItemsTTL       = 5 * time.Minute
)

type (
	CatalogService interface {
		CreateRewardItem(ctx context.Context, req domain.CreateRewardItemRequest) (*domain.RewardItem, error)
		GetRewardItem(ctx context.Context, id string) (*domain.RewardItem, error)
		GetActiveRewardItems(ctx context.Context, category string) ([]*domain.RewardItem, error)
		DeactivateRewardItem(ctx context.Context, id string) error
	}

	// Cache is the subset of the redis helper the catalog needs.
	Cache interface {
		GetJSON(ctx context.Context, key string, dest any) (bool, error)
		SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
		Delete(ctx context.Context, keys ...string) error
	}

	catalogService struct {
		catalogRepository CatalogRepository
		cache             Cache
		logger            *zap.Logger
	}
)

// NewCatalogService builds the service. A nil cache reads straight from the database.
func NewCatalogService(catalogRepository CatalogRepository, cache Cache, logger *zap.Logger) CatalogService {
	return &catalogService{
		catalogRepository: catalogRepository,
		cache:             cache,
		logger:            logger.Named("catalog"),
	}
}

func activeItemsKey(category string) string {
	if category == "" {
		return activeItemsKeyPrefix + "all"
	}
	return activeItemsKeyPrefix + category
}

func (s *catalogService) CreateRewardItem(ctx context.Context, req domain.CreateRewardItemRequest) (*domain.RewardItem, error) {
	if req.RequiredCoins <= 0 {
		return nil, domain.ErrInvalidCoinCost
	}

	item := &entities.RewardItem{
		Name:          strings.TrimSpace(req.Name),
		Category:      strings.TrimSpace(req.Category),
		Description:   req.Description,
		RequiredCoins: req.RequiredCoins,
		CashAmount:    req.CashAmount,
		ImageURL:      req.ImageURL,
		IsActive:      true,
	}
	if err := s.catalogRepository.CreateRewardItem(ctx, item); err != nil {
		return nil, err
	}

	s.invalidate(ctx, item.Category)
	return ToDomain(item), nil
}

func (s *catalogService) GetRewardItem(ctx context.Context, id string) (*domain.RewardItem, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrParseUUID
	}
	item, err := s.catalogRepository.GetRewardItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.IsActive {
		return nil, domain.ErrRewardItemNotFound
	}
	return ToDomain(item), nil
}

func (s *catalogService) GetActiveRewardItems(ctx context.Context, category string) ([]*domain.RewardItem, error) {
	category = strings.TrimSpace(category)
	key := activeItemsKey(category)

	if s.cache != nil {
		var cached []*domain.RewardItem
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	items, err := s.catalogRepository.GetActiveRewardItems(ctx, category)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.RewardItem, 0, len(items))
	for _, item := range items {
		result = append(result, ToDomain(item))
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, result, activeItemsTTL); err != nil {
			s.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return result, nil
}

func (s *catalogService) DeactivateRewardItem(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrParseUUID
	}
	item, err := s.catalogRepository.GetRewardItemByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.catalogRepository.DeactivateRewardItem(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, item.Category)
	return nil
}

func (s *catalogService) invalidate(ctx context.Context, category string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, activeItemsKey(""), activeItemsKey(category)); err != nil {
		s.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

func ToDomain(item *entities.RewardItem) *domain.RewardItem {
	return &domain.RewardItem{
		ID:            item.ID.String(),
		Name:          item.Name,
		Category:      item.Category,
		Description:   item.Description,
		RequiredCoins: item.RequiredCoins,
		CashAmount:    item.CashAmount,
		ImageURL:      item.ImageURL,
		CreatedAt:     item.CreatedAt,
	}
}
