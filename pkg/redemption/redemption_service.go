package redemption

import (
	"Coin-Loyalty-Backend/domain"
	"Coin-Loyalty-Backend/entities"
	"Coin-Loyalty-Backend/internal/metrics"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxCodeAttempts = 5

type (
	RedemptionService interface {
		RequestRedemption(ctx context.Context, req domain.RequestRedemptionRequest) (*domain.RequestRedemptionResponse, error)
		ResolveRedemption(ctx context.Context, code, customerID string, resolution domain.Resolution) (*domain.ResolveRedemptionResponse, error)
		GetPendingByCode(ctx context.Context, code string) (*domain.Redemption, error)
		GetRedemptions(ctx context.Context, req domain.ListRedemptionsRequest) ([]*domain.Redemption, int64, error)
	}

	// RewardLookup resolves catalog items referenced by item_id.
	RewardLookup interface {
		GetRewardItemByID(ctx context.Context, id string) (*entities.RewardItem, error)
	}

	redemptionService struct {
		redemptionRepository RedemptionRepository
		rewards              RewardLookup
		logger               *zap.Logger
		metrics              *metrics.Metrics
		newCode              func() (string, error)
		clock                func() time.Time
	}
)

func NewRedemptionService(redemptionRepository RedemptionRepository, rewards RewardLookup, logger *zap.Logger, m *metrics.Metrics) RedemptionService {
	return &redemptionService{
		redemptionRepository: redemptionRepository,
		rewards:              rewards,
		logger:               logger.Named("redemption"),
		metrics:              m,
		newCode:              GenerateRedeemCode,
		clock:                time.Now,
	}
}

func (s *redemptionService) RequestRedemption(ctx context.Context, req domain.RequestRedemptionRequest) (*domain.RequestRedemptionResponse, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	params, err := s.itemParams(ctx, req)
	if err != nil {
		return nil, err
	}
	params.CustomerID = customerID

	var result *CreateResult
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		params.RedeemCode, err = s.newCode()
		if err != nil {
			return nil, err
		}
		result, err = s.redemptionRepository.CreateRedemption(ctx, params)
		if !errors.Is(err, domain.ErrRedeemCodeTaken) {
			break
		}
		s.logger.Debug("redeem code collision, retrying", zap.Int("attempt", attempt))
	}
	if err != nil {
		return nil, err
	}

	s.metrics.RedemptionTransition(entities.RedemptionStatusPending, params.Coins)
	s.logger.Info("redemption requested",
		zap.String("redemption_id", result.Redemption.ID.String()),
		zap.String("customer_id", customerID.String()),
		zap.Int64("coins", params.Coins),
	)

	return &domain.RequestRedemptionResponse{
		RedemptionID: result.Redemption.ID.String(),
		RedeemCode:   result.Redemption.RedeemCode,
		Status:       result.Redemption.Status,
		CoinsSpent:   result.Redemption.CoinsSpent,
		NewBalance:   result.NewBalance,
	}, nil
}

// itemParams prefers the catalog entry when item_id is given.
func (s *redemptionService) itemParams(ctx context.Context, req domain.RequestRedemptionRequest) (CreateParams, error) {
	if req.ItemID != "" {
		if _, err := uuid.Parse(req.ItemID); err != nil {
			return CreateParams{}, domain.ErrParseUUID
		}
		if s.rewards == nil {
			return CreateParams{}, domain.ErrRewardItemNotFound
		}
		item, err := s.rewards.GetRewardItemByID(ctx, req.ItemID)
		if err != nil {
			return CreateParams{}, err
		}
		if !item.IsActive {
			return CreateParams{}, domain.ErrRewardItemNotFound
		}
		if item.RequiredCoins <= 0 {
			return CreateParams{}, domain.ErrInvalidCoinCost
		}
		id := item.ID
		return CreateParams{
			RewardItemID: &id,
			ItemName:     item.Name,
			ItemCategory: item.Category,
			Coins:        item.RequiredCoins,
			CashAmount:   item.CashAmount,
		}, nil
	}

	if req.Item == nil || strings.TrimSpace(req.Item.Name) == "" {
		return CreateParams{}, domain.ErrInvalidRedemptionItem
	}
	if req.Item.RequiredCoins <= 0 {
		return CreateParams{}, domain.ErrInvalidCoinCost
	}
	return CreateParams{
		ItemName:     strings.TrimSpace(req.Item.Name),
		ItemCategory: strings.TrimSpace(req.Item.Category),
		Coins:        req.Item.RequiredCoins,
		CashAmount:   req.Item.CashAmount,
	}, nil
}

func (s *redemptionService) ResolveRedemption(ctx context.Context, code, customerID string, resolution domain.Resolution) (*domain.ResolveRedemptionResponse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrInvalidRedeemCode
	}
	if resolution == nil {
		return nil, domain.ErrInvalidAction
	}
	if customerID != "" {
		if _, err := uuid.Parse(customerID); err != nil {
			return nil, domain.ErrParseUUID
		}
	}

	result, err := s.redemptionRepository.ResolveRedemption(ctx, ResolveParams{
		RedeemCode: code,
		CustomerID: customerID,
		Resolution: resolution,
		ResolvedAt: s.clock(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrRedemptionNotFound) {
			s.metrics.ResolveMiss()
		}
		return nil, err
	}

	redemption := result.Redemption
	s.metrics.RedemptionTransition(redemption.Status, redemption.CoinsSpent)
	s.logger.Info("redemption resolved",
		zap.String("redemption_id", redemption.ID.String()),
		zap.String("status", redemption.Status),
		zap.String("resolver", resolution.Resolver()),
	)

	return &domain.ResolveRedemptionResponse{
		RedemptionID: redemption.ID.String(),
		RedeemCode:   redemption.RedeemCode,
		Status:       redemption.Status,
		CoinsSpent:   redemption.CoinsSpent,
		NewBalance:   result.NewBalance,
	}, nil
}

func (s *redemptionService) GetPendingByCode(ctx context.Context, code string) (*domain.Redemption, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrInvalidRedeemCode
	}
	redemption, err := s.redemptionRepository.GetPendingByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return ToDomain(redemption), nil
}

func (s *redemptionService) GetRedemptions(ctx context.Context, req domain.ListRedemptionsRequest) ([]*domain.Redemption, int64, error) {
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	switch status {
	case "", entities.RedemptionStatusPending, entities.RedemptionStatusApproved, entities.RedemptionStatusRejected:
	default:
		return nil, 0, domain.ErrInvalidStatusFilter
	}
	if req.CustomerID != "" {
		if _, err := uuid.Parse(req.CustomerID); err != nil {
			return nil, 0, domain.ErrParseUUID
		}
	}

	redemptions, count, err := s.redemptionRepository.GetRedemptions(ctx, status, req.CustomerID, req.Page, req.Limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.Redemption, 0, len(redemptions))
	for _, r := range redemptions {
		result = append(result, ToDomain(r))
	}
	return result, count, nil
}

func ToDomain(r *entities.RedemptionRequest) *domain.Redemption {
	return &domain.Redemption{
		ID:           r.ID.String(),
		CustomerID:   r.CustomerID.String(),
		ItemName:     r.ItemName,
		ItemCategory: r.ItemCategory,
		CoinsSpent:   r.CoinsSpent,
		CashAmount:   r.CashAmount,
		Status:       r.Status,
		RedeemCode:   r.RedeemCode,
		ApprovedBy:   r.ApprovedBy,
		ResolvedAt:   r.ResolvedAt,
		CreatedAt:    r.CreatedAt,
	}
}
