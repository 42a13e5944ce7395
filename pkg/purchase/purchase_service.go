package purchase

import (
	"Coin-Loyalty-Backend/domain"
	"Coin-Loyalty-Backend/entities"
	"Coin-Loyalty-Backend/internal/metrics"
	"Coin-Loyalty-Backend/pkg/customer"
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type (
	PurchaseService interface {
		RecordPurchase(ctx context.Context, req domain.RecordPurchaseRequest) (*domain.RecordPurchaseResponse, error)
		GetPurchaseHistory(ctx context.Context, customerID string, page, limit int) ([]*domain.PurchaseTransaction, int64, error)
	}

	purchaseService struct {
		purchaseRepository PurchaseRepository
		policy             RewardPolicy
		logger             *zap.Logger
		metrics            *metrics.Metrics
		clock              func() time.Time
		draw               func(n int64) int64
	}
)

func NewPurchaseService(purchaseRepository PurchaseRepository, policy RewardPolicy, logger *zap.Logger, m *metrics.Metrics) PurchaseService {
	return &purchaseService{
		purchaseRepository: purchaseRepository,
		policy:             policy,
		logger:             logger.Named("purchase"),
		metrics:            m,
		clock:              time.Now,
		draw:               rand.Int64N,
	}
}

func (s *purchaseService) RecordPurchase(ctx context.Context, req domain.RecordPurchaseRequest) (*domain.RecordPurchaseResponse, error) {
	phone := customer.NormalizePhone(req.Phone)
	if phone == "" {
		return nil, domain.ErrInvalidPhone
	}
	if err := ValidateAmount(req.Amount); err != nil {
		return nil, err
	}
	mode := strings.ToLower(strings.TrimSpace(req.PaymentMode))
	if mode != entities.PaymentModeCash && mode != entities.PaymentModeOnline {
		return nil, domain.ErrInvalidPaymentMode
	}

	coins := s.policy.CoinsFor(req.Amount)
	now := s.clock()

	result, err := s.purchaseRepository.RecordPurchase(ctx, PurchaseParams{
		Phone:           phone,
		Name:            strings.TrimSpace(req.Name),
		Amount:          req.Amount,
		Coins:           coins,
		PaymentMode:     mode,
		Week:            WeekKey(now),
		Month:           MonthKey(now),
		RequireExisting: req.RequireExisting,
	})
	if err != nil {
		return nil, err
	}

	s.metrics.PurchaseRecorded(mode, result.AutoRegistered, coins)
	s.logger.Info("purchase recorded",
		zap.String("customer_id", result.Customer.ID.String()),
		zap.String("transaction_id", result.Transaction.ID.String()),
		zap.Int64("coins", coins),
		zap.Bool("auto_registered", result.AutoRegistered),
	)

	return &domain.RecordPurchaseResponse{
		TransactionID:  result.Transaction.ID.String(),
		CustomerID:     result.Customer.ID.String(),
		Phone:          result.Customer.Phone,
		CoinsEarned:    coins,
		NewBalance:     result.Customer.Coins,
		AutoRegistered: result.AutoRegistered,
		Reveal:         Reveal(coins, s.draw),
	}, nil
}

func (s *purchaseService) GetPurchaseHistory(ctx context.Context, customerID string, page, limit int) ([]*domain.PurchaseTransaction, int64, error) {
	if _, err := uuid.Parse(customerID); err != nil {
		return nil, 0, domain.ErrParseUUID
	}

	transactions, count, err := s.purchaseRepository.GetPurchasesByCustomer(ctx, customerID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.PurchaseTransaction, 0, len(transactions))
	for _, t := range transactions {
		result = append(result, &domain.PurchaseTransaction{
			ID:           t.ID.String(),
			CustomerID:   t.CustomerID.String(),
			Amount:       t.Amount,
			CoinsAwarded: t.CoinsAwarded,
			PaymentMode:  t.PaymentMode,
			CreatedAt:    t.CreatedAt,
		})
	}
	return result, count, nil
}
