package purchase

import (
	"Coin-Loyalty-Backend/domain"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const AmountScale = 2

// MaxAmount is the largest value a numeric(14,2) amount column holds.
var MaxAmount = decimal.RequireFromString("999999999999.99")

var maxCoins = decimal.NewFromInt(math.MaxInt64)

// RewardPolicy turns a purchase amount into coins.
type RewardPolicy struct {
	// Divisor is the currency amount that earns one coin.
	Divisor int64
	// MinAmount is the smallest purchase that earns anything.
	MinAmount decimal.Decimal
}

func NewRewardPolicy(divisor int64, minAmount decimal.Decimal) RewardPolicy {
	if divisor <= 0 {
		divisor = 10
	}
	return RewardPolicy{Divisor: divisor, MinAmount: minAmount}
}

// CoinsFor returns floor(amount / Divisor), or 0 below MinAmount.
func (p RewardPolicy) CoinsFor(amount decimal.Decimal) int64 {
	if !amount.IsPositive() || amount.LessThan(p.MinAmount) {
		return 0
	}
	// floor(a/k) == floor(floor(a)/k) for a positive integer k.
	quotient, _ := amount.Floor().QuoRem(decimal.NewFromInt(p.Divisor), 0)
	if quotient.GreaterThan(maxCoins) {
		return math.MaxInt64
	}
	return quotient.IntPart()
}

// ValidateAmount enforces what the amount column can store exactly, so that
// coins_awarded always matches CoinsFor of the persisted amount.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if amount.GreaterThan(MaxAmount) {
		return domain.ErrAmountTooLarge
	}
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return domain.ErrAmountPrecision
	}
	return nil
}

const revealSteps = 4

// Reveal builds the scratch-card sequence shown to the customer. The last
// element is always the real reward; the rest are decoys and are never stored.
func Reveal(coins int64, draw func(n int64) int64) []int64 {
	ceiling := coins*2 + 10
	seq := make([]int64, 0, revealSteps)
	for i := 0; i < revealSteps-1; i++ {
		seq = append(seq, draw(ceiling))
	}
	return append(seq, coins)
}

func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
