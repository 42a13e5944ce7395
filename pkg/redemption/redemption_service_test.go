package redemption

import (
	"Coin-Loyalty-Backend/domain"
	"Coin-Loyalty-Backend/entities"
	"Coin-Loyalty-Backend/internal/utils/testdb"
	"Coin-Loyalty-Backend/pkg/catalog"
	"context"
	"regexp"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	svc     *redemptionService
	catalog catalog.CatalogService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testdb.New(t)
	catalogRepo := catalog.NewCatalogRepository(db)
	svc := NewRedemptionService(NewRedemptionRepository(db), catalogRepo, zap.NewNop(), nil)
	return &fixture{
		db:      db,
		svc:     svc.(*redemptionService),
		catalog: catalog.NewCatalogService(catalogRepo, nil, zap.NewNop()),
	}
}

func (f *fixture) customer(t *testing.T, phone string, coins int64) entities.Customer {
	t.Helper()
	c := entities.Customer{Phone: phone, Coins: coins, TotalSpent: decimal.NewFromInt(500)}
	require.NoError(t, f.db.Create(&c).Error)
	return c
}

func (f *fixture) balance(t *testing.T, c entities.Customer) (int64, decimal.Decimal) {
	t.Helper()
	var fresh entities.Customer
	require.NoError(t, f.db.Where("id = ?", c.ID).First(&fresh).Error)
	return fresh.Coins, fresh.TotalSpent
}

func inlineItem(customerID string, coins int64) domain.RequestRedemptionRequest {
	return domain.RequestRedemptionRequest{
		CustomerID: customerID,
		Item:       &domain.RedemptionItem{Name: "Cashback", Category: "cash", RequiredCoins: coins},
	}
}

func TestGenerateRedeemCode(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 200; i++ {
		code, err := GenerateRedeemCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
	}
}

func TestRequestThenRejectRefundsCoins(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.customer(t, "0811", 50)

	req, err := f.svc.RequestRedemption(ctx, inlineItem(c.ID.String(), 50))
	require.NoError(t, err)
	assert.Equal(t, entities.RedemptionStatusPending, req.Status)
	assert.EqualValues(t, 0, req.NewBalance)
	assert.Len(t, req.RedeemCode, 6)

	coins, spent := f.balance(t, c)
	assert.EqualValues(t, 0, coins)
	assert.True(t, spent.Equal(decimal.NewFromInt(550)))

	res, err := f.svc.ResolveRedemption(ctx, req.RedeemCode, "", domain.Reject{ResolverID: "staff-1"})
	require.NoError(t, err)
	assert.Equal(t, entities.RedemptionStatusRejected, res.Status)
	require.NotNil(t, res.NewBalance)
	assert.EqualValues(t, 50, *res.NewBalance)

	coins, spent = f.balance(t, c)
	assert.EqualValues(t, 50, coins)
	assert.True(t, spent.Equal(decimal.NewFromInt(500)))

	_, err = f.svc.ResolveRedemption(ctx, req.RedeemCode, "", domain.Reject{ResolverID: "staff-1"})
	assert.ErrorIs(t, err, domain.ErrRedemptionNotFound)
	coins, _ = f.balance(t, c)
	assert.EqualValues(t, 50, coins)
}

func TestApproveKeepsCoinsDebited(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.customer(t, "0811", 120)

	req, err := f.svc.RequestRedemption(ctx, inlineItem(c.ID.String(), 100))
	require.NoError(t, err)
	assert.EqualValues(t, 20, req.NewBalance)

	res, err := f.svc.ResolveRedemption(ctx, req.RedeemCode, c.ID.String(), domain.Approve{ResolverID: "staff-7"})
	require.NoError(t, err)
	assert.Equal(t, entities.RedemptionStatusApproved, res.Status)
	assert.Nil(t, res.NewBalance)

	var stored entities.RedemptionRequest
	require.NoError(t, f.db.Where("id = ?", res.RedemptionID).First(&stored).Error)
	require.NotNil(t, stored.ApprovedBy)
	assert.Equal(t, "staff-7", *stored.ApprovedBy)
	assert.NotNil(t, stored.ResolvedAt)

	_, err = f.svc.ResolveRedemption(ctx, req.RedeemCode, "", domain.Reject{ResolverID: "staff-7"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	coins, _ := f.balance(t, c)
	assert.EqualValues(t, 20, coins)
}

func TestResolveWithOtherCustomerIDMisses(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := f.customer(t, "0811", 60)
	other := f.customer(t, "0822", 60)

	req, err := f.svc.RequestRedemption(ctx, inlineItem(owner.ID.String(), 60))
	require.NoError(t, err)

	_, err = f.svc.ResolveRedemption(ctx, req.RedeemCode, other.ID.String(), domain.Approve{ResolverID: "staff"})
	assert.ErrorIs(t, err, domain.ErrRedemptionNotFound)

	pending, err := f.svc.GetPendingByCode(ctx, req.RedeemCode)
	require.NoError(t, err)
	assert.Equal(t, owner.ID.String(), pending.CustomerID)
}

func TestRequestRedemptionFailures(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.customer(t, "0811", 30)

	_, err := f.svc.RequestRedemption(ctx, inlineItem(c.ID.String(), 31))
	assert.ErrorIs(t, err, domain.ErrInsufficientCoins)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	_, err = f.svc.RequestRedemption(ctx, inlineItem("8b8f3a0e-5a0a-4c8e-9d0e-2b9b0d6f5a11", 10))
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	_, err = f.svc.RequestRedemption(ctx, inlineItem("abc", 10))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.RequestRedemption(ctx, inlineItem(c.ID.String(), 0))
	assert.ErrorIs(t, err, domain.ErrInvalidCoinCost)

	_, err = f.svc.RequestRedemption(ctx, domain.RequestRedemptionRequest{CustomerID: c.ID.String()})
	assert.ErrorIs(t, err, domain.ErrInvalidRedemptionItem)

	coins, _ := f.balance(t, c)
	assert.EqualValues(t, 30, coins)

	var count int64
	require.NoError(t, f.db.Model(&entities.RedemptionRequest{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRequestRedemptionFromCatalog(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.customer(t, "0811", 100)

	item, err := f.catalog.CreateRewardItem(ctx, domain.CreateRewardItemRequest{
		Name:          "Movie ticket",
		Category:      "voucher",
		RequiredCoins: 75,
	})
	require.NoError(t, err)

	req, err := f.svc.RequestRedemption(ctx, domain.RequestRedemptionRequest{
		CustomerID: c.ID.String(),
		ItemID:     item.ID,
		Item:       &domain.RedemptionItem{Name: "ignored", RequiredCoins: 1},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 75, req.CoinsSpent)
	assert.EqualValues(t, 25, req.NewBalance)

	pending, err := f.svc.GetPendingByCode(ctx, req.RedeemCode)
	require.NoError(t, err)
	assert.Equal(t, "Movie ticket", pending.ItemName)

	require.NoError(t, f.catalog.DeactivateRewardItem(ctx, item.ID))
	_, err = f.svc.RequestRedemption(ctx, domain.RequestRedemptionRequest{CustomerID: c.ID.String(), ItemID: item.ID})
	assert.ErrorIs(t, err, domain.ErrRewardItemNotFound)
}

func TestRequestRedemptionRetriesCodeCollision(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.customer(t, "0811", 100)
	b := f.customer(t, "0822", 100)

	codes := []string{"111111", "111111", "222222"}
	f.svc.newCode = func() (string, error) {
		code := codes[0]
		codes = codes[1:]
		return code, nil
	}

	first, err := f.svc.RequestRedemption(ctx, inlineItem(a.ID.String(), 10))
	require.NoError(t, err)
	assert.Equal(t, "111111", first.RedeemCode)

	second, err := f.svc.RequestRedemption(ctx, inlineItem(b.ID.String(), 10))
	require.NoError(t, err)
	assert.Equal(t, "222222", second.RedeemCode)

	coins, _ := f.balance(t, b)
	assert.EqualValues(t, 90, coins)
}

func TestRequestRedemptionGivesUpAfterRepeatedCollisions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.customer(t, "0811", 100)
	b := f.customer(t, "0822", 100)

	f.svc.newCode = func() (string, error) { return "333333", nil }

	_, err := f.svc.RequestRedemption(ctx, inlineItem(a.ID.String(), 10))
	require.NoError(t, err)

	_, err = f.svc.RequestRedemption(ctx, inlineItem(b.ID.String(), 10))
	assert.ErrorIs(t, err, domain.ErrRedeemCodeTaken)

	coins, _ := f.balance(t, b)
	assert.EqualValues(t, 100, coins)
}

func TestRejectedCodeCanBeReused(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.customer(t, "0811", 100)
	f.svc.newCode = func() (string, error) { return "444444", nil }

	first, err := f.svc.RequestRedemption(ctx, inlineItem(c.ID.String(), 10))
	require.NoError(t, err)
	_, err = f.svc.ResolveRedemption(ctx, first.RedeemCode, "", domain.Reject{ResolverID: "staff"})
	require.NoError(t, err)

	second, err := f.svc.RequestRedemption(ctx, inlineItem(c.ID.String(), 10))
	require.NoError(t, err)
	assert.Equal(t, "444444", second.RedeemCode)
	assert.NotEqual(t, first.RedemptionID, second.RedemptionID)
}

func TestConcurrentResolveHasOneWinner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.customer(t, "0811", 40)

	req, err := f.svc.RequestRedemption(ctx, inlineItem(c.ID.String(), 40))
	require.NoError(t, err)

	const resolvers = 10
	var wg sync.WaitGroup
	results := make(chan error, resolvers)
	for i := 0; i < resolvers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var resolution domain.Resolution = domain.Reject{ResolverID: "staff"}
			if i%2 == 0 {
				resolution = domain.Approve{ResolverID: "staff"}
			}
			_, err := f.svc.ResolveRedemption(ctx, req.RedeemCode, "", resolution)
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	var wins, misses int
	for err := range results {
		if err == nil {
			wins++
			continue
		}
		require.ErrorIs(t, err, domain.ErrRedemptionNotFound)
		misses++
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, resolvers-1, misses)

	var stored entities.RedemptionRequest
	require.NoError(t, f.db.Where("id = ?", req.RedemptionID).First(&stored).Error)
	coins, _ := f.balance(t, c)
	if stored.Status == entities.RedemptionStatusRejected {
		assert.EqualValues(t, 40, coins)
	} else {
		assert.Equal(t, entities.RedemptionStatusApproved, stored.Status)
		assert.EqualValues(t, 0, coins)
	}
}

func TestConcurrentRequestsNeverOverdraw(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.customer(t, "0811", 100)

	const requests = 8
	var wg sync.WaitGroup
	var mu sync.Mutex
	var granted int
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.RequestRedemption(ctx, inlineItem(c.ID.String(), 30))
			if err == nil {
				mu.Lock()
				granted++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrInsufficientCoins)
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, granted)
	coins, _ := f.balance(t, c)
	assert.EqualValues(t, 10, coins)
}

func TestGetRedemptions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.customer(t, "0811", 100)
	b := f.customer(t, "0822", 100)

	r1, err := f.svc.RequestRedemption(ctx, inlineItem(a.ID.String(), 10))
	require.NoError(t, err)
	_, err = f.svc.RequestRedemption(ctx, inlineItem(a.ID.String(), 10))
	require.NoError(t, err)
	_, err = f.svc.RequestRedemption(ctx, inlineItem(b.ID.String(), 10))
	require.NoError(t, err)
	_, err = f.svc.ResolveRedemption(ctx, r1.RedeemCode, "", domain.Approve{ResolverID: "staff"})
	require.NoError(t, err)

	pending, total, err := f.svc.GetRedemptions(ctx, domain.ListRedemptionsRequest{Status: "pending", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, pending, 2)

	history, total, err := f.svc.GetRedemptions(ctx, domain.ListRedemptionsRequest{CustomerID: a.ID.String(), Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, history, 2)

	_, _, err = f.svc.GetRedemptions(ctx, domain.ListRedemptionsRequest{Status: "DONE", Page: 1, Limit: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidStatusFilter)
}

func TestResolveValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.ResolveRedemption(ctx, " ", "", domain.Approve{ResolverID: "s"})
	assert.ErrorIs(t, err, domain.ErrInvalidRedeemCode)

	_, err = f.svc.ResolveRedemption(ctx, "123456", "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidAction)

	_, err = f.svc.ResolveRedemption(ctx, "123456", "", domain.Approve{ResolverID: "s"})
	assert.ErrorIs(t, err, domain.ErrRedemptionNotFound)
}
