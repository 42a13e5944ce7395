package purchase

import (
	"Coin-Loyalty-Backend/domain"
	"Coin-Loyalty-Backend/entities"
	"Coin-Loyalty-Backend/internal/utils/testdb"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*purchaseService, *gorm.DB) {
	t.Helper()
	db := testdb.New(t)
	svc := NewPurchaseService(NewPurchaseRepository(db), NewRewardPolicy(10, decimal.Zero), zap.NewNop(), nil)
	return svc.(*purchaseService), db
}

func purchase(phone, amount, mode string) domain.RecordPurchaseRequest {
	return domain.RecordPurchaseRequest{
		Phone:       phone,
		Amount:      decimal.RequireFromString(amount),
		PaymentMode: mode,
	}
}

func loadCustomer(t *testing.T, db *gorm.DB, phone string) entities.Customer {
	t.Helper()
	var c entities.Customer
	require.NoError(t, db.Where("phone = ?", phone).First(&c).Error)
	return c
}

func TestRecordPurchaseAutoRegistersUnknownPhone(t *testing.T) {
	svc, db := newTestService(t)

	res, err := svc.RecordPurchase(context.Background(), purchase("08123", "100", "cash"))
	require.NoError(t, err)
	assert.True(t, res.AutoRegistered)
	assert.EqualValues(t, 10, res.CoinsEarned)
	assert.EqualValues(t, 10, res.NewBalance)
	assert.Equal(t, "08123", res.Phone)
	require.NotEmpty(t, res.Reveal)
	assert.EqualValues(t, 10, res.Reveal[len(res.Reveal)-1])

	var customers, transactions int64
	require.NoError(t, db.Model(&entities.Customer{}).Count(&customers).Error)
	require.NoError(t, db.Model(&entities.PurchaseTransaction{}).Count(&transactions).Error)
	assert.EqualValues(t, 1, customers)
	assert.EqualValues(t, 1, transactions)

	c := loadCustomer(t, db, "08123")
	assert.Equal(t, res.CustomerID, c.ID.String())
	assert.True(t, c.TotalSpent.Equal(decimal.NewFromInt(100)))
}

func TestRecordPurchaseCreditsExistingCustomer(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	_, err := svc.RecordPurchase(ctx, purchase("08123", "100", "cash"))
	require.NoError(t, err)
	res, err := svc.RecordPurchase(ctx, purchase("08123", "255", "online"))
	require.NoError(t, err)

	assert.False(t, res.AutoRegistered)
	assert.EqualValues(t, 25, res.CoinsEarned)
	assert.EqualValues(t, 35, res.NewBalance)

	c := loadCustomer(t, db, "08123")
	assert.EqualValues(t, 35, c.Coins)
	assert.True(t, c.TotalSpent.Equal(decimal.NewFromInt(355)))
}

func TestRecordPurchaseLargeAmount(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.RecordPurchase(context.Background(), purchase("08123", "9999999999", "cash"))
	require.NoError(t, err)
	assert.EqualValues(t, 999999999, res.CoinsEarned)
	assert.EqualValues(t, 999999999, res.NewBalance)
}

func TestRecordPurchaseValidation(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	_, err := svc.RecordPurchase(ctx, purchase("08123", "0", "cash"))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.RecordPurchase(ctx, purchase("08123", "-5", "cash"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.RecordPurchase(ctx, purchase("08123", "9223372036854775808", "cash"))
	assert.ErrorIs(t, err, domain.ErrAmountTooLarge)

	_, err = svc.RecordPurchase(ctx, purchase("08123", "100000000000000", "cash"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.RecordPurchase(ctx, purchase("08123", "9.995", "cash"))
	assert.ErrorIs(t, err, domain.ErrAmountPrecision)

	_, err = svc.RecordPurchase(ctx, purchase("  ", "100", "cash"))
	assert.ErrorIs(t, err, domain.ErrInvalidPhone)

	_, err = svc.RecordPurchase(ctx, purchase("08123", "100", "card"))
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentMode)

	var customers int64
	require.NoError(t, db.Model(&entities.Customer{}).Count(&customers).Error)
	assert.Zero(t, customers)
}

func TestRecordPurchaseLargestStorableAmount(t *testing.T) {
	svc, db := newTestService(t)

	res, err := svc.RecordPurchase(context.Background(), purchase("08123", "999999999999.99", "cash"))
	require.NoError(t, err)
	assert.EqualValues(t, 99999999999, res.CoinsEarned)

	var tx entities.PurchaseTransaction
	require.NoError(t, db.Where("id = ?", res.TransactionID).First(&tx).Error)
	assert.Equal(t, svc.policy.CoinsFor(tx.Amount), tx.CoinsAwarded)
}

func TestRecordPurchaseRequireExisting(t *testing.T) {
	svc, db := newTestService(t)

	req := purchase("08123", "100", "cash")
	req.RequireExisting = true
	_, err := svc.RecordPurchase(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	var customers, transactions int64
	require.NoError(t, db.Model(&entities.Customer{}).Count(&customers).Error)
	require.NoError(t, db.Model(&entities.PurchaseTransaction{}).Count(&transactions).Error)
	assert.Zero(t, customers)
	assert.Zero(t, transactions)
}

func TestRecordPurchaseConcurrentIsAdditive(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordPurchase(ctx, purchase("08123", "100", "cash"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	c := loadCustomer(t, db, "08123")
	assert.EqualValues(t, workers*10, c.Coins)
	assert.True(t, c.TotalSpent.Equal(decimal.NewFromInt(workers*100)))

	var customers, transactions int64
	require.NoError(t, db.Model(&entities.Customer{}).Count(&customers).Error)
	require.NoError(t, db.Model(&entities.PurchaseTransaction{}).Count(&transactions).Error)
	assert.EqualValues(t, 1, customers)
	assert.EqualValues(t, workers, transactions)
}

func TestRecordPurchasePeriodRollover(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	now := time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC) // Monday, W42
	svc.clock = func() time.Time { return now }

	_, err := svc.RecordPurchase(ctx, purchase("08123", "100", "cash"))
	require.NoError(t, err)
	now = now.Add(48 * time.Hour)
	_, err = svc.RecordPurchase(ctx, purchase("08123", "50", "cash"))
	require.NoError(t, err)

	c := loadCustomer(t, db, "08123")
	assert.Equal(t, "2026-W42", c.SpendWeek)
	assert.True(t, c.WeeklySpent.Equal(decimal.NewFromInt(150)))
	assert.True(t, c.MonthlySpent.Equal(decimal.NewFromInt(150)))

	now = time.Date(2026, 11, 2, 9, 0, 0, 0, time.UTC) // W45, new month
	_, err = svc.RecordPurchase(ctx, purchase("08123", "30", "online"))
	require.NoError(t, err)

	c = loadCustomer(t, db, "08123")
	assert.Equal(t, "2026-W45", c.SpendWeek)
	assert.Equal(t, "2026-11", c.SpendMonth)
	assert.True(t, c.WeeklySpent.Equal(decimal.NewFromInt(30)))
	assert.True(t, c.MonthlySpent.Equal(decimal.NewFromInt(30)))
	assert.True(t, c.TotalSpent.Equal(decimal.NewFromInt(180)))
}

func TestGetPurchaseHistory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.RecordPurchase(ctx, purchase("08123", "100", "cash"))
	require.NoError(t, err)
	_, err = svc.RecordPurchase(ctx, purchase("08123", "40", "online"))
	require.NoError(t, err)
	_, err = svc.RecordPurchase(ctx, purchase("08999", "70", "online"))
	require.NoError(t, err)

	history, total, err := svc.GetPurchaseHistory(ctx, first.CustomerID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, history, 2)
	for _, h := range history {
		assert.Equal(t, first.CustomerID, h.CustomerID)
	}

	_, _, err = svc.GetPurchaseHistory(ctx, "bogus", 1, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
