package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-qualifier/domain"
	"loan-qualifier/logger"
)

type countingRateSheet struct {
	sheet domain.RateSheet
	err   error
	loads int
}

func (c *countingRateSheet) Source() string { return "counting" }

func (c *countingRateSheet) Load(_ context.Context) (domain.RateSheet, error) {
	c.loads++
	if c.err != nil {
		return nil, c.err
	}
	return c.sheet, nil
}

func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	return mr, NewRedisCacheFromClient(redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	}))
}

func testSheet() domain.RateSheet {
	return domain.RateSheet{
		{LenderName: "Lender A", MaxLoanSize: 200000, MaxLoanToValue: 0.97, MinCreditScore: 620, MaxDebtToIncome: 0.43},
		{LenderName: "Lender B", MaxLoanSize: 500000, MaxLoanToValue: 0.8, MinCreditScore: 700, MaxDebtToIncome: 0.36},
	}
}

func TestCachedRateSheet_Redis(t *testing.T) {
	mr, cache := setupMiniRedis(t)
	source := &countingRateSheet{sheet: testSheet()}
	repo := NewCachedRateSheetRepository(source, cache, time.Minute, logger.NewNoOpLogger())

	first, err := repo.Load(context.Background())
	require.NoError(t, err)
	second, err := repo.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, source.loads)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists("ratesheet:counting"))
	assert.Equal(t, time.Minute, mr.TTL("ratesheet:counting"))
	assert.Equal(t, "counting+cache", repo.Source())
}

func TestCachedRateSheet_ExpiryReloads(t *testing.T) {
	mr, cache := setupMiniRedis(t)
	source := &countingRateSheet{sheet: testSheet()}
	repo := NewCachedRateSheetRepository(source, cache, time.Minute, logger.NewNoOpLogger())

	_, err := repo.Load(context.Background())
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)
	_, err = repo.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, source.loads)
}

func TestCachedRateSheet_CorruptEntryReloads(t *testing.T) {
	mr, cache := setupMiniRedis(t)
	require.NoError(t, mr.Set("ratesheet:counting", "{not json"))
	source := &countingRateSheet{sheet: testSheet()}
	repo := NewCachedRateSheetRepository(source, cache, time.Minute, logger.NewNoOpLogger())

	sheet, err := repo.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, sheet, 2)
	assert.Equal(t, 1, source.loads)
}

func TestCachedRateSheet_RedisDown(t *testing.T) {
	mr, cache := setupMiniRedis(t)
	mr.Close()
	source := &countingRateSheet{sheet: testSheet()}
	repo := NewCachedRateSheetRepository(source, cache, time.Minute, logger.NewNoOpLogger())

	sheet, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, sheet, 2)
}

func TestCachedRateSheet_SourceErrorNotCached(t *testing.T) {
	cache := NewMemoryCache()
	source := &countingRateSheet{err: domain.NewRateSheetUnavailableError("offline")}
	repo := NewCachedRateSheetRepository(source, cache, time.Minute, logger.NewNoOpLogger())

	_, err := repo.Load(context.Background())
	assert.True(t, errors.Is(err, domain.ErrRateSheetUnavailable))

	_, ok := cache.Get(context.Background(), "ratesheet:counting")
	assert.False(t, ok)
}

func TestCachedRateSheet_KeyedByLocation(t *testing.T) {
	mr, cache := setupMiniRedis(t)
	dir := t.TempDir()

	pathA := filepath.Join(dir, "a.csv")
	pathB := filepath.Join(dir, "b.csv")
	require.NoError(t, os.WriteFile(pathA, []byte(sampleRateSheet), 0o600))
	require.NoError(t, os.WriteFile(pathB, []byte("Lender,Max Loan Amount,Max LTV,Min Credit Score,Max DTI\nLender Z,100000,0.8,700,0.4\n"), 0o600))

	repoA := NewCachedRateSheetRepository(NewRateSheetFile(pathA), cache, time.Minute, logger.NewNoOpLogger())
	repoB := NewCachedRateSheetRepository(NewRateSheetFile(pathB), cache, time.Minute, logger.NewNoOpLogger())

	sheetA, err := repoA.Load(context.Background())
	require.NoError(t, err)
	sheetB, err := repoB.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, sheetA, 3)
	require.Len(t, sheetB, 1)
	assert.Equal(t, "Lender Z", sheetB[0].LenderName)
	assert.True(t, mr.Exists("ratesheet:file:"+pathA))
	assert.True(t, mr.Exists("ratesheet:file:"+pathB))

	s3Repo := NewCachedRateSheetRepository(NewRateSheetS3(&fakeS3{body: sampleRateSheet}, "rates", "daily.csv"), cache, time.Minute, logger.NewNoOpLogger())
	_, err = s3Repo.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, mr.Exists("ratesheet:s3:s3://rates/daily.csv"))
}

func TestMemoryCache_TTL(t *testing.T) {
	cache := NewMemoryCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", "1", time.Minute))
	require.NoError(t, cache.Set(ctx, "b", "2", 0))

	val, ok := cache.Get(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, "1", val)

	now = now.Add(time.Minute)
	_, ok = cache.Get(ctx, "a")
	assert.False(t, ok)

	val, ok = cache.Get(ctx, "b")
	assert.True(t, ok)
	assert.Equal(t, "2", val)
}
