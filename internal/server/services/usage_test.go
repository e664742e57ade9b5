package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/aitutor/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsage_FreshUserScenario(t *testing.T) {
	s := NewUsageService(nil, &fakeRepoManager{newFakeStore()})
	ctx := context.Background()
	day := "2025-03-01"

	allowed, err := s.CheckAndConsume(ctx, "u0", day)
	require.NoError(t, err)
	assert.True(t, allowed)

	n, err := s.Usage(ctx, "u0", day)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	for i := 2; i <= DailyLimit; i++ {
		allowed, err := s.CheckAndConsume(ctx, "u0", day)
		require.NoError(t, err)
		require.True(t, allowed, "call %d", i)
	}

	allowed, err = s.CheckAndConsume(ctx, "u0", day)
	require.NoError(t, err)
	assert.False(t, allowed)

	n, err = s.Usage(ctx, "u0", day)
	require.NoError(t, err)
	assert.Equal(t, DailyLimit, n)
}

func TestUsage_NewDayResets(t *testing.T) {
	store := newFakeStore()
	store.usage[[2]string{"u1", "2025-03-01"}] = DailyLimit
	s := NewUsageService(nil, &fakeRepoManager{store})

	allowed, err := s.CheckAndConsume(context.Background(), "u1", "2025-03-01")
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = s.CheckAndConsume(context.Background(), "u1", "2025-03-02")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestUsage_ConcurrentCallsNeverExceedLimit(t *testing.T) {
	s := NewUsageService(nil, &fakeRepoManager{newFakeStore()})

	var ok int32
	var wg sync.WaitGroup
	for i := 0; i < DailyLimit+50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, err := s.CheckAndConsume(context.Background(), "u2", "2025-03-01")
			if err == nil && allowed {
				atomic.AddInt32(&ok, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(DailyLimit), ok)
}

func TestUsage_StoreFailureIsNotDenial(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("connection refused")
	s := NewUsageService(nil, &fakeRepoManager{store})

	allowed, err := s.CheckAndConsume(context.Background(), "u3", "2025-03-01")
	assert.False(t, allowed)
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, common.ErrLimitReached)

	_, err = s.Usage(context.Background(), "u3", "2025-03-01")
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
}

func TestUsage_TodayIsUTC(t *testing.T) {
	s := NewUsageService(nil, &fakeRepoManager{newFakeStore()})
	s.now = fixedClock("2025-03-01T23:30:00-05:00")
	assert.Equal(t, "2025-03-02", s.Today())
}
