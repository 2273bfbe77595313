package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/flight-search/flight-finder/internal/domain"
)

func TestCacheUseCase_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := domain.NewMockResultCache(ctrl)

	want := domain.CacheStats{
		Size:    3,
		MaxSize: 1000,
		Hits:    10,
		Misses:  5,
		HitRate: 66.67,
	}
	cache.EXPECT().Stats().Return(want)

	uc := NewCacheUseCase(cache, nil)

	got, err := uc.Stats()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCacheUseCase_Stats_NoCacheConfigured(t *testing.T) {
	uc := NewCacheUseCase(nil, nil)

	_, err := uc.Stats()
	require.Error(t, err)
	assert.Equal(t, domain.CodeCacheMgmtError, domain.ErrorCode(err))

	var coded domain.Coded
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, "get_stats", coded.DomainContext()["operation"])
}

func TestCacheUseCase_Clear(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := domain.NewMockResultCache(ctrl)

	gomock.InOrder(
		cache.EXPECT().Stats().Return(domain.CacheStats{Size: 7}),
		cache.EXPECT().Clear().Return(7),
	)

	uc := NewCacheUseCase(cache, nil)

	result, err := uc.Clear()
	require.NoError(t, err)
	assert.Equal(t, 7, result.EntriesCleared)
	assert.Equal(t, 7, result.EntriesBefore)
}

func TestCacheUseCase_Clear_NoCacheConfigured(t *testing.T) {
	uc := NewCacheUseCase(nil, nil)

	_, err := uc.Clear()
	require.Error(t, err)
	assert.Equal(t, domain.CodeCacheMgmtError, domain.ErrorCode(err))

	var coded domain.Coded
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, "clear", coded.DomainContext()["operation"])
}
