package service

import (
	"testing"

	"github.com/pguia/registry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestShortIDAllocator_Allocate(t *testing.T) {
	buildRepo := new(MockBuildRepository)
	allocator := NewShortIDAllocator(buildRepo)

	buildRepo.On("ShortIDExists", mock.AnythingOfType("string")).Return(false, nil)

	id, err := allocator.Allocate()
	require.NoError(t, err)
	assert.Len(t, id, 6)
	for _, c := range id {
		assert.Contains(t, shortIDAlphabet, string(c))
	}
}

func TestShortIDAllocator_SkipsTakenIDs(t *testing.T) {
	buildRepo := new(MockBuildRepository)
	allocator := NewShortIDAllocator(buildRepo)

	buildRepo.On("ShortIDExists", mock.AnythingOfType("string")).Return(true, nil).Times(3)
	buildRepo.On("ShortIDExists", mock.AnythingOfType("string")).Return(false, nil).Once()

	id, err := allocator.Allocate()
	require.NoError(t, err)
	assert.Len(t, id, 6)
	buildRepo.AssertNumberOfCalls(t, "ShortIDExists", 4)
}

func TestShortIDAllocator_Exhaustion(t *testing.T) {
	buildRepo := new(MockBuildRepository)
	allocator := NewShortIDAllocator(buildRepo)

	buildRepo.On("ShortIDExists", mock.AnythingOfType("string")).Return(true, nil)

	_, err := allocator.Allocate()
	assert.ErrorIs(t, err, domain.ErrAllocationExhausted)
	buildRepo.AssertNumberOfCalls(t, "ShortIDExists", 100)
}

func TestRandomShortID_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := randomShortID(shortIDLength)
		require.NoError(t, err)
		seen[id] = true
	}
	// 62^6 candidates make a collision across 50 draws practically
	// impossible.
	assert.Len(t, seen, 50)
}
