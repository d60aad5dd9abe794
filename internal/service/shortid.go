package service

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/pguia/registry/internal/domain"
	"github.com/pguia/registry/internal/repository"
)

const (
	shortIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	shortIDLength   = 6
	shortIDAttempts = 100
)

// ShortIDAllocator issues short, collision-free public identifiers for
// builds. Allocation is an optimistic check-then-insert: the uniqueness
// probe here is advisory, the unique constraint on builds.short_id is the
// backstop under concurrency.
type ShortIDAllocator struct {
	buildRepo repository.BuildRepository
}

// NewShortIDAllocator creates a new allocator
func NewShortIDAllocator(buildRepo repository.BuildRepository) *ShortIDAllocator {
	return &ShortIDAllocator{buildRepo: buildRepo}
}

// Allocate draws random candidates until one is unused, bounded by
// shortIDAttempts. Exhausting the attempts fails with
// domain.ErrAllocationExhausted: the identifier space is saturated.
func (a *ShortIDAllocator) Allocate() (string, error) {
	for i := 0; i < shortIDAttempts; i++ {
		candidate, err := randomShortID(shortIDLength)
		if err != nil {
			return "", fmt.Errorf("failed to draw short id: %w", err)
		}

		exists, err := a.buildRepo.ShortIDExists(candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check short id uniqueness: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", domain.ErrAllocationExhausted
}

func randomShortID(length int) (string, error) {
	alphabetSize := big.NewInt(int64(len(shortIDAlphabet)))
	id := make([]byte, length)
	for i := range id {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", err
		}
		id[i] = shortIDAlphabet[n.Int64()]
	}
	return string(id), nil
}
