package service

import (
	"errors"

	"github.com/pguia/registry/internal/domain"
)

// reasonFor renders an error as a batch failure reason. Domain errors keep
// their message; anything else is reported generically so internal detail
// does not leak into batch reports.
func reasonFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrInvalidCredentials):
		return err.Error()
	}
	var quotaErr *domain.QuotaExceededError
	if errors.As(err, &quotaErr) {
		return quotaErr.Error()
	}
	return "Internal error"
}
