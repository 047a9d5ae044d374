package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/staffclock/internal/domain"
	"github.com/alexanderramin/staffclock/internal/repository"
)

var passthroughErrors = []error{
	domain.ErrInvalidSequence,
	domain.ErrUnknownUser,
	domain.ErrStoreUnavailable,
	domain.ErrForbidden,
	domain.ErrInvalidStatus,
	domain.ErrInvalidRange,
	domain.ErrInvalidInput,
	repository.ErrNotFound,
	context.Canceled,
	context.DeadlineExceeded,
}

// storeError leaves domain errors intact and marks anything else coming out
// of persistence as ErrStoreUnavailable.
func storeError(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range passthroughErrors {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

// unknownUser maps a missing employee row to ErrUnknownUser.
func unknownUser(userID string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("user %s: %w", userID, domain.ErrUnknownUser)
	}
	return storeError(err)
}
