// Package service holds the application use cases. Services validate
// input, call repositories through narrow interfaces and translate
// storage errors into typed domain errors.
package service

import (
	"database/sql"
	"errors"

	"github.com/edulite/school-api/internal/repository"
	appErrors "github.com/edulite/school-api/pkg/errors"
)

func isDuplicate(err error) bool {
	return errors.Is(err, repository.ErrDuplicate)
}

// notFoundOr maps sql.ErrNoRows to a NotFound with the given message and
// wraps anything else as internal.
func notFoundOr(err error, message string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, message)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}
