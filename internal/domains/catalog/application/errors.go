package application

import (
	"errors"
	"fmt"

	"github.com/mercora/retail-api/internal/domains/catalog/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid catalog input")
	// ErrQueryTooShort signals an autocomplete query below the minimum length.
	ErrQueryTooShort = errors.New("query must be at least 3 characters long")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyTitle) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrEmptyCategoryName) ||
		errors.Is(err, domain.ErrInvalidCategory) ||
		errors.Is(err, ErrQueryTooShort) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
