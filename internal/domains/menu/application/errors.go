package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/domain"
)

// ErrInvalidInput signals the request violated a menu invariant.
var ErrInvalidInput = errors.New("invalid menu input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrMissingPrice) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrNoFields) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
