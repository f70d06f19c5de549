package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/domain"
)

// ErrInvalidInput signals the request violated an order invariant.
var ErrInvalidInput = errors.New("invalid order input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var validationErr *domain.ValidationError
	if errors.Is(err, domain.ErrEmptyOrder) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.As(err, &validationErr) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
