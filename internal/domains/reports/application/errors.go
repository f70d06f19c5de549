package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/reports/domain"
)

// ErrInvalidInput signals the report request named an unknown period or an oversized range.
var ErrInvalidInput = errors.New("invalid report input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidPeriod) || errors.Is(err, domain.ErrRangeTooLarge) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
