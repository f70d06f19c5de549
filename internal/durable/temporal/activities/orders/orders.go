package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ordersdomain "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/ports"
)

const (
	// ValidateOrderActivityName checks an order submission against the live menu.
	ValidateOrderActivityName = "orders.activities.ValidateOrder"
	// PersistOrderActivityName stores a validated submission as a pending order.
	PersistOrderActivityName = "orders.activities.PersistOrder"

	// ValidationFailedErrorType marks a rejected order; details carry the problem list.
	ValidationFailedErrorType = "OrderValidationFailed"
	// EmptyOrderErrorType marks a submission with no lines.
	EmptyOrderErrorType = "OrderEmpty"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// ValidateOrder returns a non-retryable application error when the order is
// rejected so the workflow fails fast instead of retrying a client mistake.
func (a *Activities) ValidateOrder(ctx context.Context, input ordersports.PlaceOrderInput) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order validate activity not initialized")
		return errors.New("order validate activity not initialized")
	}
	logger.Info("ValidateOrder activity started", "table", input.TableNumber, "lines", len(input.Lines))
	err := a.service.Validate(ctx, input)
	if err == nil {
		logger.Info("ValidateOrder activity completed", "table", input.TableNumber)
		return nil
	}
	var validationErr *ordersdomain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		logger.Info("order rejected", "problems", len(validationErr.Problems))
		return temporal.NewNonRetryableApplicationError(err.Error(), ValidationFailedErrorType, nil, validationErr.Problems)
	case errors.Is(err, ordersdomain.ErrEmptyOrder):
		return temporal.NewNonRetryableApplicationError(err.Error(), EmptyOrderErrorType, nil)
	}
	logger.Error("ValidateOrder activity failed", "error", err)
	return err
}

// PersistOrder stores the submission and returns the created order.
func (a *Activities) PersistOrder(ctx context.Context, input ordersports.PlaceOrderInput) (*ordersdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order persist activity not initialized")
		return nil, errors.New("order persist activity not initialized")
	}
	logger.Info("PersistOrder activity started", "table", input.TableNumber)
	order, err := a.service.Persist(ctx, input)
	if err != nil {
		logger.Error("PersistOrder activity failed", "error", err)
		return nil, err
	}
	logger.Info("PersistOrder activity completed", "orderId", order.ID)
	return order, nil
}
