package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	ordersdomain "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/go-gin-restaurant-api/internal/durable/temporal/activities/orders"
)

// RunOrderPlacementSequence validates the submission against the menu, then persists it.
// A rejected order never reaches the persist step.
func RunOrderPlacementSequence(ctx workflow.Context, input ordersports.PlaceOrderInput) (*ordersdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "table", input.TableNumber)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
			NonRetryableErrorTypes: []string{
				orderactivities.ValidationFailedErrorType,
				orderactivities.EmptyOrderErrorType,
			},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	if err := workflow.ExecuteActivity(ctx, orderactivities.ValidateOrderActivityName, input).Get(ctx, nil); err != nil {
		logger.Info("order placement sequence rejected order", "error", err)
		return nil, err
	}

	var order ordersdomain.Order
	if err := workflow.ExecuteActivity(ctx, orderactivities.PersistOrderActivityName, input).Get(ctx, &order); err != nil {
		logger.Error("order placement sequence failed", "error", err)
		return nil, err
	}
	logger.Info("order placement sequence completed", "orderId", order.ID)
	return &order, nil
}
