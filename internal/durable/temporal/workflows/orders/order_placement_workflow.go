package orders

import (
	"go.temporal.io/sdk/workflow"

	ordersdomain "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-restaurant-api/internal/durable/temporal/sequences"
)

const (
	// OrderPlacementWorkflowName is the public identifier for registering the workflow.
	OrderPlacementWorkflowName = "orders.workflows.Placement"
	// OrderPlacementTaskQueue is the queue consumed by the worker processing order workflows.
	OrderPlacementTaskQueue = "ORDER_PLACEMENT"
)

// OrderPlacementWorkflowInput captures the submission plus the caller's trace id.
type OrderPlacementWorkflowInput struct {
	Command ordersports.PlaceOrderInput
	TraceID string
}

// OrderPlacementWorkflow runs validation and persistence as separate activities.
func OrderPlacementWorkflow(ctx workflow.Context, input OrderPlacementWorkflowInput) (*ordersdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderPlacementWorkflow started", withTraceID(input.TraceID, "table", input.Command.TableNumber)...)
	order, err := sequences.RunOrderPlacementSequence(ctx, input.Command)
	if err != nil {
		logger.Info("OrderPlacementWorkflow ended without an order", withTraceID(input.TraceID, "error", err)...)
		return nil, err
	}
	logger.Info("OrderPlacementWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID)...)
	return order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
