package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/api/serviceerror"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/application"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/go-gin-restaurant-api/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/Apurer/go-gin-restaurant-api/internal/durable/temporal/workflows/orders"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineOrderWorkflows)(nil)
)

// TemporalOrderWorkflows starts order placement workflows on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
	fallback  ports.WorkflowOrchestrator
}

// TemporalOption configures TemporalOrderWorkflows.
type TemporalOption func(*TemporalOrderWorkflows)

// WithFallback places orders through f when the Temporal frontend is unavailable.
func WithFallback(f ports.WorkflowOrchestrator) TemporalOption {
	return func(o *TemporalOrderWorkflows) {
		o.fallback = f
	}
}

// NewTemporalOrderWorkflows wires a Temporal client into the orchestrator.
func NewTemporalOrderWorkflows(c client.Client, opts ...TemporalOption) *TemporalOrderWorkflows {
	o := &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.OrderPlacementTaskQueue}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// PlaceOrder runs the placement workflow and waits for the stored order.
// Rejections come back as the same errors the inline path returns.
func (o *TemporalOrderWorkflows) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:        "order-placement-" + uuid.NewString(),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderPlacementWorkflow,
		orderworkflows.OrderPlacementWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var unavailable *serviceerror.Unavailable
		if errors.As(err, &unavailable) && o.fallback != nil {
			return o.fallback.PlaceOrder(ctx, input)
		}
		return nil, err
	}
	var order domain.Order
	if err := run.Get(ctx, &order); err != nil {
		return nil, translateWorkflowError(err)
	}
	return &order, nil
}

// InlineOrderWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineOrderWorkflows struct {
	service ports.Service
}

// NewInlineOrderWorkflows wraps the orders service for synchronous execution.
func NewInlineOrderWorkflows(service ports.Service) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{service: service}
}

// PlaceOrder delegates to the application service without durable orchestration.
func (o *InlineOrderWorkflows) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	return o.service.PlaceOrder(ctx, input)
}

func translateWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case orderactivities.ValidationFailedErrorType:
		var problems []string
		if appErr.HasDetails() {
			if detailErr := appErr.Details(&problems); detailErr != nil {
				return err
			}
		}
		return fmt.Errorf("%w: %w", ordersapp.ErrInvalidInput, &domain.ValidationError{Problems: problems})
	case orderactivities.EmptyOrderErrorType:
		return fmt.Errorf("%w: %w", ordersapp.ErrInvalidInput, domain.ErrEmptyOrder)
	}
	return err
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
