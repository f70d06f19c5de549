package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/ports"
)

// Service orchestrates the order use cases.
type Service struct {
	repo    ports.Repository
	catalog ports.Catalog
	events  ports.EventPublisher
	now     func() time.Time
}

// Option customizes the service.
type Option func(*Service)

// WithEventPublisher routes order events to the kitchen.
func WithEventPublisher(publisher ports.EventPublisher) Option {
	return func(s *Service) {
		if publisher != nil {
			s.events = publisher
		}
	}
}

// WithClock overrides the time source used to stamp new orders.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the order service with its repository and menu catalog.
func NewService(repo ports.Repository, catalog ports.Catalog, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		catalog: catalog,
		events:  noopPublisher{},
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// PlaceOrder validates the submission and persists it as a pending order.
// Validation and insertion are separate store interactions.
func (s *Service) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	if err := s.Validate(ctx, input); err != nil {
		return nil, err
	}
	return s.Persist(ctx, input)
}

// Validate checks every line against the current menu.
func (s *Service) Validate(ctx context.Context, input ports.PlaceOrderInput) error {
	if len(input.Lines) == 0 {
		return mapError(domain.ErrEmptyOrder)
	}
	catalog, err := s.catalog.Lookup(ctx, domain.ItemIDs(input.Lines))
	if err != nil {
		return err
	}
	return mapError(domain.Validate(input.Lines, catalog))
}

// Persist stores the submission without re-validating it.
func (s *Service) Persist(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	order, err := domain.NewOrder(input.TableNumber, input.Lines, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, ports.EventOrderPlaced, saved)
	return saved, nil
}

// GetByID loads a single order.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all orders, newest first.
func (s *Service) List(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

// UpdateStatus moves an order through the kitchen workflow.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.Status) (*domain.Order, error) {
	if !status.Valid() {
		return nil, mapError(domain.ErrInvalidStatus)
	}
	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, ports.EventStatusChanged, updated)
	return updated, nil
}

// publish is best effort: the order is already stored, and publishers log
// their own delivery failures.
func (s *Service) publish(ctx context.Context, kind ports.EventKind, order *domain.Order) {
	_ = s.events.Publish(ctx, ports.Event{
		ID:         uuid.NewString(),
		Kind:       kind,
		OccurredAt: s.now().UTC(),
		Order:      order.Clone(),
	})
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, ports.Event) error { return nil }

var _ ports.Service = (*Service)(nil)
