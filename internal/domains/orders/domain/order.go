package domain

import (
	"errors"
	"time"
)

// Status enumerates the kitchen workflow states of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusServed    Status = "served"
	StatusCancelled Status = "cancelled"
	StatusRejected  Status = "rejected"
)

var (
	ErrEmptyOrder    = errors.New("items array required")
	ErrInvalidStatus = errors.New("invalid status")
)

// Line is one requested menu item and how many units of it.
type Line struct {
	ItemID int64
	Qty    int
}

// Order is a table's placed order. Lines are a snapshot taken at creation.
type Order struct {
	ID          int64
	TableNumber string
	Lines       []Line
	Status      Status
	CreatedAt   time.Time
}

// NewOrder builds a pending order stamped with the given creation instant (stored in UTC).
func NewOrder(tableNumber string, lines []Line, createdAt time.Time) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}
	return &Order{
		TableNumber: tableNumber,
		Lines:       CloneLines(lines),
		Status:      StatusPending,
		CreatedAt:   createdAt.UTC(),
	}, nil
}

// UpdateStatus accepts only known states.
func (o *Order) UpdateStatus(status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	o.Status = status
	return nil
}

// TotalQty sums the units across every line.
func (o *Order) TotalQty() int {
	total := 0
	for _, line := range o.Lines {
		total += line.Qty
	}
	return total
}

// Clone returns a deep copy so callers cannot mutate stored lines.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Lines = CloneLines(o.Lines)
	return &clone
}

// Valid reports whether the status is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusServed, StatusCancelled, StatusRejected:
		return true
	default:
		return false
	}
}

// CloneLines copies a line slice.
func CloneLines(lines []Line) []Line {
	if lines == nil {
		return nil
	}
	return append([]Line(nil), lines...)
}

// ItemIDs returns the distinct item ids referenced by the lines, in first-seen order.
func ItemIDs(lines []Line) []int64 {
	ids := make([]int64, 0, len(lines))
	seen := make(map[int64]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ItemID]; ok {
			continue
		}
		seen[line.ItemID] = struct{}{}
		ids = append(ids, line.ItemID)
	}
	return ids
}
