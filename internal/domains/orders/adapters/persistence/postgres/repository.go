package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps an order to the orders table. Lines are stored as JSON text.
type orderRecord struct {
	ID          int64        `gorm:"primaryKey;column:id"`
	TableNumber string       `gorm:"column:table_number"`
	Items       []lineRecord `gorm:"column:items;type:text;serializer:json;not null"`
	Status      string       `gorm:"column:status;type:varchar(16);not null;default:pending;index"`
	CreatedAt   time.Time    `gorm:"column:created_at;not null;index"`
	UpdatedAt   time.Time    `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type lineRecord struct {
	ID  int64 `json:"id"`
	Qty int   `json:"qty"`
}

// Create inserts a new order and returns it with its assigned id.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all orders, newest first.
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// UpdateStatus sets the status in one statement and returns the updated row.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.Status) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	result := r.db.WithContext(ctx).
		Model(&records).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 || len(records) == 0 {
		return nil, ports.ErrNotFound
	}
	return records[0].toDomain(), nil
}

// ListCreatedBetween returns orders whose creation instant is in [from, to).
func (r *Repository) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from.UTC(), to.UTC()).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	items := make([]lineRecord, 0, len(order.Lines))
	for _, line := range order.Lines {
		items = append(items, lineRecord{ID: line.ItemID, Qty: line.Qty})
	}
	status := order.Status
	if status == "" {
		status = domain.StatusPending
	}
	return orderRecord{
		ID:          order.ID,
		TableNumber: order.TableNumber,
		Items:       items,
		Status:      string(status),
		CreatedAt:   order.CreatedAt.UTC(),
	}
}

func (r orderRecord) toDomain() *domain.Order {
	lines := make([]domain.Line, 0, len(r.Items))
	for _, item := range r.Items {
		lines = append(lines, domain.Line{ItemID: item.ID, Qty: item.Qty})
	}
	return &domain.Order{
		ID:          r.ID,
		TableNumber: r.TableNumber,
		Lines:       lines,
		Status:      domain.Status(r.Status),
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

func toDomainList(records []orderRecord) []*domain.Order {
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders
}
