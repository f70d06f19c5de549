package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/ports"
)

var _ ports.Repository = (*Repository)(nil)

const uniqueViolation = "23505"

// Repository persists menu items in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// itemRecord maps a menu item to the menu_items table. NameKey holds the
// lower-cased name so lookups and uniqueness ignore case.
type itemRecord struct {
	ID          int64           `gorm:"primaryKey;column:id"`
	Name        string          `gorm:"column:name;not null"`
	NameKey     string          `gorm:"column:name_key;uniqueIndex:idx_menu_items_name_key"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Description string          `gorm:"column:description"`
	Available   *bool           `gorm:"column:available;not null;default:true"`
	MaxQty      int             `gorm:"column:max_qty;not null;default:10"`
	Category    string          `gorm:"column:category;not null;default:General;index"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (itemRecord) TableName() string { return "menu_items" }

// List returns all items ordered by id.
func (r *Repository) List(ctx context.Context) ([]*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []itemRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// ListByIDs returns the items whose ids are in the set; unknown ids are skipped.
func (r *Repository) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*domain.Item{}, nil
	}
	var records []itemRecord
	if err := r.db.WithContext(ctx).
		Where("id = ANY(?)", pq.Array(ids)).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// GetByID fetches an item by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record itemRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// FindByName fetches an item by case-insensitive name.
func (r *Repository) FindByName(ctx context.Context, name string) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record itemRecord
	if err := r.db.WithContext(ctx).First(&record, "name_key = ?", nameKey(name)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Create inserts a new item and returns it with its assigned id.
func (r *Repository) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("menu item is nil")
	}
	record := toRecord(item)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toDomain(), nil
}

// Update writes every field of the patch in one UPDATE statement.
func (r *Repository) Update(ctx context.Context, id int64, patch domain.Patch) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	columns := patchColumns(patch)
	if len(columns) == 0 {
		return r.GetByID(ctx, id)
	}
	columns["updated_at"] = gorm.Expr("NOW()")
	result := r.db.WithContext(ctx).
		Model(&itemRecord{}).
		Where("id = ?", id).
		Updates(columns)
	if result.Error != nil {
		return nil, translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Count returns the number of stored items.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&itemRecord{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres menu repository not configured")
	}
	return nil
}

func patchColumns(patch domain.Patch) map[string]any {
	columns := map[string]any{}
	if patch.Name != nil {
		columns["name"] = *patch.Name
		columns["name_key"] = nameKey(*patch.Name)
	}
	if patch.Price != nil {
		columns["price"] = *patch.Price
	}
	if patch.Description != nil {
		columns["description"] = *patch.Description
	}
	if patch.Available != nil {
		columns["available"] = *patch.Available
	}
	if patch.MaxQty != nil {
		columns["max_qty"] = *patch.MaxQty
	}
	if patch.Category != nil {
		columns["category"] = *patch.Category
	}
	return columns
}

func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ports.ErrDuplicateName
	}
	return err
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func toRecord(item *domain.Item) itemRecord {
	available := item.Available
	return itemRecord{
		ID:          item.ID,
		Name:        item.Name,
		NameKey:     nameKey(item.Name),
		Price:       item.Price,
		Description: item.Description,
		Available:   &available,
		MaxQty:      item.MaxQty,
		Category:    item.Category,
	}
}

func (r itemRecord) toDomain() *domain.Item {
	available := true
	if r.Available != nil {
		available = *r.Available
	}
	maxQty := r.MaxQty
	if maxQty == 0 {
		maxQty = domain.DefaultMaxQty
	}
	return &domain.Item{
		ID:          r.ID,
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		Available:   available,
		MaxQty:      maxQty,
		Category:    domain.NormalizeCategory(r.Category),
	}
}

func toDomainList(records []itemRecord) []*domain.Item {
	items := make([]*domain.Item, 0, len(records))
	for i := range records {
		items = append(items, records[i].toDomain())
	}
	return items
}
