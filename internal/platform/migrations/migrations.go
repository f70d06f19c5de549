package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run creates the menu and order tables and adds any columns missing from
// older schemas. Safe to call on every startup.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&menuItemRecord{},
		&orderRecord{},
	)
}

// Menu schema mirrors the menu Postgres adapter.
type menuItemRecord struct {
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

func (menuItemRecord) TableName() string { return "menu_items" }

// Order schema mirrors the orders Postgres adapter.
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
