package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemStatus is the lifecycle state of an inventory item. Deletion is a
// status flip, the row is retained and can be reactivated.
type ItemStatus string

const (
	ItemActive  ItemStatus = "active"
	ItemDeleted ItemStatus = "deleted"
)

// ValidItemStatus reports whether s is one of the allowed states.
func ValidItemStatus(s ItemStatus) bool {
	return s == ItemActive || s == ItemDeleted
}

// InventoryItem is a stocked product. SKU is optional but unique when
// present (partial index so blank SKUs do not collide). Category is a plain
// name reference, not a foreign key, mirroring the source data model.
type InventoryItem struct {
	BaseModel
	SKU         string          `gorm:"type:varchar(50);uniqueIndex:idx_items_sku,where:sku <> ''" json:"sku"`
	Name        string          `gorm:"type:varchar(120);not null;index" json:"name" validate:"required"`
	Category    string          `gorm:"type:varchar(80);not null" json:"category" validate:"required"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Quantity    int             `gorm:"not null;default:0" json:"quantity" validate:"gte=0"`
	Expiry      *time.Time      `gorm:"type:date" json:"expiry,omitempty"`
	Description string          `gorm:"type:text" json:"description"`
	Status      ItemStatus      `gorm:"type:varchar(20);not null;default:active" json:"status"`
}

// IsExpired reports whether the item's expiry date is strictly before the
// given day. Items without an expiry date never expire.
func (i *InventoryItem) IsExpired(today time.Time) bool {
	if i.Expiry == nil {
		return false
	}
	return dateOf(*i.Expiry).Before(dateOf(today))
}

// DaysToExpiry returns whole days between today and the expiry date.
// Negative when already expired. The second return is false when the item
// has no expiry date.
func (i *InventoryItem) DaysToExpiry(today time.Time) (int, bool) {
	if i.Expiry == nil {
		return 0, false
	}
	return int(dateOf(*i.Expiry).Sub(dateOf(today)).Hours() / 24), true
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
