package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TxSale     TransactionType = "sale"
	TxPurchase TransactionType = "purchase"
)

// Transaction is one immutable ledger entry. ProductID and ProductName are
// snapshots taken at transaction time, so the entry stays meaningful if the
// inventory row is later renamed or soft-deleted. There is no update or
// delete path for this entity anywhere in the codebase.
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;" json:"id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string          `gorm:"type:varchar(120);not null" json:"product_name"`
	Type        TransactionType `gorm:"type:varchar(20);not null" json:"type" validate:"required,oneof=sale purchase"`
	Quantity    int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	// Signed: positive for sales, negative for purchases (cost outflow).
	TotalPrice decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
