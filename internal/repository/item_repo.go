package repository

import (
	"context"
	"strings"

	"go-stockpilot/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemFilter narrows FindAll results. Zero values mean "no constraint".
type ItemFilter struct {
	Category string
	Status   model.ItemStatus
	Search   string // case-insensitive substring on name or SKU
}

type ItemRepository interface {
	Create(ctx context.Context, item *model.InventoryItem) error
	Save(ctx context.Context, item *model.InventoryItem) error
	FindAll(ctx context.Context, filter ItemFilter) ([]model.InventoryItem, error)
	FindAllActive(ctx context.Context, category string) ([]model.InventoryItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
	FindBySKU(ctx context.Context, sku string) (*model.InventoryItem, error)
	FindByName(ctx context.Context, name string) (*model.InventoryItem, error)
	FindActiveBySKU(tx *gorm.DB, sku string) (*model.InventoryItem, error)
	FindActiveByName(tx *gorm.DB, name string) (*model.InventoryItem, error)
	UpdateQuantity(tx *gorm.DB, id uuid.UUID, newQuantity int) error
}

type itemRepo struct {
	db *gorm.DB
}

func NewItemRepo(db *gorm.DB) ItemRepository {
	return &itemRepo{db}
}

func (r *itemRepo) Create(ctx context.Context, item *model.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepo) Save(ctx context.Context, item *model.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *itemRepo) FindAll(ctx context.Context, filter ItemFilter) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	query := r.db.WithContext(ctx)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	} else {
		query = query.Where("status <> ?", model.ItemDeleted)
	}
	if filter.Category != "" {
		query = query.Where("LOWER(category) = LOWER(?)", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern)
	}

	err := query.Order("name ASC").Find(&items).Error
	return items, err
}

// FindAllActive returns every non-deleted item, optionally narrowed to one
// category (case-insensitive name match).
func (r *itemRepo) FindAllActive(ctx context.Context, category string) ([]model.InventoryItem, error) {
	return r.FindAll(ctx, ItemFilter{Status: model.ItemActive, Category: category})
}

func (r *itemRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	return &item, err
}

// FindBySKU matches any status so callers can reactivate deleted rows.
func (r *itemRepo) FindBySKU(ctx context.Context, sku string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.WithContext(ctx).First(&item, "UPPER(sku) = UPPER(?)", sku).Error
	return &item, err
}

// FindByName matches case-insensitively across any status.
func (r *itemRepo) FindByName(ctx context.Context, name string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.WithContext(ctx).First(&item, "LOWER(name) = LOWER(?)", name).Error
	return &item, err
}

// FindActiveBySKU runs on the caller's transaction handle so the lookup
// participates in the same unit of work as the quantity update.
func (r *itemRepo) FindActiveBySKU(tx *gorm.DB, sku string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := tx.Where("status = ?", model.ItemActive).
		First(&item, "UPPER(sku) = UPPER(?)", sku).Error
	return &item, err
}

func (r *itemRepo) FindActiveByName(tx *gorm.DB, name string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := tx.Where("status = ?", model.ItemActive).
		First(&item, "LOWER(name) = LOWER(?)", name).Error
	return &item, err
}

// UpdateQuantity writes the new on-hand quantity inside the caller's
// transaction. Price, category and expiry are never touched here.
func (r *itemRepo) UpdateQuantity(tx *gorm.DB, id uuid.UUID, newQuantity int) error {
	return tx.Model(&model.InventoryItem{}).
		Where("id = ?", id).
		Update("quantity", newQuantity).Error
}
