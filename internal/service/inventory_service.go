package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-stockpilot/internal/model"
	"go-stockpilot/internal/repository"
	"go-stockpilot/internal/ws"
	"go-stockpilot/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type InventoryService interface {
	CreateItem(ctx context.Context, req *ItemRequest) (*model.InventoryItem, error)
	UpdateItem(ctx context.Context, id uuid.UUID, req *ItemRequest) (*model.InventoryItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	GetItems(ctx context.Context, filter repository.ItemFilter) ([]model.InventoryItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
	RecordTransaction(ctx context.Context, req *TransactionRequest) (*model.Transaction, error)
	GetAllTransactions(ctx context.Context) ([]model.Transaction, error)
	GetTransactionByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
}

// ItemRequest carries create/update input. Expiry is YYYY-MM-DD or empty.
type ItemRequest struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	Expiry      string          `json:"expiry"`
	Description string          `json:"description"`
}

// TransactionRequest identifies the item by SKU or name; SKU wins when both
// could match different rows.
type TransactionRequest struct {
	Item     string `json:"item" validate:"required"`
	Type     string `json:"type" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

type inventoryService struct {
	itemRepo        repository.ItemRepository
	transactionRepo repository.TransactionRepository
	db              *gorm.DB
	wsHub           *ws.Hub
	log             *zap.Logger
}

func NewInventoryService(iRepo repository.ItemRepository, tRepo repository.TransactionRepository, db *gorm.DB, hub *ws.Hub, log *zap.Logger) InventoryService {
	return &inventoryService{
		itemRepo:        iRepo,
		transactionRepo: tRepo,
		db:              db,
		wsHub:           hub,
		log:             log,
	}
}

func (s *inventoryService) CreateItem(ctx context.Context, req *ItemRequest) (*model.InventoryItem, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, errs[0].FailedField, errs[0].Tag)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}

	expiry, err := parseExpiry(req.Expiry)
	if err != nil {
		return nil, err
	}

	// Re-adding a soft-deleted item reactivates the existing row instead of
	// inserting a duplicate. SKU match wins over name match.
	existing := s.findAnyStatus(ctx, req.SKU, req.Name)
	if existing != nil {
		if existing.Status != model.ItemDeleted {
			if req.SKU != "" && strings.EqualFold(existing.SKU, req.SKU) {
				return nil, ErrSKUExists
			}
			return nil, ErrItemExists
		}
		existing.SKU = req.SKU
		existing.Name = req.Name
		existing.Category = req.Category
		existing.Price = req.Price
		existing.Quantity = req.Quantity
		existing.Expiry = expiry
		existing.Description = req.Description
		existing.Status = model.ItemActive
		if err := s.itemRepo.Save(ctx, existing); err != nil {
			return nil, err
		}
		s.publishItem("item_updated", existing)
		return existing, nil
	}

	item := &model.InventoryItem{
		SKU:         req.SKU,
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Expiry:      expiry,
		Description: req.Description,
		Status:      model.ItemActive,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	s.publishItem("item_created", item)
	return item, nil
}

func (s *inventoryService) UpdateItem(ctx context.Context, id uuid.UUID, req *ItemRequest) (*model.InventoryItem, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, errs[0].FailedField, errs[0].Tag)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}

	expiry, err := parseExpiry(req.Expiry)
	if err != nil {
		return nil, err
	}

	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil || item.Status == model.ItemDeleted {
		return nil, ErrItemNotFound
	}

	// A SKU change must not collide with another row.
	if req.SKU != "" && !strings.EqualFold(req.SKU, item.SKU) {
		if other, err := s.itemRepo.FindBySKU(ctx, req.SKU); err == nil && other.ID != item.ID {
			return nil, ErrSKUExists
		}
	}

	item.SKU = req.SKU
	item.Name = req.Name
	item.Category = req.Category
	item.Price = req.Price
	item.Quantity = req.Quantity
	item.Expiry = expiry
	item.Description = req.Description

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.publishItem("item_updated", item)
	return item, nil
}

// DeleteItem flips status to deleted; the row and its ledger history stay.
func (s *inventoryService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil || item.Status == model.ItemDeleted {
		return ErrItemNotFound
	}
	item.Status = model.ItemDeleted
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return err
	}
	s.publishItem("item_deleted", item)
	return nil
}

func (s *inventoryService) GetItems(ctx context.Context, filter repository.ItemFilter) ([]model.InventoryItem, error) {
	return s.itemRepo.FindAll(ctx, filter)
}

func (s *inventoryService) GetItem(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil || item.Status == model.ItemDeleted {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// RecordTransaction applies a sale or purchase to the matching inventory
// row and appends the ledger entry in the same database transaction. The
// ledger total is signed: positive for sales, negative for purchases.
func (s *inventoryService) RecordTransaction(ctx context.Context, req *TransactionRequest) (*model.Transaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, errs[0].FailedField, errs[0].Tag)
	}

	opType := model.TransactionType(strings.ToLower(strings.TrimSpace(req.Type)))
	if opType != model.TxSale && opType != model.TxPurchase {
		return nil, ErrInvalidOperation
	}

	var entry *model.Transaction
	var newQuantity int

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.itemRepo.FindActiveBySKU(tx, req.Item)
		if err != nil {
			item, err = s.itemRepo.FindActiveByName(tx, req.Item)
		}
		if err != nil {
			return ErrItemNotFound
		}

		qty := decimal.NewFromInt(int64(req.Quantity))
		var total decimal.Decimal

		switch opType {
		case model.TxSale:
			if item.IsExpired(time.Now()) {
				return ErrItemExpired
			}
			if item.Quantity < req.Quantity {
				return ErrInsufficientStock
			}
			newQuantity = item.Quantity - req.Quantity
			total = item.Price.Mul(qty)
		case model.TxPurchase:
			newQuantity = item.Quantity + req.Quantity
			total = item.Price.Mul(qty).Neg()
		}

		if err := s.itemRepo.UpdateQuantity(tx, item.ID, newQuantity); err != nil {
			return err
		}

		entry = &model.Transaction{
			ProductID:   item.ID,
			ProductName: item.Name,
			Type:        opType,
			Quantity:    req.Quantity,
			TotalPrice:  total,
		}
		return s.transactionRepo.Create(tx, entry)
	})

	if err != nil {
		return nil, err
	}

	// Broadcast only after the commit so listeners never see a rolled-back
	// mutation.
	go s.wsHub.Publish("transaction_recorded", map[string]interface{}{
		"transaction":  entry,
		"new_quantity": newQuantity,
	})
	s.log.Info("transaction recorded",
		zap.String("product", entry.ProductName),
		zap.String("type", string(entry.Type)),
		zap.Int("quantity", entry.Quantity),
		zap.String("total_price", entry.TotalPrice.String()),
	)

	return entry, nil
}

func (s *inventoryService) GetAllTransactions(ctx context.Context) ([]model.Transaction, error) {
	return s.transactionRepo.FindAll(ctx)
}

func (s *inventoryService) GetTransactionByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	transaction, err := s.transactionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrTransactionNotFound
	}
	return transaction, nil
}

func (s *inventoryService) findAnyStatus(ctx context.Context, sku, name string) *model.InventoryItem {
	if sku != "" {
		if item, err := s.itemRepo.FindBySKU(ctx, sku); err == nil {
			return item
		}
	}
	if item, err := s.itemRepo.FindByName(ctx, name); err == nil {
		return item
	}
	return nil
}

func (s *inventoryService) publishItem(action string, item *model.InventoryItem) {
	go s.wsHub.Publish(action, map[string]interface{}{
		"id":       item.ID,
		"sku":      item.SKU,
		"name":     item.Name,
		"quantity": item.Quantity,
		"price":    item.Price,
		"status":   item.Status,
	})
}

func parseExpiry(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("%w: expiry must be YYYY-MM-DD", ErrValidation)
	}
	return &t, nil
}
