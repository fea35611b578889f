package repository

import (
	"context"
	"time"

	"go-stockpilot/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(tx *gorm.DB, transaction *model.Transaction) error
	FindAll(ctx context.Context) ([]model.Transaction, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	GetStockMovement(ctx context.Context, startDate, endDate time.Time) ([]StockMovementData, error)
	GetDashboardStats(ctx context.Context, expiryHorizonDays int) (*DashboardStats, error)
	GetFinancialSummary(ctx context.Context, startDate, endDate time.Time) (decimal.Decimal, decimal.Decimal, error)
}

// StockMovementData is one day of aggregated ledger quantities.
type StockMovementData struct {
	Date      string `json:"date"`
	Sold      int    `json:"sold"`
	Purchased int    `json:"purchased"`
}

// DashboardStats is the overview block for the dashboard.
type DashboardStats struct {
	TotalItems        int64           `json:"total_items"`
	LowStockCount     int64           `json:"low_stock_count"`
	ExpiringSoonCount int64           `json:"expiring_soon_count"`
	TotalValuation    decimal.Decimal `json:"total_valuation"`
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

// Create appends one ledger entry on the caller's transaction handle so the
// write commits together with the inventory mutation. This is the only
// write path for the entity.
func (r *transactionRepo) Create(tx *gorm.DB, transaction *model.Transaction) error {
	return tx.Create(transaction).Error
}

// FindAll returns the ledger newest-first. The id tiebreak keeps ordering
// stable for entries sharing one commit's timestamp.
func (r *transactionRepo) FindAll(ctx context.Context) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.WithContext(ctx).First(&transaction, "id = ?", id).Error
	return &transaction, err
}

func (r *transactionRepo) GetStockMovement(ctx context.Context, startDate, endDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	rows, err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select(`
			DATE(created_at) as date,
			COALESCE(SUM(CASE WHEN type = 'sale' THEN quantity ELSE 0 END), 0) as sold,
			COALESCE(SUM(CASE WHEN type = 'purchase' THEN quantity ELSE 0 END), 0) as purchased
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Sold, &data.Purchased); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, rows.Err()
}

func (r *transactionRepo) GetDashboardStats(ctx context.Context, expiryHorizonDays int) (*DashboardStats, error) {
	var stats DashboardStats
	db := r.db.WithContext(ctx)

	active := db.Model(&model.InventoryItem{}).Where("status = ?", model.ItemActive)
	if err := active.Count(&stats.TotalItems).Error; err != nil {
		return nil, err
	}

	db.Model(&model.InventoryItem{}).
		Where("status = ? AND quantity < ?", model.ItemActive, 10).
		Count(&stats.LowStockCount)

	horizon := time.Now().AddDate(0, 0, expiryHorizonDays)
	db.Model(&model.InventoryItem{}).
		Where("status = ? AND expiry IS NOT NULL AND expiry <= ?", model.ItemActive, horizon).
		Count(&stats.ExpiringSoonCount)

	db.Model(&model.InventoryItem{}).
		Where("status = ?", model.ItemActive).
		Select("COALESCE(SUM(quantity * price), 0)").
		Scan(&stats.TotalValuation)

	return &stats, nil
}

// GetFinancialSummary returns gross income (sale totals, stored positive)
// and gross expense (purchase totals, stored negative, returned as a
// positive magnitude) over the window.
func (r *transactionRepo) GetFinancialSummary(ctx context.Context, startDate, endDate time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var income decimal.Decimal
	var expense decimal.Decimal

	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("type = ? AND created_at BETWEEN ? AND ?", model.TxSale, startDate, endDate).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&income).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	err = r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("type = ? AND created_at BETWEEN ? AND ?", model.TxPurchase, startDate, endDate).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&expense).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return income, expense.Neg(), nil
}
