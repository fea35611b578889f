package service

import (
	"context"
	"time"

	"go-stockpilot/internal/repository"

	"github.com/shopspring/decimal"
)

type DashboardService interface {
	GetStockMovement(ctx context.Context, days int) ([]repository.StockMovementData, error)
	GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error)
	GetFinancialSummary(ctx context.Context, days int) (*FinancialSummary, error)
}

// FinancialSummary aggregates the ledger over a trailing window. Net is
// income minus expense.
type FinancialSummary struct {
	PeriodDays int             `json:"period_days"`
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
	Net        decimal.Decimal `json:"net"`
}

type dashboardService struct {
	txRepo repository.TransactionRepository
}

func NewDashboardService(txRepo repository.TransactionRepository) DashboardService {
	return &dashboardService{txRepo: txRepo}
}

func (s *dashboardService) GetStockMovement(ctx context.Context, days int) ([]repository.StockMovementData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.txRepo.GetStockMovement(ctx, startDate, endDate)
}

func (s *dashboardService) GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error) {
	return s.txRepo.GetDashboardStats(ctx, DefaultExpiryHorizonDays)
}

func (s *dashboardService) GetFinancialSummary(ctx context.Context, days int) (*FinancialSummary, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	income, expense, err := s.txRepo.GetFinancialSummary(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	return &FinancialSummary{
		PeriodDays: days,
		Income:     income,
		Expense:    expense,
		Net:        income.Sub(expense),
	}, nil
}
