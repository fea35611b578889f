package service

import (
	"context"
	"sort"
	"time"

	"go-stockpilot/internal/model"
	"go-stockpilot/internal/repository"
)

// DefaultExpiryHorizonDays is the "expiring soon" window when the caller
// does not supply one.
const DefaultExpiryHorizonDays = 30

type ExpiryService interface {
	Classify(ctx context.Context, horizonDays int, category string) (*ExpiryReport, error)
}

// ExpiryItem is one inventory row annotated with its remaining shelf life.
// DaysToExpiry is nil for items without an expiry date.
type ExpiryItem struct {
	ID           string  `json:"id"`
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Quantity     int     `json:"quantity"`
	Expiry       *string `json:"expiry"`
	DaysToExpiry *int    `json:"days_to_expiry"`
}

// ExpiryReport partitions the active inventory into three disjoint buckets.
// Every item lands in exactly one bucket and each bucket is ordered most
// urgent first.
type ExpiryReport struct {
	HorizonDays  int          `json:"horizon_days"`
	Expired      []ExpiryItem `json:"expired"`
	ExpiringSoon []ExpiryItem `json:"expiring_soon"`
	Safe         []ExpiryItem `json:"safe"`
	Counts       struct {
		Expired      int `json:"expired"`
		ExpiringSoon int `json:"expiring_soon"`
		Safe         int `json:"safe"`
		Total        int `json:"total"`
	} `json:"counts"`
}

type expiryService struct {
	itemRepo repository.ItemRepository
	now      func() time.Time
}

func NewExpiryService(itemRepo repository.ItemRepository) ExpiryService {
	return &expiryService{itemRepo: itemRepo, now: time.Now}
}

func (s *expiryService) Classify(ctx context.Context, horizonDays int, category string) (*ExpiryReport, error) {
	if horizonDays <= 0 {
		horizonDays = DefaultExpiryHorizonDays
	}

	items, err := s.itemRepo.FindAllActive(ctx, category)
	if err != nil {
		return nil, err
	}

	today := s.now()
	report := &ExpiryReport{HorizonDays: horizonDays}

	for i := range items {
		entry := toExpiryItem(&items[i], today)
		switch {
		case entry.DaysToExpiry == nil:
			// No expiry date: effectively infinite horizon.
			report.Safe = append(report.Safe, entry)
		case *entry.DaysToExpiry <= 0:
			report.Expired = append(report.Expired, entry)
		case *entry.DaysToExpiry <= horizonDays:
			report.ExpiringSoon = append(report.ExpiringSoon, entry)
		default:
			report.Safe = append(report.Safe, entry)
		}
	}

	sortByUrgency(report.Expired)
	sortByUrgency(report.ExpiringSoon)
	sortByUrgency(report.Safe)

	report.Counts.Expired = len(report.Expired)
	report.Counts.ExpiringSoon = len(report.ExpiringSoon)
	report.Counts.Safe = len(report.Safe)
	report.Counts.Total = len(items)

	return report, nil
}

func toExpiryItem(item *model.InventoryItem, today time.Time) ExpiryItem {
	entry := ExpiryItem{
		ID:       item.ID.String(),
		SKU:      item.SKU,
		Name:     item.Name,
		Category: item.Category,
		Quantity: item.Quantity,
	}
	if days, ok := item.DaysToExpiry(today); ok {
		entry.DaysToExpiry = &days
		formatted := item.Expiry.Format("2006-01-02")
		entry.Expiry = &formatted
	}
	return entry
}

// sortByUrgency orders ascending by days-to-expiry; items without an expiry
// date sort last.
func sortByUrgency(items []ExpiryItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].DaysToExpiry, items[j].DaysToExpiry
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})
}
