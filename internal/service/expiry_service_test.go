package service

import (
	"context"
	"testing"
	"time"

	"go-stockpilot/internal/model"
	"go-stockpilot/internal/repository"

	"github.com/google/uuid"
)

type stubItemRepo struct {
	repository.ItemRepository
	items        []model.InventoryItem
	gotCategory  string
	findAllError error
}

func (s *stubItemRepo) FindAllActive(ctx context.Context, category string) ([]model.InventoryItem, error) {
	s.gotCategory = category
	return s.items, s.findAllError
}

func expiryFixtureItem(name string, expiry *time.Time) model.InventoryItem {
	return model.InventoryItem{
		BaseModel: model.BaseModel{ID: uuid.New()},
		Name:      name,
		Category:  "Dairy",
		Quantity:  1,
		Expiry:    expiry,
		Status:    model.ItemActive,
	}
}

func onDay(base time.Time, offsetDays int) *time.Time {
	d := base.AddDate(0, 0, offsetDays)
	return &d
}

func newStubExpiryService(repo *stubItemRepo, today time.Time) *expiryService {
	return &expiryService{itemRepo: repo, now: func() time.Time { return today }}
}

func TestClassifyPartitionsEveryItemOnce(t *testing.T) {
	today := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	repo := &stubItemRepo{items: []model.InventoryItem{
		expiryFixtureItem("long gone", onDay(today, -40)),
		expiryFixtureItem("yesterday", onDay(today, -1)),
		expiryFixtureItem("today", onDay(today, 0)),
		expiryFixtureItem("tomorrow", onDay(today, 1)),
		expiryFixtureItem("at horizon", onDay(today, 30)),
		expiryFixtureItem("past horizon", onDay(today, 31)),
		expiryFixtureItem("no expiry", nil),
	}}
	svc := newStubExpiryService(repo, today)

	report, err := svc.Classify(context.Background(), 30, "")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	names := func(items []ExpiryItem) []string {
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = it.Name
		}
		return out
	}

	wantExpired := []string{"long gone", "yesterday", "today"}
	wantSoon := []string{"tomorrow", "at horizon"}
	wantSafe := []string{"past horizon", "no expiry"}

	assertNames := func(bucket string, got, want []string) {
		if len(got) != len(want) {
			t.Fatalf("%s = %v, want %v", bucket, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s[%d] = %q, want %q", bucket, i, got[i], want[i])
			}
		}
	}
	assertNames("expired", names(report.Expired), wantExpired)
	assertNames("expiring_soon", names(report.ExpiringSoon), wantSoon)
	assertNames("safe", names(report.Safe), wantSafe)

	if report.Counts.Total != 7 || report.Counts.Expired != 3 || report.Counts.ExpiringSoon != 2 || report.Counts.Safe != 2 {
		t.Errorf("counts = %+v", report.Counts)
	}
}

func TestClassifyDaysToExpiry(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	repo := &stubItemRepo{items: []model.InventoryItem{
		expiryFixtureItem("yesterday", onDay(today, -1)),
		expiryFixtureItem("no expiry", nil),
	}}
	svc := newStubExpiryService(repo, today)

	report, err := svc.Classify(context.Background(), 30, "")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	expired := report.Expired[0]
	if expired.DaysToExpiry == nil || *expired.DaysToExpiry != -1 {
		t.Errorf("expired DaysToExpiry = %v, want -1", expired.DaysToExpiry)
	}
	if expired.Expiry == nil || *expired.Expiry != "2026-03-14" {
		t.Errorf("expired Expiry = %v, want 2026-03-14", expired.Expiry)
	}

	safe := report.Safe[0]
	if safe.DaysToExpiry != nil || safe.Expiry != nil {
		t.Errorf("item without expiry reported days=%v expiry=%v, want nil", safe.DaysToExpiry, safe.Expiry)
	}
}

func TestClassifySortsMostUrgentFirst(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	repo := &stubItemRepo{items: []model.InventoryItem{
		expiryFixtureItem("in ten", onDay(today, 10)),
		expiryFixtureItem("in two", onDay(today, 2)),
		expiryFixtureItem("in five", onDay(today, 5)),
	}}
	svc := newStubExpiryService(repo, today)

	report, err := svc.Classify(context.Background(), 30, "")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	want := []string{"in two", "in five", "in ten"}
	for i, name := range want {
		if report.ExpiringSoon[i].Name != name {
			t.Errorf("expiring_soon[%d] = %q, want %q", i, report.ExpiringSoon[i].Name, name)
		}
	}
}

func TestClassifyHorizonDefaultsAndCategoryPassThrough(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	repo := &stubItemRepo{items: []model.InventoryItem{
		expiryFixtureItem("in twenty", onDay(today, 20)),
	}}
	svc := newStubExpiryService(repo, today)

	report, err := svc.Classify(context.Background(), 0, "dairy")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if report.HorizonDays != DefaultExpiryHorizonDays {
		t.Errorf("HorizonDays = %d, want default %d", report.HorizonDays, DefaultExpiryHorizonDays)
	}
	if len(report.ExpiringSoon) != 1 {
		t.Errorf("expiring_soon = %d items, want 1 under default horizon", len(report.ExpiringSoon))
	}
	if repo.gotCategory != "dairy" {
		t.Errorf("category filter = %q, want %q", repo.gotCategory, "dairy")
	}
}

func TestClassifyNarrowHorizon(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	repo := &stubItemRepo{items: []model.InventoryItem{
		expiryFixtureItem("in three", onDay(today, 3)),
		expiryFixtureItem("in eight", onDay(today, 8)),
	}}
	svc := newStubExpiryService(repo, today)

	report, err := svc.Classify(context.Background(), 7, "")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if len(report.ExpiringSoon) != 1 || report.ExpiringSoon[0].Name != "in three" {
		t.Errorf("expiring_soon = %+v, want only the item within 7 days", report.ExpiringSoon)
	}
	if len(report.Safe) != 1 || report.Safe[0].Name != "in eight" {
		t.Errorf("safe = %+v, want the item past the horizon", report.Safe)
	}
}
