package service

import (
	"context"
	"errors"
	"testing"

	"go-stockpilot/internal/model"
	"go-stockpilot/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newCategoryService(t *testing.T, db *gorm.DB) CategoryService {
	t.Helper()
	return NewCategoryService(repository.NewCategoryRepo(db))
}

func TestCreateCategoryDuplicateNameIsConflict(t *testing.T) {
	db := newTestDB(t)
	svc := newCategoryService(t, db)
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, &CategoryRequest{Name: "Produce"}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	// Namesakes are rejected regardless of case.
	_, err := svc.CreateCategory(ctx, &CategoryRequest{Name: "PRODUCE"})
	if !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("duplicate err = %v, want ErrCategoryExists", err)
	}
}

func TestCreateCategoryStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newCategoryService(t, db)
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, &CategoryRequest{Name: "Bakery"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if created.Status != model.CategoryActive {
		t.Errorf("default status = %q, want active", created.Status)
	}

	if _, err := svc.CreateCategory(ctx, &CategoryRequest{Name: "Frozen", Status: "paused"}); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown status err = %v, want ErrValidation", err)
	}
	if _, err := svc.CreateCategory(ctx, &CategoryRequest{Name: "Frozen", Status: "deleted"}); !errors.Is(err, ErrValidation) {
		t.Errorf("deleted-on-create err = %v, want ErrValidation", err)
	}
	if _, err := svc.CreateCategory(ctx, &CategoryRequest{}); !errors.Is(err, ErrValidation) {
		t.Errorf("missing name err = %v, want ErrValidation", err)
	}
}

func TestDeleteCategoryIsSoft(t *testing.T) {
	db := newTestDB(t)
	svc := newCategoryService(t, db)
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, &CategoryRequest{Name: "Dairy"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if err := svc.DeleteCategory(ctx, created.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	if _, err := svc.GetCategory(ctx, created.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("deleted category still visible: %v", err)
	}
	if err := svc.DeleteCategory(ctx, created.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("double delete err = %v, want ErrCategoryNotFound", err)
	}

	// The row survives for reactivation.
	var row model.Category
	if err := db.First(&row, "id = ?", created.ID).Error; err != nil {
		t.Fatalf("deleted row gone from storage: %v", err)
	}
	if row.Status != model.CategoryDeleted {
		t.Errorf("stored status = %q, want deleted", row.Status)
	}
}

func TestCreateCategoryReactivatesDeletedNamesake(t *testing.T) {
	db := newTestDB(t)
	svc := newCategoryService(t, db)
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, &CategoryRequest{Name: "Dairy", Description: "old"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if err := svc.DeleteCategory(ctx, created.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	revived, err := svc.CreateCategory(ctx, &CategoryRequest{Name: "dairy", Description: "new"})
	if err != nil {
		t.Fatalf("re-create: %v", err)
	}
	if revived.ID != created.ID {
		t.Errorf("re-create made a new row, want reactivated %s", created.ID)
	}
	if revived.Status != model.CategoryActive || revived.Description != "new" || revived.Name != "dairy" {
		t.Errorf("reactivated row = %+v", revived)
	}

	var count int64
	db.Model(&model.Category{}).Count(&count)
	if count != 1 {
		t.Errorf("category rows = %d, want 1", count)
	}
}

func TestUpdateCategoryRenameCollision(t *testing.T) {
	db := newTestDB(t)
	svc := newCategoryService(t, db)
	ctx := context.Background()

	first, err := svc.CreateCategory(ctx, &CategoryRequest{Name: "Produce"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	second, err := svc.CreateCategory(ctx, &CategoryRequest{Name: "Bakery"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	if _, err := svc.UpdateCategory(ctx, second.ID, &CategoryRequest{Name: "produce"}); !errors.Is(err, ErrCategoryExists) {
		t.Errorf("rename collision err = %v, want ErrCategoryExists", err)
	}

	// Updating a category under its own name is not a collision.
	updated, err := svc.UpdateCategory(ctx, first.ID, &CategoryRequest{Name: "Produce", Status: "inactive"})
	if err != nil {
		t.Fatalf("self-rename: %v", err)
	}
	if updated.Status != model.CategoryInactive {
		t.Errorf("status = %q, want inactive", updated.Status)
	}
}

func TestGetCategoriesStatusFilter(t *testing.T) {
	db := newTestDB(t)
	svc := newCategoryService(t, db)
	ctx := context.Background()

	active, err := svc.CreateCategory(ctx, &CategoryRequest{Name: "Produce"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if _, err := svc.CreateCategory(ctx, &CategoryRequest{Name: "Bakery", Status: "inactive"}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	gone, err := svc.CreateCategory(ctx, &CategoryRequest{Name: "Legacy"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if err := svc.DeleteCategory(ctx, gone.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	all, err := svc.GetCategories(ctx, "")
	if err != nil {
		t.Fatalf("GetCategories: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("default listing = %d categories, want 2 non-deleted", len(all))
	}

	onlyActive, err := svc.GetCategories(ctx, model.CategoryActive)
	if err != nil {
		t.Fatalf("GetCategories active: %v", err)
	}
	if len(onlyActive) != 1 || onlyActive[0].ID != active.ID {
		t.Errorf("active listing = %+v, want just %s", onlyActive, active.Name)
	}
}

func TestGetCategoryUnknownID(t *testing.T) {
	db := newTestDB(t)
	svc := newCategoryService(t, db)

	if _, err := svc.GetCategory(context.Background(), uuid.New()); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("unknown id err = %v, want ErrCategoryNotFound", err)
	}
}
