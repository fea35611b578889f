// Package importer is an idempotent CSV-to-store pipeline for products and
// categories: Load, ResolveColumns, ValidateRequired, UpsertCategories,
// UpsertProducts, then Commit (or Rollback in dry-run). It is a sequential
// single-writer job; running two imports against the same store at once is
// not supported.
package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"go-stockpilot/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoHeader means the file is empty or has no header row.
var ErrNoHeader = errors.New("csv has no header row")

// DefaultBatchSize is how many processed rows go between progress flushes.
const DefaultBatchSize = 500

type Options struct {
	DryRun    bool
	Limit     int // max data rows to process, 0 = all
	BatchSize int // 0 = DefaultBatchSize
}

// Summary is the per-run accounting emitted to the caller.
type Summary struct {
	CategoriesInserted int      `json:"categories_inserted"`
	CategoriesReused   int      `json:"categories_reused"`
	ProductsInserted   int      `json:"products_inserted"`
	ProductsUpdated    int      `json:"products_updated"`
	RowsSkipped        int      `json:"rows_skipped"`
	SkipReasons        []string `json:"skip_reasons,omitempty"`
	DryRun             bool     `json:"dry_run"`
}

func (s *Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "categories inserted: %d\n", s.CategoriesInserted)
	fmt.Fprintf(&b, "categories reused:   %d\n", s.CategoriesReused)
	fmt.Fprintf(&b, "products inserted:   %d\n", s.ProductsInserted)
	fmt.Fprintf(&b, "products updated:    %d\n", s.ProductsUpdated)
	fmt.Fprintf(&b, "rows skipped:        %d\n", s.RowsSkipped)
	for _, r := range s.SkipReasons {
		fmt.Fprintf(&b, "  - %s\n", r)
	}
	if s.DryRun {
		b.WriteString("dry run: nothing written\n")
	}
	return b.String()
}

type Importer struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func New(db *gorm.DB, log *zap.Logger) *Importer {
	return &Importer{db: db, log: log.Sugar()}
}

// Run executes the pipeline against one CSV stream. The whole run happens
// inside a single database transaction: committed once at the end, or
// rolled back when dry-run (validation and counting are identical either
// way). A SchemaError aborts before any write.
func (im *Importer) Run(ctx context.Context, r io.Reader, opts Options) (*Summary, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}

	header, rows, err := readRecords(r)
	if err != nil {
		return nil, err
	}

	cols, serr := resolveColumns(header)
	if serr != nil {
		return nil, serr
	}

	if opts.Limit > 0 && len(rows) > opts.Limit {
		rows = rows[:opts.Limit]
	}
	im.log.Infow("csv loaded", "rows", len(rows), "dry_run", opts.DryRun)

	summary := &Summary{DryRun: opts.DryRun}

	tx := im.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback() // no-op once committed

	if err := im.upsertCategories(tx, rows, cols, summary); err != nil {
		return nil, err
	}
	if err := im.upsertProducts(tx, rows, cols, opts.BatchSize, summary); err != nil {
		return nil, err
	}

	if opts.DryRun {
		if err := tx.Rollback().Error; err != nil {
			return nil, err
		}
		return summary, nil
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return summary, nil
}

// upsertCategories collects the distinct (case-insensitive) category names
// in the file, reactivates soft-deleted namesakes and inserts the rest.
func (im *Importer) upsertCategories(tx *gorm.DB, rows [][]string, cols map[string]int, summary *Summary) error {
	distinct := make(map[string]string) // lowercase key -> first-seen raw name
	for _, row := range rows {
		raw := field(row, cols, "category")
		if raw == "" {
			continue
		}
		key := strings.ToLower(raw)
		if _, ok := distinct[key]; !ok {
			distinct[key] = raw
		}
	}

	var existingRows []model.Category
	if err := tx.Find(&existingRows).Error; err != nil {
		return err
	}
	existing := make(map[string]*model.Category, len(existingRows))
	for i := range existingRows {
		existing[strings.ToLower(strings.TrimSpace(existingRows[i].Name))] = &existingRows[i]
	}

	keys := make([]string, 0, len(distinct))
	for k := range distinct {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		name := distinct[key]
		if cat, ok := existing[key]; ok {
			if cat.Status == model.CategoryDeleted {
				cat.Status = model.CategoryActive
				if err := tx.Save(cat).Error; err != nil {
					return err
				}
				im.log.Debugw("category reactivated", "name", name)
			}
			summary.CategoriesReused++
			continue
		}

		cat := &model.Category{Name: name, Description: "", Status: model.CategoryActive}
		if err := tx.Create(cat).Error; err != nil {
			return err
		}
		existing[key] = cat
		summary.CategoriesInserted++
		im.log.Debugw("category inserted", "name", name)
	}

	return nil
}

// upsertProducts walks the data rows, skipping rows with blank required
// fields, updating rows matched by uppercased SKU (name as fallback) and
// inserting the rest. Partial updates: price, quantity, expiry and
// description keep their existing values when the incoming cell is blank
// (or non-positive for the numerics); status is always overwritten.
func (im *Importer) upsertProducts(tx *gorm.DB, rows [][]string, cols map[string]int, batchSize int, summary *Summary) error {
	var existingRows []model.InventoryItem
	if err := tx.Find(&existingRows).Error; err != nil {
		return err
	}

	skuCache := make(map[string]*model.InventoryItem)
	nameCache := make(map[string]*model.InventoryItem)
	for i := range existingRows {
		item := &existingRows[i]
		if item.SKU != "" {
			skuCache[strings.ToUpper(strings.TrimSpace(item.SKU))] = item
		}
		nameCache[strings.ToLower(strings.TrimSpace(item.Name))] = item
	}

	processed := 0
	for i, row := range rows {
		sku := field(row, cols, "sku")
		name := field(row, cols, "name")
		category := field(row, cols, "category")

		if sku == "" || name == "" || category == "" {
			var missing []string
			if sku == "" {
				missing = append(missing, "sku")
			}
			if name == "" {
				missing = append(missing, "name")
			}
			if category == "" {
				missing = append(missing, "category")
			}
			reason := fmt.Sprintf("row %d: missing %s", i+1, strings.Join(missing, ","))
			summary.RowsSkipped++
			summary.SkipReasons = append(summary.SkipReasons, reason)
			im.log.Debugw("row skipped", "reason", reason)
			continue
		}

		price := safePrice(field(row, cols, "price"))
		quantity := safeInt(field(row, cols, "quantity"))
		expiry := parseDate(field(row, cols, "expiry"))
		description := field(row, cols, "description")
		status := normalizeStatus(field(row, cols, "status"))

		skuKey := strings.ToUpper(sku)

		// SKU match wins; name match is the fallback.
		existing := skuCache[skuKey]
		if existing == nil {
			existing = nameCache[strings.ToLower(name)]
		}

		if existing != nil {
			existing.SKU = sku
			existing.Name = name
			existing.Category = category
			if price.IsPositive() {
				existing.Price = price
			}
			if quantity > 0 {
				existing.Quantity = quantity
			}
			if expiry != nil {
				existing.Expiry = expiry
			}
			if description != "" {
				existing.Description = description
			}
			existing.Status = status
			if err := tx.Save(existing).Error; err != nil {
				return err
			}
			summary.ProductsUpdated++
			im.log.Debugw("product updated", "sku", sku, "name", name)
			skuCache[skuKey] = existing
			nameCache[strings.ToLower(name)] = existing
		} else {
			item := &model.InventoryItem{
				SKU:         sku,
				Name:        name,
				Category:    category,
				Price:       price,
				Quantity:    quantity,
				Expiry:      expiry,
				Description: description,
				Status:      status,
			}
			if err := tx.Create(item).Error; err != nil {
				return err
			}
			summary.ProductsInserted++
			im.log.Debugw("product inserted", "sku", sku, "name", name)
			skuCache[skuKey] = item
			nameCache[strings.ToLower(name)] = item
		}

		processed++
		if processed%batchSize == 0 {
			im.log.Infow("progress", "processed", processed)
		}
	}

	return nil
}

// readRecords loads the whole file, tolerating a UTF-8 BOM and ragged row
// lengths, and splits off the header row.
func readRecords(r io.Reader) (header []string, rows [][]string, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, ErrNoHeader
	}
	return records[0], records[1:], nil
}
