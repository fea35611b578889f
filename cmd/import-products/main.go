package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go-stockpilot/internal/importer"
	"go-stockpilot/internal/model"
	"go-stockpilot/pkg/database"
	"go-stockpilot/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	csvPath := flag.String("csv", "", "Path to the CSV file (required)")
	dryRun := flag.Bool("dry-run", false, "Preview changes without writing to the database")
	limit := flag.Int("limit", 0, "Max rows to process (0 = all)")
	verbose := flag.Bool("verbose", false, "Print per-row details")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	// .env is optional, system env is enough
	_ = godotenv.Load()

	log := logger.New()
	if *verbose {
		// Per-row debug output on the console
		log, _ = zap.NewDevelopment()
	}
	defer log.Sync()

	db := database.ConnectDB()
	if err := db.AutoMigrate(&model.Category{}, &model.InventoryItem{}); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	file, err := os.Open(*csvPath)
	if err != nil {
		log.Fatal("open csv", zap.String("path", *csvPath), zap.Error(err))
	}
	defer file.Close()

	summary, err := importer.New(db, log).Run(context.Background(), file, importer.Options{
		DryRun: *dryRun,
		Limit:  *limit,
	})
	if err != nil {
		log.Fatal("import failed", zap.Error(err))
	}

	fmt.Println("IMPORT SUMMARY")
	fmt.Print(summary)
}
