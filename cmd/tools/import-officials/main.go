// cmd/tools/import-officials/main.go
//
// One-shot bulk loader for the officials table. The server does this
// automatically on first boot when importer.auto_import is set; this tool
// exists for seeding a database out of band.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"civic-qa/internal/common/config"
	"civic-qa/internal/common/database"
	"civic-qa/internal/common/logger"
	"civic-qa/internal/store"
)

func main() {
	csvPath := flag.String("csv", "", "path to the officials CSV (default: importer.csv_path from config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, "console")
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	path := *csvPath
	if path == "" {
		path = cfg.Importer.CSVPath
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		zapLog.Fatal("postgres failed", zap.Error(err))
	}
	defer pg.Close()

	if err := pg.Ping(ctx); err != nil {
		zapLog.Fatal("postgres unreachable", zap.Error(err))
	}

	repo := store.NewRepository(pg.DB, log)
	if err := repo.EnsureSchema(ctx); err != nil {
		zapLog.Fatal("schema bootstrap failed", zap.Error(err))
	}

	imported, existing, err := repo.ImportCSV(ctx, path)
	if err != nil {
		zapLog.Fatal("import failed", zap.Error(err))
	}

	if existing > 0 {
		zapLog.Info("table already populated, nothing imported", zap.Int("existing", existing))
		return
	}
	zapLog.Info("import complete", zap.Int("imported", imported), zap.String("csv", path))
}
