// cmd/civicd/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"civic-qa/internal/common/config"
	"civic-qa/internal/common/database"
	"civic-qa/internal/common/logger"
	"civic-qa/internal/common/observability"
	"civic-qa/internal/lexicon"
	"civic-qa/internal/pipeline"
	"civic-qa/internal/server"
	"civic-qa/internal/session"
	"civic-qa/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting civic-qa...",
		zap.String("environment", cfg.App.Environment),
		zap.Int("port", cfg.Server.Port),
	)

	obs := observability.New("civic-qa")
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Lexicon ---
	lex, err := loadLexicon(cfg.Lexicon)
	if err != nil {
		zapLog.Fatal("lexicon load failed", zap.Error(err))
	}

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Officials store + first-boot import ---
	repo := store.NewRepository(pg.DB, log)
	if err := repo.EnsureSchema(ctx); err != nil {
		zapLog.Fatal("schema bootstrap failed", zap.Error(err))
	}
	if cfg.Importer.AutoImport {
		imported, existing, err := repo.ImportCSV(ctx, cfg.Importer.CSVPath)
		if err != nil {
			zapLog.Fatal("officials import failed", zap.Error(err))
		}
		zapLog.Info("officials data ready",
			zap.Int("imported", imported),
			zap.Int("existing", existing),
		)
	}

	// --- Session store ---
	sessions, closeSessions, err := buildSessionStore(ctx, cfg, zapLog)
	if err != nil {
		zapLog.Fatal("session store failed", zap.Error(err))
	}
	defer closeSessions()

	// --- Pipeline + HTTP ---
	engine := pipeline.NewEngine(repo, sessions, lex, log)
	srv := server.New(cfg.Server, engine, pg, obs, log)

	if err := srv.Start(ctx); err != nil {
		zapLog.Fatal("http server failed", zap.Error(err))
	}

	zapLog.Info("civic-qa stopped gracefully")
}

func loadLexicon(cfg config.LexiconConfig) (*lexicon.Lexicon, error) {
	if cfg.Path != "" {
		return lexicon.LoadFile(cfg.Path)
	}
	return lexicon.Default()
}

// buildSessionStore picks the configured backend. Redis gets the same
// retry treatment as Postgres since a load-balanced deployment cannot
// serve coherent follow-up questions without it.
func buildSessionStore(ctx context.Context, cfg *config.Config, zapLog *zap.Logger) (session.Store, func(), error) {
	if cfg.Sessions.Backend != "redis" {
		return session.NewMemoryStore(), func() {}, nil
	}

	var redis *database.RedisClient
	err := retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		return nil, nil, err
	}
	zapLog.Info("Redis connected successfully")

	ttl := time.Duration(cfg.Sessions.TTL) * time.Second
	return session.NewRedisStore(redis.Client, ttl), func() { redis.Close() }, nil
}
