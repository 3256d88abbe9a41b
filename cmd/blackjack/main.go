package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fadedpez/blackjack/internal/config"
	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/pkg/console"
	"github.com/fadedpez/blackjack/pkg/db"
	tableSession "github.com/fadedpez/blackjack/pkg/games/blackjack"
	"github.com/fadedpez/blackjack/pkg/repositories/game"
	"github.com/fadedpez/blackjack/pkg/scheduler"
	walletRepo "github.com/fadedpez/blackjack/pkg/repositories/wallet"
	"github.com/fadedpez/blackjack/pkg/services/blackjack"
	"github.com/fadedpez/blackjack/pkg/services/wallet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Invalid LOG_LEVEL: %v", err)
	}
	if cfg.IsDevelopment() {
		level = logging.DEBUG
	}

	// Log lines would interleave with the table, so they go to a file
	logOutput := os.Stderr
	if cfg.StorageType != config.StorageMemory {
		logFile, err := os.OpenFile(filepath.Join(cfg.DataDir, "blackjack.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer logFile.Close()
		logOutput = logFile
	}
	log.SetOutput(logOutput)
	logger := logging.NewLoggerTo(logOutput, level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	profiles, history, closeStores, err := openStores(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer closeStores()

	walletService, err := wallet.NewService(profiles, cfg.StartingBalance)
	if err != nil {
		log.Fatalf("Failed to create wallet service: %v", err)
	}

	engine := blackjack.NewEngine(nil,
		blackjack.WithRules(blackjack.Rules{
			AllowResplit:          cfg.AllowResplit,
			AllowDoubleAfterSplit: cfg.AllowDoubleAfterSplit,
		}),
		blackjack.WithDealerPause(cfg.DealerPause),
		blackjack.WithLogger(logger),
	)

	table := console.New(os.Stdin, os.Stdout)
	session := tableSession.NewSession(engine, walletService, history, table, logger)

	if err := session.Run(ctx); err != nil && ctx.Err() == nil {
		logger.LogError(err)
		closeStores()
		log.Fatalf("Session ended with error: %v", err)
	}
}

// openStores builds the profile and round history repositories for the
// configured storage type. File storage keeps the profile on disk and the
// round history for the current run only.
func openStores(ctx context.Context, cfg *config.Config, logger *logging.Logger) (walletRepo.Repository, game.Repository, func(), error) {
	var (
		profiles walletRepo.Repository
		history  game.Repository
		closers  []func() error
	)

	switch cfg.StorageType {
	case config.StorageSQLite:
		logger.Info("Opening SQLite database at %s", cfg.DatabasePath())
		conn, err := db.OpenSQLite(cfg.DatabasePath())
		if err != nil {
			return nil, nil, nil, err
		}
		profiles = walletRepo.NewSQLiteRepositoryFromDB(conn)
		history = game.NewSQLiteRepositoryFromDB(conn)
		closers = append(closers, conn.Close)

	case config.StorageFile:
		logger.Info("Using player profile at %s", cfg.ProfilePath())
		fileRepo, err := walletRepo.NewFileRepository(cfg.ProfilePath())
		if err != nil {
			return nil, nil, nil, err
		}
		profiles = fileRepo
		history = game.NewMemoryRepository()

	default:
		logger.Info("Using in-memory storage (data will be lost on exit)")
		profiles = walletRepo.NewMemoryRepository()
		history = game.NewMemoryRepository()
	}

	if cfg.ElasticsearchURL != "" {
		esRepo, err := game.NewElasticsearchRepository(ctx, history, &game.ElasticsearchConfig{
			URL:         cfg.ElasticsearchURL,
			Username:    cfg.ElasticsearchUsername,
			Password:    cfg.ElasticsearchPassword,
			IndexPrefix: cfg.ElasticsearchPrefix,
		})
		if err != nil {
			logger.Warn("Elasticsearch unavailable, rounds will not be indexed: %v", err)
		} else {
			logger.Info("Indexing rounds into %s", esRepo.GetIndexName())
			history = esRepo

			retries := scheduler.NewIndexRetryScheduler(esRepo, cfg.ElasticsearchRetry)
			retries.Start(ctx)
			closers = append(closers, func() error {
				retries.Stop(context.Background())
				return nil
			})
		}
	}

	closed := false
	closeAll := func() {
		if closed {
			return
		}
		closed = true
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Warn("Failed to close storage: %v", err)
			}
		}
	}
	return profiles, history, closeAll, nil
}
