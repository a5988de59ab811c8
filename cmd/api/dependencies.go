package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hqtran/billscan/internal/domain/common"
	"github.com/hqtran/billscan/internal/domain/scan/analyzer"
	scanhandler "github.com/hqtran/billscan/internal/domain/scan/handler"
	"github.com/hqtran/billscan/internal/domain/scan/ocr"
	scanservice "github.com/hqtran/billscan/internal/domain/scan/service"
	"github.com/hqtran/billscan/internal/domain/transaction"
	"github.com/hqtran/billscan/pkg/config"
	"github.com/hqtran/billscan/pkg/db"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger
	Pool   *pgxpool.Pool

	Analyzer    *analyzer.Analyzer
	OCRClient   *ocr.Client
	ScanService *scanservice.Service
	TxService   *transaction.Service

	ScanHandler *scanhandler.Handler
	TxHandler   *transaction.Handler
}

// InitDependencies initializes all application dependencies
func InitDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(ctx); err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}
	if err := deps.initServices(); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}
	deps.initHandlers()

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

func (d *Dependencies) initDatabase(ctx context.Context) error {
	if err := db.RunMigrations(d.Config.Database.DSN(), d.Logger); err != nil {
		return err
	}

	pool, err := db.NewPool(ctx, d.Config.Database.DSN())
	if err != nil {
		return err
	}
	d.Pool = pool

	d.Logger.Info("database connected and migrations completed")
	return nil
}

func (d *Dependencies) initServices() error {
	currency := common.Currency(d.Config.Engine.DefaultCurrency)
	if !currency.Valid() {
		return fmt.Errorf("unsupported default currency %q", d.Config.Engine.DefaultCurrency)
	}

	d.Analyzer = analyzer.New(analyzer.Config{
		DefaultCurrency: currency,
		MinAmount:       d.Config.Engine.MinAmount,
		Now:             time.Now,
	})

	if d.Config.OCR.APIKey == "" {
		d.Logger.Warn("OCR_API_KEY is empty; scan requests will be rejected by the provider")
	}
	d.OCRClient = ocr.NewClient(d.Config.OCR.APIKey, d.Config.OCR.Endpoint, d.Logger)

	d.ScanService = scanservice.NewService(
		d.OCRClient,
		d.Analyzer,
		scanservice.Thresholds{
			Low:        d.Config.Scan.LowConfidence,
			AutoAccept: d.Config.Scan.AutoAccept,
		},
		d.Logger,
	)

	txRepo := transaction.NewPostgresRepository(d.Pool)
	d.TxService = transaction.NewService(txRepo, d.Logger)

	d.Logger.Info("services initialized")
	return nil
}

func (d *Dependencies) initHandlers() {
	d.ScanHandler = scanhandler.NewHandler(d.ScanService, d.Logger)
	d.TxHandler = transaction.NewHandler(d.TxService, d.Logger)
}

// Cleanup releases held resources.
func (d *Dependencies) Cleanup() {
	if d.Pool != nil {
		d.Pool.Close()
	}
}
