package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jtrs/licence-expiration-report/internal/config"
	"github.com/jtrs/licence-expiration-report/internal/email"
	"github.com/jtrs/licence-expiration-report/internal/excel"
	"github.com/jtrs/licence-expiration-report/internal/reminder"
	"github.com/jtrs/licence-expiration-report/internal/report"
	"github.com/jtrs/licence-expiration-report/internal/repository"
	"github.com/jtrs/licence-expiration-report/pkg/database"
	"github.com/jtrs/licence-expiration-report/pkg/utils"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"
)

// One-shot runner, intended as the cron entry point: performs a single
// report pass and exits.
func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	_ = gotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	productRepo := repository.NewProductRepository(db.DB, logger)
	invoiceRepo := repository.NewInvoiceRepository(db.DB, logger)
	saleOrderRepo := repository.NewSaleOrderRepository(db.DB, logger)
	taskRepo := repository.NewReminderTaskRepository(db.DB, logger)
	paramRepo := repository.NewParamRepository(db.DB, logger)

	runner := report.NewRunner(
		paramRepo,
		report.NewBuilder(productRepo, invoiceRepo, saleOrderRepo, logger),
		excel.NewRenderer(logger),
		email.NewSender(email.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
		}, logger),
		reminder.NewRequester(taskRepo, logger),
		logger,
	)

	if err := runner.Run(); err != nil {
		logger.Error("Report run failed", zap.Error(err))
		os.Exit(1)
	}
}
