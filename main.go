package main

import (
	"context"
	"log" // Use standard log only for initial fatal errors before logger is set up
	"os"
	"os/signal"
	"syscall"

	"ibTradeDesk/config"
	"ibTradeDesk/internal/adapters/csvledger"
	"ibTradeDesk/internal/adapters/ibgateway"
	"ibTradeDesk/internal/adapters/logger"
	"ibTradeDesk/internal/adapters/sqlite"
	"ibTradeDesk/internal/app"
	"ibTradeDesk/internal/cli"
	"ibTradeDesk/internal/contract"
	"ibTradeDesk/internal/history"
	"ibTradeDesk/internal/orders"
	"ibTradeDesk/internal/ports"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}

	// 2. Initialize Logger
	appLogger := logger.NewStdLogger(cfg.LogLevel)
	ctx := context.Background()

	// 3. Initialize Trade Ledger
	var ledger ports.TradeLedger
	switch cfg.LedgerBackend {
	case config.LedgerBackendCSV:
		csvLedger, err := csvledger.NewLedger(cfg.CSVPath, appLogger)
		if err != nil {
			appLogger.Error(ctx, err, "FATAL: Failed to initialize CSV ledger")
			log.Fatalf("FATAL: Failed to initialize CSV ledger: %v", err)
		}
		ledger = csvLedger
	default:
		sqliteLedger, err := sqlite.NewLedger(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
		if err != nil {
			appLogger.Error(ctx, err, "FATAL: Failed to initialize SQLite ledger")
			log.Fatalf("FATAL: Failed to initialize SQLite ledger: %v", err)
		}
		defer func() {
			if err := sqliteLedger.Close(); err != nil {
				appLogger.Error(ctx, err, "Error closing SQLite ledger")
			}
		}()
		ledger = sqliteLedger
	}

	// 4. Initialize Brokerage Gateway Client
	gateway, err := ibgateway.New(ibgateway.Config{
		BaseURL: cfg.GatewayBaseURL,
		Timeout: cfg.GatewayTimeout,
		Logger:  appLogger,
	})
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize gateway client")
		log.Fatalf("FATAL: Failed to initialize gateway client: %v", err)
	}

	// 5. Initialize Workflow Components
	resolver, err := contract.NewResolver(gateway, appLogger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize contract resolver: %v", err)
	}
	builder, err := history.NewBuilder(resolver, gateway, appLogger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize history builder: %v", err)
	}
	submitter, err := orders.NewSubmitter(resolver, gateway, ledger, appLogger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize order submitter: %v", err)
	}
	service, err := app.NewService(builder, submitter, ledger, appLogger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize application service: %v", err)
	}

	// 6. Run the command; Ctrl-C aborts in-flight gateway calls through the
	// context without partial ledger writes.
	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.NewRoot(service, cfg)
	if err := root.ExecuteContext(runCtx); err != nil {
		appLogger.Error(runCtx, err, "Command failed")
		os.Exit(1)
	}
}
