// Package app wires configuration, storage, services, and the MCP server
// into one core shared by every entrypoint.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/LucraWealth/lucra-wallet/internal/clients/assistant"
	"github.com/LucraWealth/lucra-wallet/internal/common"
	"github.com/LucraWealth/lucra-wallet/internal/interfaces"
	"github.com/LucraWealth/lucra-wallet/internal/services/dispatch"
	"github.com/LucraWealth/lucra-wallet/internal/services/ledger"
	"github.com/LucraWealth/lucra-wallet/internal/services/report"
	"github.com/LucraWealth/lucra-wallet/internal/services/rewards"
	"github.com/LucraWealth/lucra-wallet/internal/storage"
)

// App holds all initialized services, clients, and the MCP server.
type App struct {
	Config          *common.Config
	Logger          *common.Logger
	Storage         interfaces.StorageManager
	Policy          *rewards.Policy
	Ledger          interfaces.LedgerService
	Dispatcher      interfaces.Dispatcher
	ReportService   interfaces.ReportService
	AssistantClient interfaces.AssistantClient
	MCPServer       *server.MCPServer
	StartupTime     time.Time

	scheduler *scheduler
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes storage, the ledger, and every service. configPath may
// be empty, in which case LUCRA_CONFIG and then the binary directory are
// checked.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()
	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("LUCRA_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "lucra.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/lucra.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	policy, err := rewards.NewPolicy(config.Rewards)
	if err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to build rewards policy: %w", err)
	}

	ctx := context.Background()
	ledgerService, err := ledger.NewService(ctx, storageManager.SnapshotStore(), policy, logger)
	if err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to initialize ledger: %w", err)
	}

	dispatcher := dispatch.NewDispatcher(ledgerService, logger)
	reportService := report.NewService(ledgerService, policy, logger)

	var assistantClient interfaces.AssistantClient
	if config.Assistant.APIKey != "" {
		client, err := assistant.NewClient(ctx, config.Assistant.APIKey,
			assistant.WithLogger(logger),
			assistant.WithModel(config.Assistant.Model),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize assistant client")
		} else {
			assistantClient = client
		}
	} else {
		logger.Warn().Msg("Assistant API key not configured - chat assistant will be unavailable")
	}

	mcpServer := server.NewMCPServer(
		"lucra-wallet",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	a := &App{
		Config:          config,
		Logger:          logger,
		Storage:         storageManager,
		Policy:          policy,
		Ledger:          ledgerService,
		Dispatcher:      dispatcher,
		ReportService:   reportService,
		AssistantClient: assistantClient,
		MCPServer:       mcpServer,
		StartupTime:     startupStart,
	}

	a.registerTools()

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")
	return a, nil
}

// StartScheduler launches the daily overdue refresh.
func (a *App) StartScheduler() error {
	s, err := startScheduler(a.Ledger, a.Logger)
	if err != nil {
		return err
	}
	a.scheduler = s
	return nil
}

// Close releases all resources held by the App. Shutdown order: stop the
// scheduler, close storage.
func (a *App) Close() {
	if a.scheduler != nil {
		a.scheduler.stop()
		a.scheduler = nil
	}
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
