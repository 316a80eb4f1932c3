package main

import (
	"time"

	"walletctl/internal/app/port"
	"walletctl/internal/app/service"
	"walletctl/internal/infrastructure/configloader"
	"walletctl/internal/infrastructure/custody"
	"walletctl/internal/infrastructure/directory"
	"walletctl/internal/infrastructure/networkdef"
	"walletctl/internal/infrastructure/recordstore"
	"walletctl/internal/pkg/logger"
	"walletctl/internal/pkg/metrics"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const envFilePath = ".env"

// app bundles the wired components the commands operate on.
type app struct {
	cfg       *configloader.Config
	zapLogger *zap.Logger
	wallets   port.WalletService
	transfers port.TransferService
	networks  port.NetworkDefinitionProvider
}

var rootCmd = &cobra.Command{
	Use:   "walletctl",
	Short: "Operator tool for custodial blockchain wallets",
	Long: `walletctl manages custodial wallets backed by a remote custody service:
create wallets, list them, inspect balances and history, and execute asset
transfers driven to a terminal state.

Configuration comes from a .env file (NETWORK, WALLET_STORAGE_PATH, ...) and
the custody credentials JSON file. USDC transfers are gasless; new wallets on
test networks are auto-funded from the faucet.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func main() {
	rootCmd.AddCommand(createWalletCmd, listWalletsCmd, sendCmd, showBalanceCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		// Unrecognized or malformed invocations print usage and exit
		// without error.
		_ = rootCmd.Usage()
	}
}

// newApp performs startup wiring. Missing credentials or unloadable config
// are fatal here: no wallet operation can proceed safely without them.
func newApp() *app {
	created, err := configloader.EnsureEnvFile(envFilePath)
	if err != nil {
		logger.Warn("Could not create default .env template", "error", err)
	}

	cfg, err := configloader.Load(envFilePath)
	if err != nil {
		logger.Fatal("Failed to load configuration", "error", err)
	}
	logger.InitSlog(cfg.Logging.Level)

	if created {
		logger.Warn(".env file not found; a template has been created and defaults are in effect",
			"path", envFilePath,
			"network", cfg.Network,
			"walletStoragePath", cfg.WalletStoragePath)
	}

	creds, err := configloader.LoadCredentials(cfg.Custody.CredentialsFile)
	if err != nil {
		logger.Fatal("Custody API credentials are required",
			"file", cfg.Custody.CredentialsFile,
			"error", err)
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		logger.Fatal("Failed to initialize zap logger", "error", err)
	}

	appLogger := logger.NewSlogAdapter()

	networks, err := networkdef.NewNetworkDefinitionProvider(appLogger, cfg.NetworkDefinitionsFile)
	if err != nil {
		logger.Fatal("Failed to load network definitions", "error", err)
	}

	records, err := recordstore.NewFileRecordStore(cfg.WalletStoragePath, appLogger)
	if err != nil {
		logger.Fatal("Failed to initialize wallet record store", "error", err)
	}

	metrics.MustRegisterMetrics()

	custodyClient := custody.NewClient(cfg.Custody, creds, zapLogger)
	walletDirectory := directory.NewWalletDirectory(custodyClient, appLogger,
		time.Duration(cfg.Performance.WalletCacheTTLSeconds)*time.Second)

	return &app{
		cfg:       cfg,
		zapLogger: zapLogger,
		networks:  networks,
		wallets:   service.NewWalletManagementService(custodyClient, walletDirectory, records, networks, zapLogger, cfg),
		transfers: service.NewTransferLifecycleService(walletDirectory, custodyClient, records, networks, zapLogger, cfg.Transfer),
	}
}
