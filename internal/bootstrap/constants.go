package bootstrap

import "time"

const (
	DirPermission     = 0o755
	LogFilePermission = 0o644
)

// Log files
const (
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"
	// LogFileRetentionCount is how many session logs survive a startup cleanup,
	// counting the new one
	LogFileRetentionCount = 10
)

// Event system
const (
	EventDefaultMaxRetries = 5
	EventDefaultRetryDelay = 2 * time.Second
)

// Background work
const (
	WorkerQueueSize  = 64
	WorkerJobTimeout = 2 * time.Minute
	// MaxInventoryRoots caps root stacks per profile in the default inventory
	MaxInventoryRoots = 200
)

// Log messages
const (
	LogMsgLoggingInitialized     = "Logging initialized"
	LogMsgStarting               = "Starting flea market"
	LogMsgConfigurationLoaded    = "Configuration loaded"
	LogMsgFailedDeleteOldLog     = "Failed to delete old log file"
	LogMsgEventSystemInitialized = "Event system initialized"
	LogMsgMetricsCollector       = "Metrics collector registered"
	LogMsgEventObserved          = "Event observed"
	LogMsgDatabaseSelected       = "Database driver selected"
	LogMsgCatalogLoaded          = "Catalog loaded"
	LogMsgTradersLoaded          = "Traders loaded"
	LogMsgPlayerOffersRestored   = "Player offers restored"
	LogMsgMarketReady            = "Market ready"
	LogMsgBackgroundStarted      = "Background jobs started"
	LogMsgFinalSaveFailed        = "Final save failed"

	LogMsgShuttingDown            = "Shutting down..."
	LogMsgShuttingDownPublisher   = "Shutting down event publisher..."
	LogMsgStopped                 = "Stopped"
	LogMsgServerForcedShutdown    = "Server forced to shutdown"
	LogMsgWorkerShutdownFailed    = "Resupply worker shutdown failed"
	LogMsgPublisherShutdownFailed = "Resilient publisher shutdown failed"
	LogMsgDeadLetterCloseFailed   = "Dead-letter file close failed"
	LogMsgDatabaseCloseFailed     = "Database close failed"
)

// Error messages
const (
	ErrMsgCreateLogsDirFmt    = "failed to create logs directory: %w"
	ErrMsgOpenLogFileFmt      = "failed to open log file: %w"
	ErrMsgCreateDeadLetterFmt = "failed to create dead-letter writer: %w"
	ErrMsgConnectPostgresFmt  = "failed to connect to postgres: %w"
	ErrMsgMigratePostgresFmt  = "failed to migrate postgres: %w"
	ErrMsgOpenSQLiteFmt       = "failed to open sqlite: %w"
	ErrMsgLoadEconomyFmt      = "failed to load economy config: %w"
	ErrMsgLoadCatalogFmt      = "failed to load catalog: %w"
	ErrMsgLoadTradersFmt      = "failed to load traders: %w"
	ErrMsgBuildPricesFmt      = "failed to build price cache: %w"
	ErrMsgLoadQuotasFmt       = "failed to load quota ledger: %w"
	ErrMsgLoadPlayerOffersFmt = "failed to restore player offers: %w"
	ErrMsgStartResupplyFmt    = "failed to start resupply worker: %w"
)
