package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
	LogMsgJobDropped        = "Job queue full, dropping job"
)

// ============================================================================
// Log Messages - Market Jobs
// ============================================================================

const (
	LogMsgPriceRefreshFailed = "Dynamic price refresh failed"
	LogMsgSaveFailed         = "Market state save failed"
	LogMsgSaveCompleted      = "Market state saved"
	LogMsgPublishFailed      = "Failed to publish worker event"
)

// ============================================================================
// Log Messages - Resupply Worker
// ============================================================================

const (
	LogMsgResupplyScheduled = "Trader resupply scheduled"
	LogMsgResupplyStarting  = "Trader resupply starting"
	LogMsgResupplyCompleted = "Trader resupply completed"
	LogMsgResupplyFailed    = "Trader resupply failed"
	LogMsgShuttingDown      = "Shutting down resupply worker"
	LogMsgShutdownComplete  = "Resupply worker shutdown complete"
	LogMsgShutdownTimeout   = "Resupply worker shutdown timeout, some resupplies may still be running"
	LogMsgCancelledResupply = "Cancelled pending resupply"
)

// Error messages
const (
	ErrMsgSaveQuotasFmt = "save quotas: %w"
	ErrMsgSaveOffersFmt = "save player offers: %w"
	ErrMsgRestockFmt    = "restock trader %s: %w"
	ErrMsgTraderOffers  = "build offers for trader %s: %w"
)

// Job names, used in logs
const (
	JobNameSweep        = "expiry_sweep"
	JobNamePriceRefresh = "price_refresh"
	JobNameDrain        = "expired_dynamic_drain"
	JobNameSave         = "save"
)
