package quota

// Log messages
const (
	LogMsgPurchaseRecorded = "Quota purchase recorded"
	LogMsgLimitExceeded    = "Purchase limit exceeded"
	LogMsgTraderReset      = "Quotas reset for trader"
	LogMsgLoaded           = "Quota ledger loaded"
	LogMsgSaved            = "Quota ledger saved"
	LogMsgSaveSkipped      = "Quota ledger unchanged, skipping save"
	LogMsgStaleReservation = "Reservation predates quota reset, units not counted"
)

// Error messages
const (
	ErrMsgLimitFmt      = "%w: %d bought, %d pending, %d requested, max %d"
	ErrMsgBadCountFmt   = "%w: count must be positive, got %d"
	ErrMsgOverCommitFmt = "%w: reservation holds %d, commit of %d"
	ErrMsgLoadFmt       = "failed to load quotas: %w"
	ErrMsgBeginTxFmt    = "failed to begin quota transaction: %w"
	ErrMsgUpsertFmt     = "failed to save quota %s/%s: %w"
	ErrMsgCommitFmt     = "failed to commit quotas: %w"
)
