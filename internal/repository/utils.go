package repository

import (
	"context"

	"github.com/osse101/FleaMarket_Go/internal/logger"
)

// LogMsgRollbackFailed is logged when a deferred rollback fails.
const LogMsgRollbackFailed = "Failed to roll back transaction"

// SafeRollback is meant to be deferred right after BeginTx. Drivers treat a
// rollback after commit as a no-op, so any error here is a real failure.
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgRollbackFailed, "error", err)
	}
}
