package trade

// ==================== Error Messages ====================

const (
	ErrMsgInvalidRequestFmt  = "%w: %v"
	ErrMsgQuantityExceedsFmt = "%w: quantity %d exceeds maximum allowed (%d)"
	ErrMsgEmptyItemID        = "%w: empty item id"
	ErrMsgTraderFmt          = "%w: trader %s"
	ErrMsgItemNotHeldFmt     = "%w: item %s not in inventory of %s"
	ErrMsgUnknownTemplateFmt = "%w: unknown template %s"
	ErrMsgPlaceChunkFmt      = "chunk %d of %d not placed: %w"
	ErrMsgCommitChunkFmt     = "commit of %d units failed: %w"
	ErrMsgChargeFmt          = "%w: %v"
	ErrMsgCreditFmt          = "%w: credit to %s: %v"
	ErrMsgRemoveItemFmt      = "failed to remove item %s: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgBuyCalled         = "Buy called"
	LogMsgBuyRejected       = "Buy rejected"
	LogMsgChunkNotPlaced    = "Stopped placing purchased stacks"
	LogMsgCommitFailed      = "Failed to commit delivered units"
	LogMsgPaymentFailed     = "Payment failed after delivery"
	LogMsgItemsBought       = "Items bought"
	LogMsgSellCalled        = "Sell called"
	LogMsgSellRejected      = "Sell rejected"
	LogMsgRemoveFailed      = "Failed to remove sold item"
	LogMsgSoldItemsSinkFail = "Failed to list sold items with reputation trader"
	LogMsgCreditFailed      = "Failed to credit payee"
	LogMsgItemsSold         = "Items sold"
	LogMsgListingNotSynced  = "Market projection of trader listing not updated"
	LogMsgPublishFailed     = "Failed to publish trade event"
)

// Metric label values
const (
	KindBuy  = "buy"
	KindSell = "sell"

	OutcomeOK      = "ok"
	OutcomePartial = "partial"
	OutcomeFailed  = "failed"
)
