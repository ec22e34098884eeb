package trader

// Log messages
const (
	LogMsgTradersLoaded   = "Traders loaded"
	LogMsgTraderRestocked = "Trader restocked"
	LogMsgSoldItemsAdded  = "Sold items added to trader assort"
)

// Error messages
const (
	ErrMsgTraderFmt       = "%w: trader %s"
	ErrMsgListingFmt      = "%w: trader %s listing %s"
	ErrMsgStockFmt        = "%w: listing %s has %d, %d requested"
	ErrMsgBadCountFmt     = "%w: count must be positive, got %d"
	ErrMsgReadDirFmt      = "failed to read trader directory %s: %w"
	ErrMsgLoadTraderFmt   = "failed to load trader file %s: %w"
	ErrMsgDuplicateFmt    = "%w: duplicate trader %s"
	ErrMsgBadListingFmt   = "%w: trader %s listing %d: %s"
	ErrMsgNoItems         = "no items"
	ErrMsgNoCost          = "needs exactly one of price or barter"
	ErrMsgDuplicateListID = "duplicate listing id"
	ErrMsgNotReputation   = "not a reputation trader"
)

// TraderFileExt is the extension of trader definition files.
const TraderFileExt = ".json"

// DefaultOfferLifetime is how long a projected trader offer stays listed when the trader
// has no resupply interval of its own.
const DefaultOfferLifetime = 3600
