package pricing

// Log messages
const (
	LogMsgCacheBuilt          = "Price cache built"
	LogMsgCacheRefreshed      = "Dynamic prices refreshed"
	LogMsgNoPrice             = "No dynamic or static price for template, using 1"
	LogMsgNoDefaultPreset     = "Weapon has no default preset, using first preset"
	LogMsgNoPresets           = "Weapon has no presets, keeping base price"
	LogMsgNoExchangeRate      = "No handbook exchange rate for currency, pricing in roubles"
	LogMsgDroppedDynamicPrice = "Dropping non-positive dynamic price"
	LogMsgNotReady            = "Price cache used before Build"
)

// Error messages
const (
	ErrMsgFeedFetchFmt = "failed to fetch price feed: %w"
	ErrMsgNoTemplates  = "catalog has no concrete templates"
)

// Currency display symbols
const (
	SymbolRoubles = "₽"
	SymbolDollars = "$"
	SymbolEuros   = "€"
	SymbolGP      = "GP"
)

// hundredths is the precision of the random price multiplier
const hundredths = 100
