package profile

// Log messages
const (
	LogMsgItemsMailed       = "Items mailed to profile"
	LogMsgPlayerOffersSaved = "Player offers saved"
	LogMsgProfileCreated    = "Profile created"
	LogMsgMarketStateLoaded = "Player offers and ratings loaded"
)

// Error messages
const (
	ErrMsgProfileFmt        = "%w: %s"
	ErrMsgOfferFmt          = "%w: profile %s offer %s"
	ErrMsgItemFmt           = "%w: profile %s item %s"
	ErrMsgUnknownTplFmt     = "%w: unknown template %s"
	ErrMsgStashFullFmt      = "%w: profile %s holds %d of %d root stacks"
	ErrMsgDuplicateItemFmt  = "%w: item id %s already in profile %s"
	ErrMsgBadAssembly       = "assembly has no root"
	ErrMsgShortFundsFmt     = "%w: profile %s has %d of %d %s"
	ErrMsgBadAmountFmt      = "%w: amount must be positive, got %d"
	ErrMsgSavePlayerOffers  = "failed to save player offers: %w"
	ErrMsgSaveRatings       = "failed to save seller ratings: %w"
	ErrMsgBeginTx           = "failed to begin transaction: %w"
	ErrMsgCommitTx          = "failed to commit transaction: %w"
	ErrMsgEmptyMail         = "nothing to mail"
)

// DefaultMaxRootStacks caps how many top-level stacks a profile inventory holds.
const DefaultMaxRootStacks = 200
