package ragfair

// Log messages
const (
	LogMsgOfferAdded          = "Offer listed"
	LogMsgDuplicateOffer      = "Ignoring duplicate or retired offer id"
	LogMsgSkippedMalformed    = "Skipping malformed offer"
	LogMsgOfferSoldOut        = "Offer sold out"
	LogMsgSoldOutNotDetached  = "Sold out offer was not on the seller profile"
	LogMsgOfferExpired        = "Offer expired"
	LogMsgDynamicArchived     = "Dynamic offer archived"
	LogMsgPlayerOfferReturned = "Player offer returned to seller"
	LogMsgProfileMissingOffer = "Seller profile does not list the expired offer, skipping reputation loss"
	LogMsgRatingAdjustFailed  = "Failed to apply reputation loss"
	LogMsgReturnedItemsLost   = "Expired offer items could not be mailed back and are lost"
	LogMsgPublishFailed       = "Failed to publish offer event"
	LogMsgSweepCompleted      = "Expired offer sweep completed"
	LogMsgPlayerOffersLoaded  = "Player offers loaded"
	LogMsgTraderOffersSwapped = "Trader offers replaced"
	LogMsgTraderListingPulled = "Trader listing pulled from market"
	LogMsgArchiveDrained      = "Expired dynamic archive drained"
	LogMsgDynamicRelisted     = "Expired dynamic offers relisted"
)

// Error messages
const (
	ErrMsgOfferFmt         = "%w: offer %s"
	ErrMsgListingFmt       = "%w: trader %s listing %s"
	ErrMsgReserveFmt       = "%w: offer %s has %d available, %d requested"
	ErrMsgBadAmountFmt     = "%w: amount must be positive, got %d"
	ErrMsgReleaseFmt       = "%w: offer %s has %d reserved, %d released"
	ErrMsgLoadPlayerFmt    = "failed to load player offers: %w"
	ErrMsgMalformedOffer   = "offer has no items"
	ErrMsgMalformedFmt     = "%w: %s (%s)"
	ErrMsgNoMailer         = "no mailer configured"
	ErrMsgUnknownSellerFmt = "%w: unknown seller kind %q"
)

// Cache bounds used when the config leaves them at zero
const (
	DefaultArchiveSize = 5000
	DefaultRetiredSize = 100000
)
