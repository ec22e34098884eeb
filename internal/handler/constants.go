package handler

// Client-facing error messages. They never carry internal error text.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidQuery          = "Invalid query parameters"
	ErrMsgMissingPathParam      = "Missing %s path parameter"

	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgOfferNotFound      = "Offer not found"
	ErrMsgTraderNotFound     = "Trader not found"
	ErrMsgPriceNotFound      = "No price known for template"
	ErrMsgNotFound           = "Resource not found"
	ErrMsgInvalidInput       = "Invalid request. Please check your inputs."
)

// Health responses
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"

	MsgDatabaseUnavailable = "database connection failed"
	MsgPricesNotReady      = "price cache not built"
)

// Log messages
const (
	LogMsgDecodeFailed     = "Failed to decode request"
	LogMsgRequestDecoded   = "Request decoded"
	LogMsgValidationFailed = "Request failed validation"
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response buffer"
	LogMsgReadinessFailed  = "Readiness check failed"
	LogMsgServiceError     = "Service call failed"
	LogMsgPriceQuoted      = "Price quoted"
	LogMsgOffersListed     = "Offers listed"
)

// Query limits
const (
	DefaultOfferLimit = 50
	ReadinessTimeout  = 2 // seconds
)
