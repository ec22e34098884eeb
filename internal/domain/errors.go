package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Lookup errors
	ErrMsgNotFound        = "not found"
	ErrMsgProfileNotFound = "profile not found"
	ErrMsgOfferNotFound   = "offer not found"

	// Stock and quota errors
	ErrMsgOutOfStock            = "out of stock"
	ErrMsgPurchaseLimitExceeded = "purchase limit exceeded"

	// Placement errors
	ErrMsgNoSpace          = "no space in inventory"
	ErrMsgNoContainers     = "no eligible container"
	ErrMsgIncompatibleItem = "incompatible item"

	// Payment errors
	ErrMsgPaymentFailure    = "payment failed"
	ErrMsgInsufficientFunds = "insufficient funds"

	// Lifecycle errors
	ErrMsgOfferNotExpired = "offer has not expired"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrNotFound        = errors.New(ErrMsgNotFound)
	ErrProfileNotFound = errors.New(ErrMsgProfileNotFound)
	ErrOfferNotFound   = errors.New(ErrMsgOfferNotFound)

	ErrOutOfStock            = errors.New(ErrMsgOutOfStock)
	ErrPurchaseLimitExceeded = errors.New(ErrMsgPurchaseLimitExceeded)

	ErrNoSpace          = errors.New(ErrMsgNoSpace)
	ErrNoContainers     = errors.New(ErrMsgNoContainers)
	ErrIncompatibleItem = errors.New(ErrMsgIncompatibleItem)

	ErrPaymentFailure    = errors.New(ErrMsgPaymentFailure)
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	ErrOfferNotExpired = errors.New(ErrMsgOfferNotExpired)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// WarningCode classifies a trade failure in the annotated response.
type WarningCode string

const (
	WarningNotFound              WarningCode = "NotFound"
	WarningOutOfStock            WarningCode = "OutOfStock"
	WarningPurchaseLimitExceeded WarningCode = "PurchaseLimitExceeded"
	WarningNoSpace               WarningCode = "NoSpace"
	WarningNoContainers          WarningCode = "NoContainers"
	WarningIncompatibleItem      WarningCode = "IncompatibleItem"
	WarningPaymentFailure        WarningCode = "PaymentFailure"
	WarningInvalidInput          WarningCode = "InvalidInput"
	WarningUnknown               WarningCode = "Unknown"
)

// WarningCodeFor maps an error to the warning code shown to the caller.
func WarningCodeFor(err error) WarningCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrOfferNotFound), errors.Is(err, ErrProfileNotFound):
		return WarningNotFound
	case errors.Is(err, ErrOutOfStock):
		return WarningOutOfStock
	case errors.Is(err, ErrPurchaseLimitExceeded):
		return WarningPurchaseLimitExceeded
	case errors.Is(err, ErrNoSpace):
		return WarningNoSpace
	case errors.Is(err, ErrNoContainers):
		return WarningNoContainers
	case errors.Is(err, ErrIncompatibleItem):
		return WarningIncompatibleItem
	case errors.Is(err, ErrPaymentFailure), errors.Is(err, ErrInsufficientFunds):
		return WarningPaymentFailure
	case errors.Is(err, ErrInvalidInput):
		return WarningInvalidInput
	default:
		return WarningUnknown
	}
}
