package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Market metric names
const (
	MetricNameTradesTotal             = "market_trades_total"
	MetricNameTradeDuration           = "market_trade_duration_seconds"
	MetricNameUnitsBought             = "market_units_bought_total"
	MetricNameItemsSold               = "market_items_sold_total"
	MetricNameStacksDelivered         = "market_stacks_delivered_total"
	MetricNamePartialDeliveries       = "market_partial_deliveries_total"
	MetricNamePurchaseLimitRejections = "market_purchase_limit_rejections_total"
	MetricNamePaymentFailures         = "market_payment_failures_total"
	MetricNameMoneySpent              = "market_money_spent_total"
	MetricNameMoneyEarned             = "market_money_earned_total"
	MetricNameOffersExpired           = "market_offers_expired_total"
	MetricNameOffersReturned          = "market_offers_returned_total"
	MetricNameReturnedUnitsLost       = "market_returned_units_lost_total"
	MetricNameOffersActive            = "market_offers_active"
	MetricNamePriceFallbacks          = "price_fallbacks_total"
	MetricNamePriceRefreshes          = "price_refreshes_total"
	MetricNameTraderResupplies        = "trader_resupplies_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Market metric help text
const (
	HelpTextTradesTotal             = "Total number of buy and sell calls by outcome"
	HelpTextTradeDuration           = "Buy and sell call latency in seconds"
	HelpTextUnitsBought             = "Total number of units delivered to buyers"
	HelpTextItemsSold               = "Total number of item assemblies sold to traders"
	HelpTextStacksDelivered         = "Total number of stacks placed into buyer inventories"
	HelpTextPartialDeliveries       = "Total number of buys that delivered fewer units than requested"
	HelpTextPurchaseLimitRejections = "Total number of buys rejected by a purchase limit"
	HelpTextPaymentFailures         = "Total number of buys whose payment step failed after delivery"
	HelpTextMoneySpent              = "Total money charged to buyers"
	HelpTextMoneyEarned             = "Total money credited to sellers"
	HelpTextOffersExpired           = "Total number of offers removed by expiry"
	HelpTextOffersReturned          = "Total number of unsold player offers returned to their seller"
	HelpTextReturnedUnitsLost       = "Total number of expired player offer units that could not be mailed back"
	HelpTextOffersActive            = "Current number of offers in the registry"
	HelpTextPriceFallbacks          = "Total number of price lookups that fell back to a default"
	HelpTextPriceRefreshes          = "Total number of dynamic price snapshot swaps"
	HelpTextTraderResupplies        = "Total number of trader resupply cycles"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelType       = "type"
	LabelKind       = "kind"
	LabelOutcome    = "outcome"
	LabelSellerKind = "seller_kind"
	LabelCurrency   = "currency"
	LabelReason     = "reason"
	LabelTrader     = "trader"
)

// Label values
const (
	KindBuy  = "buy"
	KindSell = "sell"

	OutcomeOK      = "ok"
	OutcomePartial = "partial"
	OutcomeFailed  = "failed"

	ReasonNoPrice    = "no_price"
	ReasonNoPreset   = "no_default_preset"
	ReasonNoHandbook = "no_handbook"
	ReasonNoExchange = "no_exchange_rate"
)

// Histogram buckets
var (
	HTTPLatencyBuckets  = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
	TradeLatencyBuckets = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5}
)

// Log messages
const (
	LogMsgMetricsRecorded     = "Metrics recorded for event"
	LogMsgEventPayloadUnknown = "Event payload has unexpected type"
)
