package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Trade Metrics
var (
	TradesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTradesTotal,
			Help: HelpTextTradesTotal,
		},
		[]string{LabelKind, LabelOutcome},
	)

	TradeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameTradeDuration,
			Help:    HelpTextTradeDuration,
			Buckets: TradeLatencyBuckets,
		},
		[]string{LabelKind},
	)

	UnitsBought = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUnitsBought,
			Help: HelpTextUnitsBought,
		},
		[]string{LabelSellerKind},
	)

	ItemsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsSold,
			Help: HelpTextItemsSold,
		},
		[]string{LabelTrader},
	)

	StacksDelivered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStacksDelivered,
			Help: HelpTextStacksDelivered,
		},
	)

	PartialDeliveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePartialDeliveries,
			Help: HelpTextPartialDeliveries,
		},
	)

	PurchaseLimitRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePurchaseLimitRejections,
			Help: HelpTextPurchaseLimitRejections,
		},
	)

	PaymentFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePaymentFailures,
			Help: HelpTextPaymentFailures,
		},
	)

	MoneySpent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMoneySpent,
			Help: HelpTextMoneySpent,
		},
		[]string{LabelCurrency},
	)

	MoneyEarned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMoneyEarned,
			Help: HelpTextMoneyEarned,
		},
		[]string{LabelCurrency},
	)
)

// Offer and price Metrics
var (
	OffersExpired = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOffersExpired,
			Help: HelpTextOffersExpired,
		},
		[]string{LabelSellerKind},
	)

	OffersReturned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameOffersReturned,
			Help: HelpTextOffersReturned,
		},
	)

	ReturnedUnitsLost = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameReturnedUnitsLost,
			Help: HelpTextReturnedUnitsLost,
		},
	)

	OffersActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameOffersActive,
			Help: HelpTextOffersActive,
		},
	)

	PriceFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePriceFallbacks,
			Help: HelpTextPriceFallbacks,
		},
		[]string{LabelReason},
	)

	PriceRefreshes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePriceRefreshes,
			Help: HelpTextPriceRefreshes,
		},
	)

	TraderResupplies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTraderResupplies,
			Help: HelpTextTraderResupplies,
		},
		[]string{LabelTrader},
	)
)
