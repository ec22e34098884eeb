package pricing

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/logger"
	"github.com/osse101/FleaMarket_Go/internal/metrics"
)

// ExchangeRate returns how many roubles one unit of currency is worth, from the handbook.
func (c *Cache) ExchangeRate(ctx context.Context, currency string) decimal.Decimal {
	if currency == "" || currency == domain.CurrencyRoubles {
		return decimal.NewFromInt(1)
	}
	rate, ok := c.catalog.HandbookPrice(currency)
	if !ok || rate <= 0 {
		logger.FromContext(ctx).Warn(LogMsgNoExchangeRate, "currency", currency)
		metrics.PriceFallbacks.WithLabelValues(metrics.ReasonNoExchange).Inc()
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromFloat(rate)
}

// FromRoubles converts a rouble amount to currency, rounding half away from zero.
func (c *Cache) FromRoubles(ctx context.Context, roubles decimal.Decimal, currency string) decimal.Decimal {
	return roubles.Div(c.ExchangeRate(ctx, currency)).Round(0)
}

// ToRoubles converts an amount in currency to roubles, rounding half away from zero.
func (c *Cache) ToRoubles(ctx context.Context, m domain.Money) int {
	return int(decimal.NewFromInt(int64(m.Amount)).Mul(c.ExchangeRate(ctx, m.Currency)).Round(0).IntPart())
}

var printer = message.NewPrinter(language.English)

// FormatPrice renders an amount with digit grouping and the currency symbol, e.g. "$1,250" or "85,000 ₽".
func FormatPrice(amount int, currency string) string {
	grouped := printer.Sprintf("%d", amount)
	switch currency {
	case domain.CurrencyDollars:
		return SymbolDollars + grouped
	case domain.CurrencyEuros:
		return SymbolEuros + grouped
	case domain.CurrencyGP:
		return grouped + " " + SymbolGP
	default:
		return grouped + " " + SymbolRoubles
	}
}
