package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/osse101/FleaMarket_Go/internal/config"
	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/utils"
)

// OfferPrice returns the randomised asking price, in currency, for one unit of an assembly.
// items[0] is the root. The result is never below 1.
func (c *Cache) OfferPrice(ctx context.Context, items []domain.ItemStack, currency string, isPackOffer bool) int {
	if len(items) == 0 {
		return 1
	}

	isPreset := c.isWeaponPreset(items)
	roubles := decimal.Zero

	// 1. Accumulate per-item rouble prices
	for i := range items {
		item := &items[i]
		price := c.guardedPrice(ctx, item.TemplateID)

		// 2. A preset root prices the whole assembly
		if i == 0 && isPreset {
			price = c.PresetPrice(ctx, *item, items, price)
			roubles = roubles.Add(c.weighted(price, item))
			break
		}

		roubles = roubles.Add(c.weighted(price, item))
	}

	// 3. Convert to the requested currency
	amount := c.FromRoubles(ctx, roubles, currency)

	// 4. Randomise within the range for this kind of offer
	r := c.priceRange(isPreset, isPackOffer)
	multiplier := utils.BiasedRandom(r.Min, r.Max, c.cfg.BiasExponent, c.rnd)
	final := int(amount.Mul(decimal.NewFromFloat(multiplier)).Round(0).IntPart())

	if final < 1 {
		return 1
	}
	return final
}

// guardedPrice is the resolved price lifted by the anti-underprice and anti-undercut guards.
func (c *Cache) guardedPrice(ctx context.Context, tpl string) int {
	price := c.ResolvedPrice(ctx, tpl)

	adj := c.cfg.OfferAdjustment
	if adj.AdjustPriceWhenBelowHandbookPrice {
		if handbook, ok := c.catalog.HandbookPrice(tpl); ok && handbook > float64(adj.PriceThresholdRub) {
			floor := handbook * (100 - adj.MaxPriceDifferenceBelowHandbookPercent) / 100
			if float64(price) < floor {
				price = int(decimal.NewFromFloat(handbook * adj.HandbookPriceMultiplier).Round(0).IntPart())
			}
		}
	}

	if c.cfg.UseTraderPriceForOffersIfHigher {
		if tb := c.HighestTraderBuyPrice(tpl); tb > price {
			price = tb
		}
	}
	return price
}

func (c *Cache) weighted(price int, item *domain.ItemStack) decimal.Decimal {
	tpl, _ := c.catalog.Template(item.TemplateID)
	q := utils.ItemQuality(item, tpl)
	return decimal.NewFromInt(int64(price)).Mul(decimal.NewFromFloat(q))
}

// QualityModifier returns the wear multiplier of an item.
func (c *Cache) QualityModifier(item domain.ItemStack) float64 {
	tpl, _ := c.catalog.Template(item.TemplateID)
	return utils.ItemQuality(&item, tpl)
}

func (c *Cache) isWeaponPreset(items []domain.ItemStack) bool {
	if len(items) < 2 {
		return false
	}
	tpl, ok := c.catalog.Template(items[0].TemplateID)
	if !ok || !tpl.IsWeapon {
		return false
	}
	return len(c.catalog.PresetsForWeapon(tpl.ID)) > 0
}

func (c *Cache) priceRange(isPreset, isPack bool) config.PriceRange {
	switch {
	case isPack:
		return c.cfg.Ranges.Pack
	case isPreset:
		return c.cfg.Ranges.Preset
	default:
		return c.cfg.Ranges.Default
	}
}
