package pricing

import (
	"math"
)

// HighestTraderBuyPrice is the most any trader would pay for one unit of tpl, 0 when no
// trader buys it. Results are memoised until the next Refresh or Rebuild.
func (c *Cache) HighestTraderBuyPrice(tpl string) int {
	if v, ok := c.traderBuy.Get(tpl); ok {
		return v
	}

	best := 0
	handbook, ok := c.catalog.HandbookPrice(tpl)
	if ok && c.traders != nil {
		for _, profile := range c.traders.BuyProfiles() {
			if !c.buys(profile.Categories, tpl) {
				continue
			}
			price := int(math.Round(handbook * (100 - profile.BuyPriceCoef) / 100))
			if price > best {
				best = price
			}
		}
	}

	c.traderBuy.Add(tpl, best)
	return best
}

func (c *Cache) buys(categories []string, tpl string) bool {
	for _, cat := range categories {
		if c.catalog.IsOfBaseClass(tpl, cat) {
			return true
		}
	}
	return false
}

// valuation is what a mod is worth to the seller: the better of its static price and
// what a trader would pay for it.
func (c *Cache) valuation(tpl string) int {
	static, _ := c.StaticPrice(tpl)
	if tb := c.HighestTraderBuyPrice(tpl); tb > static {
		return tb
	}
	return static
}
