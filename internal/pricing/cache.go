package pricing

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/FleaMarket_Go/internal/catalog"
	"github.com/osse101/FleaMarket_Go/internal/config"
	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/logger"
	"github.com/osse101/FleaMarket_Go/internal/metrics"
	"github.com/osse101/FleaMarket_Go/internal/utils"
)

// TraderBuyProfiles exposes what each trader buys.
type TraderBuyProfiles interface {
	BuyProfiles() []domain.BuyProfile
}

// snapshot is never mutated after it is published
type snapshot struct {
	static  map[string]int
	dynamic map[string]int
	builtAt time.Time
}

// Cache answers price questions for templates and offer assemblies.
//
// Build must run once before the cache is used. Refresh swaps in a new dynamic price set
// atomically; readers always see either the old or the new snapshot, never a mix.
type Cache struct {
	catalog catalog.Catalog
	traders TraderBuyProfiles
	cfg     config.PricingConfig

	snap      atomic.Pointer[snapshot]
	writeMu   sync.Mutex
	traderBuy *expirable.LRU[string, int]

	rnd func() float64
	now func() time.Time
}

// NewCache creates an empty cache. Call Build before use.
func NewCache(cat catalog.Catalog, traders TraderBuyProfiles, cfg config.PricingConfig) *Cache {
	size := cfg.TraderBuyPriceCacheSize
	if size <= 0 {
		size = 1024
	}
	return &Cache{
		catalog:   cat,
		traders:   traders,
		cfg:       cfg,
		traderBuy: expirable.NewLRU[string, int](size, nil, cfg.TraderBuyPriceCacheTTL()),
		rnd:       utils.RandomFloat,
		now:       time.Now,
	}
}

// Ready reports whether Build has completed.
func (c *Cache) Ready() bool {
	return c.snap.Load() != nil
}

// Build computes static prices from handbook prices. Calling it again is a no-op;
// use Rebuild to recompute.
func (c *Cache) Build(ctx context.Context) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.snap.Load() != nil {
		return nil
	}
	return c.buildLocked(ctx, nil)
}

// Rebuild recomputes static prices, keeping the current dynamic set.
func (c *Cache) Rebuild(ctx context.Context) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	var dynamic map[string]int
	if s := c.snap.Load(); s != nil {
		dynamic = s.dynamic
	}
	return c.buildLocked(ctx, dynamic)
}

func (c *Cache) buildLocked(ctx context.Context, dynamic map[string]int) error {
	templates := c.catalog.Templates()
	static := make(map[string]int, len(templates))
	for i := range templates {
		t := &templates[i]
		if !t.IsConcrete() || t.HandbookPrice <= 0 {
			continue
		}
		static[t.ID] = int(math.Round(t.HandbookPrice))
	}
	if len(static) == 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgNoTemplates)
	}
	if dynamic == nil {
		dynamic = map[string]int{}
	}

	c.snap.Store(&snapshot{static: static, dynamic: dynamic, builtAt: c.now()})
	c.traderBuy.Purge()

	logger.FromContext(ctx).Info(LogMsgCacheBuilt, "static_prices", len(static), "dynamic_prices", len(dynamic))
	return nil
}

// Refresh replaces the dynamic price set. Non-positive prices are dropped.
// Returns the number of dynamic prices now in effect.
func (c *Cache) Refresh(ctx context.Context, dynamic map[string]int) int {
	log := logger.FromContext(ctx)

	next := make(map[string]int, len(dynamic))
	for tpl, price := range dynamic {
		if price < 1 {
			log.Warn(LogMsgDroppedDynamicPrice, "tpl", tpl, "price", price)
			continue
		}
		next[tpl] = price
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	static := map[string]int{}
	if s := c.snap.Load(); s != nil {
		static = s.static
	} else {
		log.Warn(LogMsgNotReady)
	}
	c.snap.Store(&snapshot{static: static, dynamic: next, builtAt: c.now()})
	c.traderBuy.Purge()

	log.Info(LogMsgCacheRefreshed, "dynamic_prices", len(next))
	return len(next)
}

func (c *Cache) current() *snapshot {
	if s := c.snap.Load(); s != nil {
		return s
	}
	return &snapshot{}
}

// StaticPrice returns the rounded handbook price computed at Build time.
func (c *Cache) StaticPrice(tpl string) (int, bool) {
	p, ok := c.current().static[tpl]
	return p, ok
}

// DynamicPrice returns the latest market-observed price.
func (c *Cache) DynamicPrice(tpl string) (int, bool) {
	p, ok := c.current().dynamic[tpl]
	return p, ok
}

// ResolvedPrice is the dynamic price, else the static price, else 1. Never below 1.
func (c *Cache) ResolvedPrice(ctx context.Context, tpl string) int {
	s := c.current()
	if p, ok := s.dynamic[tpl]; ok && p >= 1 {
		return p
	}
	if p, ok := s.static[tpl]; ok && p >= 1 {
		return p
	}
	logger.FromContext(ctx).Warn(LogMsgNoPrice, "tpl", tpl)
	metrics.PriceFallbacks.WithLabelValues(metrics.ReasonNoPrice).Inc()
	return 1
}

// Entry returns everything the cache knows about a template.
func (c *Cache) Entry(tpl string) domain.PriceEntry {
	e := domain.PriceEntry{TemplateID: tpl}
	if p, ok := c.StaticPrice(tpl); ok {
		e.StaticPrice = domain.IntPtr(p)
	}
	if p, ok := c.DynamicPrice(tpl); ok {
		e.DynamicPrice = domain.IntPtr(p)
	}
	return e
}

// Counts returns the sizes of the static and dynamic price sets.
func (c *Cache) Counts() (static, dynamic int) {
	s := c.current()
	return len(s.static), len(s.dynamic)
}
