package pricing

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osse101/FleaMarket_Go/internal/catalog"
	"github.com/osse101/FleaMarket_Go/internal/config"
	"github.com/osse101/FleaMarket_Go/internal/domain"
)

const (
	tplPistol  = "pistol"
	tplGrip    = "grip"
	tplGripTac = "grip-tac"
	tplMag     = "mag"
	tplScope   = "scope"
	tplBolts   = "bolts"
	tplGPU     = "gpu"
	tplMedkit  = "medkit"
	tplNoPrice = "mystery"
)

type fakeTraders struct {
	profiles []domain.BuyProfile
	calls    atomic.Int32
}

func (f *fakeTraders) BuyProfiles() []domain.BuyProfile {
	f.calls.Add(1)
	return f.profiles
}

func testTemplates() []domain.ItemTemplate {
	item := func(id, parent string, handbook float64) domain.ItemTemplate {
		return domain.ItemTemplate{ID: id, Name: id, ParentID: parent, Kind: domain.TemplateKindItem, HandbookPrice: handbook, StackMaxSize: 1}
	}
	node := func(id, parent string) domain.ItemTemplate {
		return domain.ItemTemplate{ID: id, Name: id, ParentID: parent, Kind: domain.TemplateKindNode}
	}

	pistol := item(tplPistol, "node-weapon", 6000)
	pistol.IsWeapon = true
	pistol.MaxDurability = 100
	med := item(tplMedkit, "node-meds", 9000)
	med.MaxHpResource = 400
	rub := item(domain.CurrencyRoubles, "node-money", 1)
	rub.StackMaxSize = 500000

	return []domain.ItemTemplate{
		node("node-item", ""),
		node("node-weapon", "node-item"),
		node("node-mod", "node-item"),
		node("node-barter", "node-item"),
		node("node-meds", "node-item"),
		node("node-money", "node-item"),
		rub,
		item(domain.CurrencyDollars, "node-money", 143),
		pistol,
		item(tplGrip, "node-mod", 1200),
		item(tplGripTac, "node-mod", 3400),
		item(tplMag, "node-mod", 900),
		item(tplScope, "node-mod", 5000),
		item(tplBolts, "node-barter", 12000),
		item(tplGPU, "node-barter", 100000),
		item(tplNoPrice, "node-barter", 0),
		med,
	}
}

func defaultPreset() domain.Preset {
	return domain.Preset{
		ID:           "pistol-default",
		Encyclopedia: tplPistol,
		Items: []domain.ItemStack{
			{ID: "p0", TemplateID: tplPistol},
			{ID: "p1", TemplateID: tplGrip, ParentID: "p0", SlotID: "mod_pistol_grip"},
			{ID: "p2", TemplateID: tplMag, ParentID: "p0", SlotID: "mod_magazine"},
		},
	}
}

// flatConfig disables guards and randomisation so prices are predictable
func flatConfig() config.PricingConfig {
	one := config.PriceRange{Min: 1, Max: 1}
	return config.PricingConfig{
		Ranges:                  config.PriceRanges{Default: one, Preset: one, Pack: one},
		BiasExponent:            2,
		TraderBuyPriceCacheSize: 64,
		OfferAdjustment: config.OfferAdjustment{
			MaxPriceDifferenceBelowHandbookPercent: 64,
			HandbookPriceMultiplier:                1.1,
			PriceThresholdRub:                      20000,
		},
		TraderBuyPriceCacheTTLSeconds: 600,
	}
}

func newTestCache(t testing.TB, cfg config.PricingConfig, traders *fakeTraders, presets ...domain.Preset) *Cache {
	t.Helper()
	if presets == nil {
		presets = []domain.Preset{defaultPreset()}
	}
	store, err := catalog.NewStore(testTemplates(), presets)
	require.NoError(t, err)
	if traders == nil {
		traders = &fakeTraders{}
	}
	c := NewCache(store, traders, cfg)
	require.NoError(t, c.Build(context.Background()))
	return c
}

// assembly builds a pistol with the given mods attached directly to the root
func assembly(mods ...[2]string) []domain.ItemStack {
	items := []domain.ItemStack{{ID: "w0", TemplateID: tplPistol}}
	for i, m := range mods {
		items = append(items, domain.ItemStack{
			ID:         "w" + string(rune('1'+i)),
			TemplateID: m[0],
			ParentID:   "w0",
			SlotID:     m[1],
		})
	}
	return items
}
