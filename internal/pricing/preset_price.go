package pricing

import (
	"context"

	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/logger"
	"github.com/osse101/FleaMarket_Go/internal/metrics"
)

// modSlot identifies where a mod sits: its parent's template and the slot name.
// Item ids differ between a preset and a real assembly, templates do not.
type modSlot struct {
	parentTpl string
	slot      string
}

// PresetPrice prices a modded weapon relative to its default preset. An assembly identical
// to the default costs the same as the bare weapon; otherwise every added or swapped mod is
// added to basePrice and every default mod it displaced is subtracted. Never negative.
func (c *Cache) PresetPrice(ctx context.Context, weaponRoot domain.ItemStack, assembly []domain.ItemStack, basePrice int) int {
	log := logger.FromContext(ctx)

	presets := c.catalog.PresetsForWeapon(weaponRoot.TemplateID)
	if len(presets) == 0 {
		log.Warn(LogMsgNoPresets, "tpl", weaponRoot.TemplateID)
		metrics.PriceFallbacks.WithLabelValues(metrics.ReasonNoPreset).Inc()
		return basePrice
	}

	def := &presets[0]
	found := false
	for i := range presets {
		if presets[i].IsDefault() {
			def = &presets[i]
			found = true
			break
		}
	}
	if !found {
		log.Warn(LogMsgNoDefaultPreset, "tpl", weaponRoot.TemplateID, "preset", def.ID)
		metrics.PriceFallbacks.WithLabelValues(metrics.ReasonNoPreset).Inc()
	}

	defaultMods := modsBySlot(def.Items)
	actualMods := modsBySlot(domain.FindWithChildren(assembly, weaponRoot.ID))

	if sameMods(defaultMods, actualMods) {
		return c.ResolvedPrice(ctx, weaponRoot.TemplateID)
	}

	price := basePrice
	for at, tpl := range actualMods {
		defTpl, hadDefault := defaultMods[at]
		if hadDefault && defTpl == tpl {
			continue
		}
		price += c.valuation(tpl)
		if hadDefault {
			price -= c.valuation(defTpl)
		}
	}

	if price < 0 {
		return 0
	}
	return price
}

// modsBySlot maps every non-root item of an assembly to its template, keyed by position.
// items[0] must be the root.
func modsBySlot(items []domain.ItemStack) map[modSlot]string {
	tplByID := make(map[string]string, len(items))
	for _, it := range items {
		tplByID[it.ID] = it.TemplateID
	}

	out := make(map[modSlot]string, len(items))
	for i, it := range items {
		if i == 0 {
			continue
		}
		out[modSlot{parentTpl: tplByID[it.ParentID], slot: it.SlotID}] = it.TemplateID
	}
	return out
}

func sameMods(a, b map[modSlot]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
