package utils

import (
	"github.com/osse101/FleaMarket_Go/internal/domain"
)

// Quality bounds. A worn-out item is still worth something.
const (
	MinQuality = 0.01
	MaxQuality = 1.0
)

// ItemQuality returns the wear multiplier of an item in [0.01, 1].
// Items without wear properties (or without a template to compare against) are pristine.
//
// Examples:
//   - Salewa with 200 of 400 hp resource left → 0.5
//   - key with 10 of 40 uses spent → 0.75
//   - PACA at 0 of 50 durability → 0.01
func ItemQuality(item *domain.ItemStack, tpl *domain.ItemTemplate) float64 {
	if item == nil || item.Upd == nil || tpl == nil {
		return MaxQuality
	}
	upd := item.Upd
	q := MaxQuality

	switch {
	case upd.MedKit != nil && tpl.MaxHpResource > 0:
		q = upd.MedKit.HpResource / tpl.MaxHpResource
	case upd.Repairable != nil:
		max := tpl.MaxDurability
		if max <= 0 {
			max = upd.Repairable.MaxDurability
		}
		if max > 0 {
			q = upd.Repairable.Durability / max
		}
	case upd.FoodDrink != nil && tpl.MaxResource > 0:
		q = upd.FoodDrink.HpPercent / tpl.MaxResource
	case upd.Key != nil && tpl.MaximumNumberOfUsage > 0:
		total := float64(tpl.MaximumNumberOfUsage)
		q = (total - float64(upd.Key.NumberOfUsages)) / total
	case upd.Resource != nil && tpl.MaxResource > 0:
		q = upd.Resource.Value / tpl.MaxResource
	}

	return Clamp(q, MinQuality, MaxQuality)
}
