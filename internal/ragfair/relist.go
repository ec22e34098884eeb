package ragfair

import (
	"context"
	"time"

	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/logger"
	"github.com/osse101/FleaMarket_Go/internal/utils"
)

// Relister puts drained dynamic offers back on the market under fresh ids with their
// original stack count and a new lifetime.
type Relister struct {
	registry *Registry
	lifetime time.Duration
	now      func() time.Time
}

// NewRelister creates a relister listing offers for lifetime.
func NewRelister(registry *Registry, lifetime time.Duration) *Relister {
	return &Relister{registry: registry, lifetime: lifetime, now: time.Now}
}

// Restock relists offers and returns how many were added.
func (r *Relister) Restock(ctx context.Context, offers []domain.Offer) int {
	if len(offers) == 0 {
		return 0
	}
	now := r.now()
	fresh := make([]domain.Offer, 0, len(offers))
	for i := range offers {
		o := offers[i].Clone()
		root := o.Root()
		if root == nil {
			continue
		}
		if o.OriginalStackCount != nil && *o.OriginalStackCount > 0 {
			root.SetStackCount(*o.OriginalStackCount)
		}
		o.ID = utils.NewItemID()
		o.ListedAt = now
		o.EndsAt = now.Add(r.lifetime)
		fresh = append(fresh, o)
	}

	added := r.registry.AddMany(ctx, fresh)
	logger.FromContext(ctx).Info(LogMsgDynamicRelisted, "drained", len(offers), "relisted", added)
	return added
}
