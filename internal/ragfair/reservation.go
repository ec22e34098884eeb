package ragfair

import (
	"context"
	"fmt"

	"github.com/osse101/FleaMarket_Go/internal/domain"
)

// Available returns the units of an offer not held by an in-flight purchase.
func (r *Registry) Available(id string) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.offers[id]
	if !ok {
		return 0, false
	}
	return o.Stock() - r.reserved[id], true
}

// Reserve holds n units of an offer for a purchase. Check and hold happen under one lock
// so two buyers can never both claim the last units.
func (r *Registry) Reserve(id string, n int) error {
	if n <= 0 {
		return fmt.Errorf(ErrMsgBadAmountFmt, domain.ErrInvalidInput, n)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.offers[id]
	if !ok {
		return fmt.Errorf(ErrMsgOfferFmt, domain.ErrOfferNotFound, id)
	}
	available := o.Stock() - r.reserved[id]
	if n > available {
		return fmt.Errorf(ErrMsgReserveFmt, domain.ErrOutOfStock, id, available, n)
	}
	r.reserved[id] += n
	return nil
}

// CommitReserved turns n reserved units into a sale, removing them from the stack. A
// buy-restricted offer also counts the units against its restriction counter.
func (r *Registry) CommitReserved(ctx context.Context, id string, n int) error {
	if n <= 0 {
		return fmt.Errorf(ErrMsgBadAmountFmt, domain.ErrInvalidInput, n)
	}

	r.mu.Lock()
	held := r.reserved[id]
	if n > held {
		r.mu.Unlock()
		return fmt.Errorf(ErrMsgReleaseFmt, domain.ErrInvalidInput, id, held, n)
	}
	r.reserved[id] = held - n
	if o, ok := r.offers[id]; ok {
		countRestricted(&o.Items[0], n)
	}
	fx, err := r.removeStackLocked(id, n)
	r.mu.Unlock()
	if err != nil {
		return err
	}

	r.apply(ctx, fx)
	return nil
}

// ReleaseReserved returns n reserved units to sale. Releasing more than is held
// releases everything.
func (r *Registry) ReleaseReserved(id string, n int) {
	if n <= 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	held := r.reserved[id]
	if n >= held {
		delete(r.reserved, id)
		return
	}
	r.reserved[id] = held - n
}

// Reserved returns the units currently held for an offer.
func (r *Registry) Reserved(id string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.reserved[id]
}

func countRestricted(root *domain.ItemStack, n int) {
	if !root.HasBuyRestriction() {
		return
	}
	cur := 0
	if root.Upd.BuyRestrictionCurrent != nil {
		cur = *root.Upd.BuyRestrictionCurrent
	}
	root.Upd.BuyRestrictionCurrent = domain.IntPtr(cur + n)
}
