package ragfair

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/event"
	"github.com/osse101/FleaMarket_Go/internal/logger"
	"github.com/osse101/FleaMarket_Go/internal/metrics"
	"github.com/osse101/FleaMarket_Go/internal/utils"
)

type expiryAction int

const (
	actionSkip expiryAction = iota
	actionArchive
	actionReturn
	actionRemove
	actionSoldOut
)

// expiry is what leaving the registry still requires once the lock is released.
type expiry struct {
	action expiryAction
	offer  domain.Offer
	at     time.Time
}

// expireLocked applies the per-seller expiry rules to the registry state:
//   - trader offers are left alone, resupply replaces them wholesale
//   - dynamic offers move to the archive
//   - player offers past their end time are returned to the seller
//   - anything else is removed
func (r *Registry) expireLocked(o *domain.Offer, now time.Time) (*expiry, error) {
	switch o.SellerKind {
	case domain.SellerTrader:
		return &expiry{action: actionSkip, offer: o.Clone(), at: now}, nil

	case domain.SellerDynamicNpc:
		snapshot := o.Clone()
		r.archive.Add(snapshot.ID, snapshot)
		r.removeLocked(o.ID)
		return &expiry{action: actionArchive, offer: snapshot, at: now}, nil

	case domain.SellerPlayer:
		if !o.Expired(now) {
			return nil, fmt.Errorf(ErrMsgOfferFmt, domain.ErrOfferNotExpired, o.ID)
		}
		snapshot := o.Clone()
		r.removeLocked(o.ID)
		return &expiry{action: actionReturn, offer: snapshot, at: now}, nil

	default:
		snapshot := o.Clone()
		r.removeLocked(o.ID)
		return &expiry{action: actionRemove, offer: snapshot, at: now}, nil
	}
}

// apply runs the collaborator side of an expiry outside the registry lock.
func (r *Registry) apply(ctx context.Context, fx *expiry) {
	if fx == nil {
		return
	}
	log := logger.FromContext(ctx)

	switch fx.action {
	case actionSkip:
		return
	case actionSoldOut:
		log.Info(LogMsgOfferSoldOut, "offer_id", fx.offer.ID, "seller_kind", fx.offer.SellerKind)
		if fx.offer.SellerKind == domain.SellerPlayer {
			if err := r.detachFromSeller(ctx, fx.offer); err != nil {
				log.Debug(LogMsgSoldOutNotDetached, "offer_id", fx.offer.ID, "seller_id", fx.offer.SellerID, "error", err)
			}
		}
		return
	case actionArchive:
		log.Info(LogMsgDynamicArchived, "offer_id", fx.offer.ID, "tpl", fx.offer.RootTemplateID())
	case actionRemove:
		log.Info(LogMsgOfferExpired, "offer_id", fx.offer.ID, "seller_kind", fx.offer.SellerKind)
	case actionReturn:
		r.returnPlayerOffer(ctx, fx)
	}

	r.publish(ctx, event.NewOfferExpiredEvent(&fx.offer, fx.at))
}

// returnPlayerOffer penalises the seller and mails the unsold units back. The units are
// mailed even when the seller's profile no longer lists the offer; only the penalty
// depends on it.
func (r *Registry) returnPlayerOffer(ctx context.Context, fx *expiry) {
	log := logger.FromContext(ctx).With("offer_id", fx.offer.ID, "seller_id", fx.offer.SellerID)
	offer := fx.offer

	items := r.returnedItems(offer)
	units := 0
	for i := range items {
		if items[i].ParentID == items[0].ParentID {
			units += items[i].StackCount()
		}
	}

	// 1. Reputation loss, only for offers the seller still lists
	loss := 0.0
	switch err := r.detachFromSeller(ctx, offer); {
	case err == nil:
		loss = r.cfg.ReputationLoss
		if err := r.profiles.AdjustRating(ctx, offer.SellerID, -loss); err != nil {
			log.Error(LogMsgRatingAdjustFailed, "error", err)
		}
	case errors.Is(err, domain.ErrOfferNotFound), errors.Is(err, domain.ErrProfileNotFound):
		log.Warn(LogMsgProfileMissingOffer, "error", err)
	default:
		log.Error(LogMsgProfileMissingOffer, "error", err)
	}

	// 2. Unsold stock back to the seller
	if err := r.mailBack(ctx, offer.SellerID, items); err != nil {
		metrics.ReturnedUnitsLost.Add(float64(units))
		log.Error(LogMsgReturnedItemsLost, "units", units, "stacks", countRoots(items), "error", err)
		return
	}

	log.Info(LogMsgPlayerOfferReturned, "units", units)
	r.publish(ctx, event.NewOfferReturnedEvent(domain.OfferReturnedPayload{
		OfferID:       offer.ID,
		SellerID:      offer.SellerID,
		ReturnedUnits: units,
		Stacks:        countRoots(items),
		RatingLoss:    loss,
		Timestamp:     fx.at.Unix(),
	}))
}

// detachFromSeller drops the offer from the seller's own list.
func (r *Registry) detachFromSeller(ctx context.Context, offer domain.Offer) error {
	if r.profiles == nil {
		return fmt.Errorf(ErrMsgOfferFmt, domain.ErrProfileNotFound, offer.ID)
	}
	return r.profiles.RemoveOffer(ctx, offer.SellerID, offer.ID)
}

func (r *Registry) mailBack(ctx context.Context, sellerID string, items []domain.ItemStack) error {
	if r.mailer == nil {
		return errors.New(ErrMsgNoMailer)
	}
	return r.mailer.ReturnItems(ctx, sellerID, items)
}

// returnedItems prepares an offer's assembly for mailing: the root count is capped at the
// listed amount, stacks larger than the template allows are split, and loose roots get a
// fresh parent.
func (r *Registry) returnedItems(offer domain.Offer) []domain.ItemStack {
	items := domain.CloneItems(offer.Items)
	if len(items) == 0 {
		return nil
	}

	root := &items[0]
	if offer.OriginalStackCount != nil && root.StackCount() > *offer.OriginalStackCount {
		root.SetStackCount(*offer.OriginalStackCount)
	}
	if root.Upd != nil {
		root.Upd.OriginalStackObjectsCount = nil
	}

	items = r.unstack(items)

	parent := utils.NewItemID()
	rootParent := offer.Items[0].ParentID
	for i := range items {
		if items[i].ParentID == rootParent || items[i].ParentID == domain.RootParentStash {
			items[i].ParentID = parent
		}
	}
	return items
}

// unstack splits every stack larger than its template's max stack size. The first split
// keeps the original id so children stay attached.
func (r *Registry) unstack(items []domain.ItemStack) []domain.ItemStack {
	out := make([]domain.ItemStack, 0, len(items))
	for _, it := range items {
		maxStack := 1
		if r.catalog != nil {
			if tpl, ok := r.catalog.Template(it.TemplateID); ok {
				maxStack = tpl.MaxStack()
			}
		}

		count := it.StackCount()
		if it.Upd == nil || maxStack <= 1 || count <= maxStack {
			out = append(out, it)
			continue
		}

		first := true
		for count > 0 {
			chunk := min(count, maxStack)
			c := it.Clone()
			if !first {
				c.ID = utils.NewItemID()
			}
			c.SetStackCount(chunk)
			out = append(out, c)
			count -= chunk
			first = false
		}
	}
	return out
}

func countRoots(items []domain.ItemStack) int {
	if len(items) == 0 {
		return 0
	}
	n := 0
	for i := range items {
		if items[i].ParentID == items[0].ParentID {
			n++
		}
	}
	return n
}

func (r *Registry) publish(ctx context.Context, evt event.Event) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}
