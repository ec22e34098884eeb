package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/event"
	"github.com/osse101/FleaMarket_Go/internal/logger"
	"github.com/osse101/FleaMarket_Go/internal/metrics"
	"github.com/osse101/FleaMarket_Go/internal/utils"
)

// Buy delivers up to req.Count units of a listing to the buyer, split into stacks no larger
// than the item's max stack. Placement stops at the first stack that does not fit; stacks
// already placed stay delivered and only delivered units are charged.
func (s *service) Buy(ctx context.Context, req domain.BuyRequest) (*domain.TradeResult, error) {
	ctx = logger.WithAttrs(ctx, "buyer_id", req.BuyerID, "tid", req.TraderID)
	log := logger.FromContext(ctx)
	log.Info(LogMsgBuyCalled, "item_id", req.ListingID, "count", req.Count)
	start := s.now()
	result := &domain.TradeResult{}

	// 1. Validate request
	if err := s.validateBuy(req); err != nil {
		return s.rejectBuy(ctx, result, start, err)
	}

	// 2. One purchase per buyer at a time so id remapping sees a stable inventory
	defer s.locks.Lock(req.BuyerID)()

	// 3. Resolve where the units come from
	src, err := s.resolveSource(req)
	if err != nil {
		return s.rejectBuy(ctx, result, start, err)
	}
	root := src.Items()[0]
	tpl, ok := s.Catalog.Template(root.TemplateID)
	if !ok {
		return s.rejectBuy(ctx, result, start, fmt.Errorf(ErrMsgUnknownTemplateFmt, domain.ErrIncompatibleItem, root.TemplateID))
	}

	// 4. Reserve quota and stock together; a failure leaves nothing behind
	if err := src.Reserve(ctx, req.BuyerID, req.Count); err != nil {
		return s.rejectBuy(ctx, result, start, err)
	}

	// 5. Place stacks, committing each one as it lands
	chunks := splitStacks(req.Count, tpl.MaxStack())
	taken := s.Inventory.ItemIDs(req.BuyerID)
	delivered := 0
	var firstErr error
	for i, size := range chunks {
		assembly := buildStack(src.Items(), size, taken)
		if err := s.Inventory.Place(ctx, req.BuyerID, assembly); err != nil {
			log.Warn(LogMsgChunkNotPlaced, "chunk", i+1, "chunks", len(chunks), "error", err)
			firstErr = fmt.Errorf(ErrMsgPlaceChunkFmt, i+1, len(chunks), err)
			result.AddWarning(firstErr)
			break
		}
		if err := src.Commit(ctx, req.BuyerID, size); err != nil {
			log.Error(LogMsgCommitFailed, "count", size, "error", err)
			result.AddWarning(fmt.Errorf(ErrMsgCommitChunkFmt, size, err))
		}
		delivered += size
		result.Delivered = append(result.Delivered, assembly)
	}
	result.DeliveredCount = delivered

	// 6. Give back whatever was not delivered
	if rest := req.Count - delivered; rest > 0 {
		src.Release(ctx, req.BuyerID, rest)
	}

	// 7. Charge for delivered units only
	if delivered > 0 {
		cost := src.UnitCost().Times(delivered)
		if err := s.Payment.Charge(ctx, req.BuyerID, cost); err != nil {
			metrics.PaymentFailures.Inc()
			log.Warn(LogMsgPaymentFailed, "delivered", delivered, "error", err)
			payErr := fmt.Errorf(ErrMsgChargeFmt, domain.ErrPaymentFailure, err)
			result.AddWarning(payErr)
			if firstErr == nil {
				firstErr = payErr
			}
		} else {
			result.Charged = &cost
		}
	}

	// 8. Record and announce
	s.finalizeBuy(ctx, req, src, root.TemplateID, result, start)
	log.Info(LogMsgItemsBought, "item_id", req.ListingID, "delivered", delivered, "stacks", len(result.Delivered))
	return result, firstErr
}

func (s *service) validateBuy(req domain.BuyRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf(ErrMsgInvalidRequestFmt, domain.ErrInvalidInput, err)
	}
	if req.Count > domain.MaxTransactionQuantity {
		return fmt.Errorf(ErrMsgQuantityExceedsFmt, domain.ErrInvalidInput, req.Count, domain.MaxTransactionQuantity)
	}
	return nil
}

func (s *service) rejectBuy(ctx context.Context, result *domain.TradeResult, start time.Time, err error) (*domain.TradeResult, error) {
	logger.FromContext(ctx).Warn(LogMsgBuyRejected, "error", err)
	result.AddWarning(err)
	metrics.TradesTotal.WithLabelValues(KindBuy, OutcomeFailed).Inc()
	metrics.TradeDuration.WithLabelValues(KindBuy).Observe(s.now().Sub(start).Seconds())
	return result, err
}

func (s *service) finalizeBuy(ctx context.Context, req domain.BuyRequest, src StockSource, tpl string, result *domain.TradeResult, start time.Time) {
	delivered := result.DeliveredCount
	outcome := OutcomeOK
	switch {
	case delivered == 0:
		outcome = OutcomeFailed
	case delivered < req.Count:
		outcome = OutcomePartial
		metrics.PartialDeliveries.Inc()
	case !result.OK():
		outcome = OutcomePartial
	}
	metrics.TradesTotal.WithLabelValues(KindBuy, outcome).Inc()
	metrics.TradeDuration.WithLabelValues(KindBuy).Observe(s.now().Sub(start).Seconds())
	// Unit, stack and money counters come from the item.bought event
	if delivered == 0 || s.Publisher == nil {
		return
	}
	payload := domain.ItemBoughtPayload{
		BuyerID:    req.BuyerID,
		SellerKind: src.Kind(),
		TraderID:   src.TraderID(),
		ListingID:  src.ListingID(),
		TemplateID: tpl,
		Requested:  req.Count,
		Delivered:  delivered,
		Stacks:     len(result.Delivered),
		Timestamp:  s.now().Unix(),
	}
	if result.Charged != nil && result.Charged.Money != nil {
		payload.ChargedAmount = result.Charged.Money.Amount
		payload.ChargeCurrency = result.Charged.Money.Currency
	}
	if err := s.Publisher.Publish(ctx, event.NewItemBoughtEvent(payload)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", event.ItemBought, "error", err)
	}
}

// splitStacks divides count into stacks of at most maxStack.
func splitStacks(count, maxStack int) []int {
	if maxStack < 1 {
		maxStack = 1
	}
	chunks := make([]int, 0, (count+maxStack-1)/maxStack)
	for count > 0 {
		n := min(count, maxStack)
		chunks = append(chunks, n)
		count -= n
	}
	return chunks
}

// buildStack turns a listing assembly into one deliverable stack: the root gets the stack
// count, every item gets an id not already in taken, and children follow their parent.
// Listing-only properties are dropped from the root.
func buildStack(items []domain.ItemStack, size int, taken map[string]struct{}) []domain.ItemStack {
	ids := make(map[string]string, len(items))
	for i := range items {
		fresh := utils.NewItemIDAvoiding(taken)
		taken[fresh] = struct{}{}
		ids[items[i].ID] = fresh
		items[i].ID = fresh
	}
	for i := 1; i < len(items); i++ {
		if p, ok := ids[items[i].ParentID]; ok {
			items[i].ParentID = p
		}
	}

	root := &items[0]
	root.ParentID = domain.RootParentStash
	root.SlotID = domain.RootParentStash
	root.SetStackCount(size)
	root.Upd.BuyRestrictionMax = nil
	root.Upd.BuyRestrictionCurrent = nil
	root.Upd.UnlimitedCount = false
	root.Upd.OriginalStackObjectsCount = nil
	return items
}
