package trade

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/event"
	"github.com/osse101/FleaMarket_Go/internal/logger"
	"github.com/osse101/FleaMarket_Go/internal/metrics"
)

// Sell removes the listed items from the seller and credits the payee with the
// precomputed price. Every id is located before anything is removed, so a missing id
// leaves the seller untouched.
func (s *service) Sell(ctx context.Context, req domain.SellRequest) (*domain.TradeResult, error) {
	ctx = logger.WithAttrs(ctx, "seller_id", req.SellerProfileID, "tid", req.TraderID)
	log := logger.FromContext(ctx)
	log.Info(LogMsgSellCalled, "items", len(req.ItemIDs))
	start := s.now()
	result := &domain.TradeResult{}

	// 1. Validate and normalise ids
	ids, err := s.validateSell(req)
	if err != nil {
		return s.rejectSell(ctx, result, start, err)
	}
	base, ok := s.Traders.Trader(req.TraderID)
	if !ok {
		return s.rejectSell(ctx, result, start, fmt.Errorf(ErrMsgTraderFmt, domain.ErrNotFound, req.TraderID))
	}

	defer s.locks.Lock(req.SellerProfileID)()

	// 2. Locate everything first
	for _, id := range ids {
		if _, ok := s.Inventory.Find(req.SellerProfileID, id); !ok {
			return s.rejectSell(ctx, result, start, fmt.Errorf(ErrMsgItemNotHeldFmt, domain.ErrNotFound, id, req.SellerProfileID))
		}
	}

	// 3. Remove each item with its children
	var sold [][]domain.ItemStack
	for _, id := range ids {
		removed, err := s.Inventory.Remove(ctx, req.SellerProfileID, id)
		if err != nil {
			log.Error(LogMsgRemoveFailed, "item_id", id, "error", err)
			result.AddWarning(fmt.Errorf(ErrMsgRemoveItemFmt, id, err))
			continue
		}
		result.Removed = append(result.Removed, removed...)
		sold = append(sold, removed)
	}

	// 4. The reputation trader puts what it bought up for sale
	if base.IsReputationTrader && s.Sink != nil {
		s.listSoldItems(ctx, base, sold)
	}

	// 5. Pay
	var creditErr error
	if req.Price.Amount > 0 && len(sold) > 0 {
		if err := s.Payment.Credit(ctx, req.PayeeProfileID, req.Price); err != nil {
			log.Error(LogMsgCreditFailed, "payee_id", req.PayeeProfileID, "error", err)
			creditErr = fmt.Errorf(ErrMsgCreditFmt, domain.ErrPaymentFailure, req.PayeeProfileID, err)
			result.AddWarning(creditErr)
		} else {
			price := req.Price
			result.Credited = &price
		}
	}

	s.finalizeSell(ctx, req, len(sold), result, start)
	log.Info(LogMsgItemsSold, "sold", len(sold))
	return result, creditErr
}

func (s *service) validateSell(req domain.SellRequest) ([]string, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf(ErrMsgInvalidRequestFmt, domain.ErrInvalidInput, err)
	}
	seen := make(map[string]struct{}, len(req.ItemIDs))
	ids := make([]string, 0, len(req.ItemIDs))
	for _, raw := range req.ItemIDs {
		id := strings.TrimSpace(raw)
		if id == "" {
			return nil, fmt.Errorf(ErrMsgEmptyItemID, domain.ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *service) listSoldItems(ctx context.Context, base domain.TraderBase, sold [][]domain.ItemStack) {
	for _, assembly := range sold {
		amount := s.Pricer.OfferPrice(ctx, assembly, base.Currency, false)
		price := domain.Money{Currency: base.Currency, Amount: amount}
		if _, err := s.Sink.AddSoldItems(ctx, base.ID, assembly, price); err != nil {
			logger.FromContext(ctx).Warn(LogMsgSoldItemsSinkFail, "trader_id", base.ID, "tpl", assembly[0].TemplateID, "error", err)
		}
	}
}

func (s *service) rejectSell(ctx context.Context, result *domain.TradeResult, start time.Time, err error) (*domain.TradeResult, error) {
	logger.FromContext(ctx).Warn(LogMsgSellRejected, "error", err)
	result.AddWarning(err)
	metrics.TradesTotal.WithLabelValues(KindSell, OutcomeFailed).Inc()
	metrics.TradeDuration.WithLabelValues(KindSell).Observe(s.now().Sub(start).Seconds())
	return result, err
}

func (s *service) finalizeSell(ctx context.Context, req domain.SellRequest, sold int, result *domain.TradeResult, start time.Time) {
	outcome := OutcomeOK
	if !result.OK() {
		outcome = OutcomePartial
	}
	metrics.TradesTotal.WithLabelValues(KindSell, outcome).Inc()
	metrics.TradeDuration.WithLabelValues(KindSell).Observe(s.now().Sub(start).Seconds())

	if s.Publisher == nil || sold == 0 {
		return
	}
	payload := domain.ItemSoldPayload{
		SellerID:   req.SellerProfileID,
		PayeeID:    req.PayeeProfileID,
		TraderID:   req.TraderID,
		ItemCount:  sold,
		TotalValue: req.Price.Amount,
		Currency:   req.Price.Currency,
		Timestamp:  s.now().Unix(),
	}
	if err := s.Publisher.Publish(ctx, event.NewItemSoldEvent(payload)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", event.ItemSold, "error", err)
	}
}
