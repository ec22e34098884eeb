package handler

import (
	"context"
	"net/http"

	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/logger"
	"github.com/osse101/FleaMarket_Go/internal/pricing"
)

// PriceReader is the read side of the price cache.
type PriceReader interface {
	Entry(tpl string) domain.PriceEntry
	ResolvedPrice(ctx context.Context, tpl string) int
	OfferPrice(ctx context.Context, items []domain.ItemStack, currency string, isPackOffer bool) int
}

// OfferReader is the read side of the offer registry.
type OfferReader interface {
	ByID(id string) (domain.Offer, bool)
	ByTemplate(tpl string) []domain.Offer
}

// TraderReader lists traders and their live assorts.
type TraderReader interface {
	Traders() []domain.TraderBase
	Assort(traderID string) ([]domain.AssortEntry, error)
}

// QuotaReader reports per-buyer purchase counts.
type QuotaReader interface {
	CurrentCount(buyerID, listingID string) int
}

// PriceResponse is one template's known prices plus the value trades use.
type PriceResponse struct {
	domain.PriceEntry
	Resolved  int    `json:"resolved"`
	Formatted string `json:"formatted"`
}

// QuoteRequest asks what the market would list an assembly for.
type QuoteRequest struct {
	Items    []domain.ItemStack `json:"items" validate:"required,min=1,max=100"`
	Currency string             `json:"currency" validate:"required,currency"`
	Pack     bool               `json:"pack"`
}

// QuoteResponse is the generated listing price.
type QuoteResponse struct {
	Amount    int    `json:"amount"`
	Currency  string `json:"currency"`
	Formatted string `json:"formatted"`
}

// OfferQuery filters market offers.
type OfferQuery struct {
	TemplateID string `validate:"required,templateid"`
	Limit      int    `validate:"min=1,max=500"`
}

// QuotaQuery identifies one buyer/listing pair.
type QuotaQuery struct {
	BuyerID   string `validate:"required,max=64"`
	ListingID string `validate:"required,max=64"`
}

// QuotaResponse reports units bought in the current window.
type QuotaResponse struct {
	BuyerID   string `json:"buyer_id"`
	ListingID string `json:"listing_id"`
	Purchased int    `json:"purchased"`
}

// HandleGetPrice returns GET /api/v1/prices/{tpl}.
func HandleGetPrice(prices PriceReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tpl, ok := GetPathParam(r, w, "tpl")
		if !ok {
			return
		}
		entry := prices.Entry(tpl)
		if entry.StaticPrice == nil && entry.DynamicPrice == nil {
			respondError(w, http.StatusNotFound, ErrMsgPriceNotFound)
			return
		}
		resolved := prices.ResolvedPrice(r.Context(), tpl)
		respondJSON(w, http.StatusOK, PriceResponse{
			PriceEntry: entry,
			Resolved:   resolved,
			Formatted:  pricing.FormatPrice(resolved, domain.CurrencyRoubles),
		})
	}
}

// HandleQuotePrice prices an assembly the way generated offers are priced.
func HandleQuotePrice(prices PriceReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req QuoteRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Price quote"); err != nil {
			return
		}
		if req.Items[0].TemplateID == "" {
			respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Error:  ErrMsgInvalidRequestSummary,
				Fields: map[string]string{"items": "Root item needs a template id"},
			})
			return
		}

		amount := prices.OfferPrice(r.Context(), req.Items, req.Currency, req.Pack)
		logger.FromContext(r.Context()).Info(LogMsgPriceQuoted, "tpl", req.Items[0].TemplateID, "amount", amount, "pack", req.Pack)
		respondJSON(w, http.StatusOK, QuoteResponse{
			Amount:    amount,
			Currency:  req.Currency,
			Formatted: pricing.FormatPrice(amount, req.Currency),
		})
	}
}

// HandleGetOffer returns GET /api/v1/offers/{id}.
func HandleGetOffer(offers OfferReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}
		offer, found := offers.ByID(id)
		if !found {
			respondError(w, http.StatusNotFound, ErrMsgOfferNotFound)
			return
		}
		respondJSON(w, http.StatusOK, offer)
	}
}

// HandleListOffers returns GET /api/v1/offers?tpl=...&limit=...
func HandleListOffers(offers OfferReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := OfferQuery{
			TemplateID: r.URL.Query().Get("tpl"),
			Limit:      GetIntQueryParam(r, "limit", DefaultOfferLimit),
		}
		if err := ValidateQuery(r, w, &q); err != nil {
			return
		}

		found := offers.ByTemplate(q.TemplateID)
		if len(found) > q.Limit {
			found = found[:q.Limit]
		}
		logger.FromContext(r.Context()).Debug(LogMsgOffersListed, "tpl", q.TemplateID, "count", len(found))
		respondJSON(w, http.StatusOK, newList(found))
	}
}

// HandleListTraders returns every registered trader.
func HandleListTraders(traders TraderReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, newList(traders.Traders()))
	}
}

// HandleGetAssort returns a trader's live assort.
func HandleGetAssort(traders TraderReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}
		assort, err := traders.Assort(id)
		if err != nil {
			respondServiceError(w, r, "assort", err)
			return
		}
		respondJSON(w, http.StatusOK, newList(assort))
	}
}

// HandleGetQuota returns GET /api/v1/quotas?buyer=...&listing=...
func HandleGetQuota(quotas QuotaReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := QuotaQuery{
			BuyerID:   r.URL.Query().Get("buyer"),
			ListingID: r.URL.Query().Get("listing"),
		}
		if err := ValidateQuery(r, w, &q); err != nil {
			return
		}
		respondJSON(w, http.StatusOK, QuotaResponse{
			BuyerID:   q.BuyerID,
			ListingID: q.ListingID,
			Purchased: quotas.CurrentCount(q.BuyerID, q.ListingID),
		})
	}
}
