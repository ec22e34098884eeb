package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/FleaMarket_Go/internal/catalog"
	"github.com/osse101/FleaMarket_Go/internal/config"
	"github.com/osse101/FleaMarket_Go/internal/event"
	"github.com/osse101/FleaMarket_Go/internal/pricing"
	"github.com/osse101/FleaMarket_Go/internal/profile"
	"github.com/osse101/FleaMarket_Go/internal/quota"
	"github.com/osse101/FleaMarket_Go/internal/ragfair"
	"github.com/osse101/FleaMarket_Go/internal/trade"
	"github.com/osse101/FleaMarket_Go/internal/trader"
	"github.com/osse101/FleaMarket_Go/internal/validation"
)

// Market holds every live component of the economy.
type Market struct {
	Catalog   *catalog.Store
	Traders   *trader.Store
	Prices    *pricing.Cache
	PriceFeed *pricing.FilePriceFeed
	Profiles  *profile.Store
	Mailbox   *profile.Mailbox
	Inventory *profile.Inventory
	Wallet    *profile.Wallet
	Registry  *ragfair.Registry
	Relister  *ragfair.Relister
	Quotas    *quota.Ledger
	Trade     trade.Service
}

// BuildMarket loads the static data, warms the price cache and restores persisted
// state. Trader offers are listed later by the resupply worker.
func BuildMarket(ctx context.Context, cfg *config.Config, econ *config.EconomyConfig, repos *Repositories, publisher event.Publisher) (*Market, error) {
	v := validation.NewSchemaValidator()

	// 1. Static data
	cat, err := catalog.Load(v, catalog.Paths{
		Items:         cfg.Path(config.ConfigPathCatalogItems),
		ItemsSchema:   cfg.Path(config.ConfigPathSchemaItems),
		Presets:       cfg.Path(config.ConfigPathPresets),
		PresetsSchema: cfg.Path(config.ConfigPathSchemaPresets),
	})
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadCatalogFmt, err)
	}
	slog.Info(LogMsgCatalogLoaded, "templates", len(cat.Templates()))

	traders, err := trader.LoadDir(v, cfg.Path(config.ConfigPathTradersDir), cfg.Path(config.ConfigPathSchemaTrader))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadTradersFmt, err)
	}
	slog.Info(LogMsgTradersLoaded, "traders", len(traders.Traders()))

	// 2. Prices
	prices := pricing.NewCache(cat, traders, econ.Pricing)
	if err := prices.Build(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgBuildPricesFmt, err)
	}

	// 3. Profiles and the flea market
	m := &Market{
		Catalog:   cat,
		Traders:   traders,
		Prices:    prices,
		PriceFeed: pricing.NewFilePriceFeed(cfg.Path(config.ConfigPathPriceFeed), cfg.Path(config.ConfigPathSchemaPrices), v),
		Profiles:  profile.NewStore(repos.PlayerOffers),
		Mailbox:   profile.NewMailbox(),
		Inventory: profile.NewInventory(cat, MaxInventoryRoots),
	}
	m.Wallet = profile.NewWallet(m.Inventory)
	m.Registry = ragfair.NewRegistry(cat, m.Profiles, m.Mailbox, publisher, econ.Ragfair)
	m.Relister = ragfair.NewRelister(m.Registry, econ.Ragfair.DynamicOfferLifetime())

	// 4. Persisted state
	m.Quotas = quota.NewLedger(repos.Quota, econ.Quota)
	if err := m.Quotas.Load(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgLoadQuotasFmt, err)
	}
	restored, err := m.Registry.LoadPlayerOffers(ctx, m.Profiles)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadPlayerOffersFmt, err)
	}
	slog.Info(LogMsgPlayerOffersRestored, "offers", restored)

	m.Trade = trade.NewService(trade.Deps{
		Catalog:   cat,
		Market:    m.Registry,
		Traders:   traders,
		Quotas:    m.Quotas,
		Inventory: m.Inventory,
		Payment:   m.Wallet,
		Sink:      traders,
		Pricer:    prices,
		Publisher: publisher,
	})

	slog.Info(LogMsgMarketReady, "offers", m.Registry.Count())
	return m, nil
}
