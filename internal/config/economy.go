package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
)

// PriceRange bounds the random multiplier applied to an offer price.
type PriceRange struct {
	Min float64 `json:"min" validate:"gt=0"`
	Max float64 `json:"max" validate:"gtefield=Min"`
}

// PriceRanges holds the multiplier bounds per offer kind.
type PriceRanges struct {
	Default PriceRange `json:"default"`
	Preset  PriceRange `json:"preset"`
	Pack    PriceRange `json:"pack"`
}

// OfferAdjustment is the anti-underprice guard.
type OfferAdjustment struct {
	AdjustPriceWhenBelowHandbookPrice      bool    `json:"adjustPriceWhenBelowHandbookPrice"`
	MaxPriceDifferenceBelowHandbookPercent float64 `json:"maxPriceDifferenceBelowHandbookPercent" validate:"gte=0,lte=100"`
	HandbookPriceMultiplier                float64 `json:"handbookPriceMultipier" validate:"gt=0"`
	PriceThresholdRub                      int     `json:"priceThreshholdRub" validate:"gte=0"`
}

// PricingConfig tunes the price cache.
type PricingConfig struct {
	Ranges                          PriceRanges     `json:"priceRanges"`
	BiasExponent                    float64         `json:"biasExponent" validate:"gte=1"`
	OfferAdjustment                 OfferAdjustment `json:"offerAdjustment"`
	UseTraderPriceForOffersIfHigher bool            `json:"useTraderPriceForOffersIfHigher"`
	TraderBuyPriceCacheSize         int             `json:"traderBuyPriceCacheSize" validate:"gt=0"`
	TraderBuyPriceCacheTTLSeconds   int             `json:"traderBuyPriceCacheTtlSeconds" validate:"gt=0"`
}

// RagfairConfig tunes offer lifecycle.
type RagfairConfig struct {
	ReputationLoss            float64 `json:"reputationLoss" validate:"gt=0"`
	ExpiredDynamicArchiveSize int     `json:"expiredDynamicArchiveSize" validate:"gte=0"`
	// RetiredOfferIDCacheSize bounds the remembered ids of offers that left the market
	RetiredOfferIDCacheSize int `json:"retiredOfferIdCacheSize" validate:"gte=0"`
	// DynamicOfferLifetimeSeconds is how long a relisted dynamic offer stays up
	DynamicOfferLifetimeSeconds int `json:"dynamicOfferLifetimeSeconds" validate:"gt=0"`
}

// QuotaConfig tunes per-buyer purchase restrictions.
type QuotaConfig struct {
	// BuyRestrictionMultipliers scales restriction maxima per game edition
	BuyRestrictionMultipliers map[string]float64 `json:"buyRestrictionMultipliers" validate:"dive,gt=0"`
}

// ScheduleConfig holds the background job intervals in seconds.
type ScheduleConfig struct {
	ExpirySweepSeconds     int `json:"expirySweepSeconds" validate:"gt=0"`
	PriceRefreshSeconds    int `json:"priceRefreshSeconds" validate:"gt=0"`
	ExpiredDrainSeconds    int `json:"expiredDrainSeconds" validate:"gt=0"`
	SaveSeconds            int `json:"saveSeconds" validate:"gt=0"`
	DefaultResupplySeconds int `json:"defaultResupplySeconds" validate:"gt=0"`
}

// EconomyConfig is the economy tunables file.
type EconomyConfig struct {
	Version  string         `json:"version" validate:"required"`
	Pricing  PricingConfig  `json:"pricing"`
	Ragfair  RagfairConfig  `json:"ragfair"`
	Quota    QuotaConfig    `json:"quota"`
	Schedule ScheduleConfig `json:"schedule"`
}

// DefaultEconomyConfig returns the values shipped in configs/economy/ragfair.json.
func DefaultEconomyConfig() *EconomyConfig {
	return &EconomyConfig{
		Version: "1.0",
		Pricing: PricingConfig{
			Ranges: PriceRanges{
				Default: PriceRange{Min: 0.8, Max: 1.2},
				Preset:  PriceRange{Min: 0.9, Max: 1.25},
				Pack:    PriceRange{Min: 0.95, Max: 1.1},
			},
			BiasExponent: 2,
			OfferAdjustment: OfferAdjustment{
				AdjustPriceWhenBelowHandbookPrice:      true,
				MaxPriceDifferenceBelowHandbookPercent: 64,
				HandbookPriceMultiplier:                1.1,
				PriceThresholdRub:                      20000,
			},
			UseTraderPriceForOffersIfHigher: true,
			TraderBuyPriceCacheSize:         4096,
			TraderBuyPriceCacheTTLSeconds:   600,
		},
		Ragfair: RagfairConfig{
			ReputationLoss:              0.0000002,
			ExpiredDynamicArchiveSize:   5000,
			RetiredOfferIDCacheSize:     100000,
			DynamicOfferLifetimeSeconds: 3600,
		},
		Quota: QuotaConfig{
			BuyRestrictionMultipliers: map[string]float64{
				"standard":           1,
				"left_behind":        1.2,
				"prepare_for_escape": 1.2,
				"edge_of_darkness":   1.2,
				"unheard_edition":    1.2,
			},
		},
		Schedule: ScheduleConfig{
			ExpirySweepSeconds:     60,
			PriceRefreshSeconds:    300,
			ExpiredDrainSeconds:    120,
			SaveSeconds:            300,
			DefaultResupplySeconds: 3600,
		},
	}
}

// LoadEconomyConfig reads and validates the economy tunables file.
func LoadEconomyConfig(path string) (*EconomyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadEconomyFmt, path, err)
	}

	cfg := DefaultEconomyConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf(ErrMsgParseEconomyFmt, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf(ErrMsgInvalidEconomyFmt, path, err)
	}
	return cfg, nil
}

// Validate checks the struct tags.
func (c *EconomyConfig) Validate() error {
	return validator.New().Struct(c)
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func (s ScheduleConfig) ExpirySweepInterval() time.Duration  { return seconds(s.ExpirySweepSeconds) }
func (s ScheduleConfig) PriceRefreshInterval() time.Duration { return seconds(s.PriceRefreshSeconds) }
func (s ScheduleConfig) ExpiredDrainInterval() time.Duration { return seconds(s.ExpiredDrainSeconds) }
func (s ScheduleConfig) SaveInterval() time.Duration         { return seconds(s.SaveSeconds) }
func (s ScheduleConfig) DefaultResupply() time.Duration      { return seconds(s.DefaultResupplySeconds) }

// DynamicOfferLifetime returns how long relisted dynamic offers run.
func (r RagfairConfig) DynamicOfferLifetime() time.Duration {
	return seconds(r.DynamicOfferLifetimeSeconds)
}

// TraderBuyPriceCacheTTL returns the memo lifetime of trader buy prices.
func (p PricingConfig) TraderBuyPriceCacheTTL() time.Duration {
	return seconds(p.TraderBuyPriceCacheTTLSeconds)
}

// EditionMultiplier returns the buy restriction multiplier for a game edition, 1 when unknown.
func (q QuotaConfig) EditionMultiplier(edition string) float64 {
	if m, ok := q.BuyRestrictionMultipliers[edition]; ok && m > 0 {
		return m
	}
	return 1
}
