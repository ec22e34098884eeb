package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEconomy(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ragfair.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultEconomyConfig_IsValid(t *testing.T) {
	cfg := DefaultEconomyConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, time.Minute, cfg.Schedule.ExpirySweepInterval())
	assert.Equal(t, 10*time.Minute, cfg.Pricing.TraderBuyPriceCacheTTL())
	assert.Equal(t, time.Hour, cfg.Ragfair.DynamicOfferLifetime())
}

func TestLoadEconomyConfig(t *testing.T) {
	// CASE 1: BEST CASE - partial file overrides defaults
	t.Run("overrides defaults", func(t *testing.T) {
		path := writeEconomy(t, `{"version":"1.0","ragfair":{"reputationLoss":0.5},"pricing":{"priceRanges":{"pack":{"min":1,"max":1}}}}`)

		cfg, err := LoadEconomyConfig(path)

		require.NoError(t, err)
		assert.Equal(t, 0.5, cfg.Ragfair.ReputationLoss)
		assert.Equal(t, 1.0, cfg.Pricing.Ranges.Pack.Min)
		assert.Equal(t, 0.8, cfg.Pricing.Ranges.Default.Min, "untouched fields keep defaults")
	})

	// CASE 2: INVALID - max below min
	t.Run("rejects inverted range", func(t *testing.T) {
		path := writeEconomy(t, `{"version":"1.0","pricing":{"priceRanges":{"default":{"min":1.5,"max":1.0}}}}`)

		_, err := LoadEconomyConfig(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid economy config")
	})

	// CASE 3: INVALID - zero edition multiplier
	t.Run("rejects non-positive multiplier", func(t *testing.T) {
		path := writeEconomy(t, `{"version":"1.0","quota":{"buyRestrictionMultipliers":{"standard":0}}}`)

		_, err := LoadEconomyConfig(path)

		require.Error(t, err)
	})

	// CASE 4: WORST CASE - missing and malformed files
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadEconomyConfig(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read economy config")
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := LoadEconomyConfig(writeEconomy(t, `{`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse economy config")
	})
}

func TestEditionMultiplier(t *testing.T) {
	q := DefaultEconomyConfig().Quota
	assert.Equal(t, 1.2, q.EditionMultiplier("edge_of_darkness"))
	assert.Equal(t, 1.0, q.EditionMultiplier("standard"))
	assert.Equal(t, 1.0, q.EditionMultiplier("unknown"))
	assert.Equal(t, 1.0, q.EditionMultiplier(""))
}
