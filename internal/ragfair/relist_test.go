package ragfair

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FleaMarket_Go/internal/domain"
)

func TestRelister_Restock(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	o := makeOffer("dyn-1", domain.SellerDynamicNpc, tplAmmo, 1, testNow.Add(-time.Minute))
	o.OriginalStackCount = domain.IntPtr(3)
	require.NoError(t, h.reg.Add(ctx, o))
	require.Equal(t, 1, h.reg.SweepExpired(ctx, testNow))

	relister := NewRelister(h.reg, 2*time.Hour)
	relister.now = func() time.Time { return testNow }

	// CASE 1: BEST CASE - drained offers come back under a new id at full stock
	added := relister.Restock(ctx, h.reg.DrainExpiredDynamic(ctx))
	require.Equal(t, 1, added)
	assert.Zero(t, h.reg.ExpiredDynamicCount())

	listed := h.reg.ByTemplate(tplAmmo)
	require.Len(t, listed, 1)
	assert.NotEqual(t, "dyn-1", listed[0].ID)
	assert.Equal(t, 3, listed[0].Stock())
	assert.Equal(t, testNow, listed[0].ListedAt)
	assert.Equal(t, testNow.Add(2*time.Hour), listed[0].EndsAt)

	// CASE 2: EDGE CASE - nothing drained, nothing added
	assert.Zero(t, relister.Restock(ctx, nil))

	// CASE 3: INVALID - malformed offers are skipped
	assert.Zero(t, relister.Restock(ctx, []domain.Offer{{ID: "empty", SellerKind: domain.SellerDynamicNpc}}))
}
