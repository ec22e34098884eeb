package ragfair

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FleaMarket_Go/internal/domain"
)

func TestReservation_Lifecycle(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	require.NoError(t, h.reg.Add(ctx, makeOffer("o", domain.SellerDynamicNpc, tplAmmo, 10, testNow.Add(time.Hour))))

	// CASE 1: BEST CASE - reserve, commit part, release the rest
	require.NoError(t, h.reg.Reserve("o", 6))
	avail, _ := h.reg.Available("o")
	assert.Equal(t, 4, avail)

	require.NoError(t, h.reg.CommitReserved(ctx, "o", 4))
	h.reg.ReleaseReserved("o", 2)

	got, _ := h.reg.ByID("o")
	assert.Equal(t, 6, got.Stock())
	assert.Equal(t, 0, h.reg.Reserved("o"))

	// CASE 2: WORST CASE - more than available
	require.NoError(t, h.reg.Reserve("o", 5))
	err := h.reg.Reserve("o", 2)
	assert.ErrorIs(t, err, domain.ErrOutOfStock)
	assert.Equal(t, 5, h.reg.Reserved("o"), "failed reserve holds nothing")

	// CASE 3: INVALID - committing more than held
	err = h.reg.CommitReserved(ctx, "o", 6)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// CASE 4: EDGE CASE - committing the whole stack removes the offer
	h.reg.ReleaseReserved("o", 100)
	require.NoError(t, h.reg.Reserve("o", 6))
	require.NoError(t, h.reg.CommitReserved(ctx, "o", 6))
	_, ok := h.reg.ByID("o")
	assert.False(t, ok)

	// CASE 5: unknown offer
	assert.ErrorIs(t, h.reg.Reserve("o", 1), domain.ErrOfferNotFound)
}

func TestReservation_CommitCountsRestriction(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	o := makeOffer("limited", domain.SellerDynamicNpc, tplAmmo, 10, testNow.Add(time.Hour))
	o.Items[0].Upd.BuyRestrictionMax = domain.IntPtr(4)
	require.NoError(t, h.reg.Add(ctx, o))
	require.NoError(t, h.reg.Add(ctx, makeOffer("open", domain.SellerDynamicNpc, tplAmmo, 10, testNow.Add(time.Hour))))

	// CASE 1: BEST CASE - each commit adds to the counter
	require.NoError(t, h.reg.Reserve("limited", 3))
	require.NoError(t, h.reg.CommitReserved(ctx, "limited", 2))
	require.NoError(t, h.reg.CommitReserved(ctx, "limited", 1))
	got, _ := h.reg.ByID("limited")
	require.NotNil(t, got.Items[0].Upd.BuyRestrictionCurrent)
	assert.Equal(t, 3, *got.Items[0].Upd.BuyRestrictionCurrent)

	// CASE 2: EDGE CASE - unrestricted offers get no counter
	require.NoError(t, h.reg.Reserve("open", 1))
	require.NoError(t, h.reg.CommitReserved(ctx, "open", 1))
	got, _ = h.reg.ByID("open")
	assert.Nil(t, got.Items[0].Upd.BuyRestrictionCurrent)
}

func TestReservation_ConcurrentBuyersNeverOversell(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	require.NoError(t, h.reg.Add(ctx, makeOffer("o", domain.SellerDynamicNpc, tplBolts, 5, testNow.Add(time.Hour))))

	var won atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := h.reg.Reserve("o", 1); err != nil {
				return
			}
			won.Add(1)
			_ = h.reg.CommitReserved(ctx, "o", 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(5), won.Load())
	_, ok := h.reg.ByID("o")
	assert.False(t, ok)
}
