package pricing

import (
	"context"
	"fmt"

	"github.com/osse101/FleaMarket_Go/internal/validation"
)

// PriceFeed supplies market-observed prices keyed by template id.
type PriceFeed interface {
	Fetch(ctx context.Context) (map[string]int, error)
}

// FilePriceFeed reads a JSON object of template id to rouble price, validated against a schema.
type FilePriceFeed struct {
	path       string
	schemaPath string
	validator  validation.SchemaValidator
}

// NewFilePriceFeed creates a feed backed by a JSON file.
func NewFilePriceFeed(path, schemaPath string, v validation.SchemaValidator) *FilePriceFeed {
	return &FilePriceFeed{path: path, schemaPath: schemaPath, validator: v}
}

func (f *FilePriceFeed) Fetch(ctx context.Context) (map[string]int, error) {
	prices := map[string]int{}
	if err := f.validator.LoadFile(f.path, f.schemaPath, &prices); err != nil {
		return nil, err
	}
	return prices, nil
}

// RefreshFromFeed fetches the feed and swaps it in. A failing feed leaves the current
// snapshot untouched.
func (c *Cache) RefreshFromFeed(ctx context.Context, feed PriceFeed) (int, error) {
	prices, err := feed.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgFeedFetchFmt, err)
	}
	return c.Refresh(ctx, prices), nil
}
