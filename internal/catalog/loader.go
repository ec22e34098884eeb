package catalog

import (
	"fmt"

	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/logger"
	"github.com/osse101/FleaMarket_Go/internal/validation"
)

// ItemsFile is the on-disk layout of configs/catalog/items.json.
type ItemsFile struct {
	Version     string                `json:"version"`
	Description string                `json:"description"`
	Items       []domain.ItemTemplate `json:"items"`
}

// PresetsFile is the on-disk layout of configs/catalog/presets.json.
type PresetsFile struct {
	Version string          `json:"version"`
	Presets []domain.Preset `json:"presets"`
}

// Paths locates the catalog files and their schemas.
type Paths struct {
	Items         string
	ItemsSchema   string
	Presets       string
	PresetsSchema string
}

// Load validates both files against their schemas and builds a Store.
func Load(v validation.SchemaValidator, p Paths) (*Store, error) {
	var items ItemsFile
	if err := v.LoadFile(p.Items, p.ItemsSchema, &items); err != nil {
		return nil, fmt.Errorf(ErrMsgLoadItemsFmt, err)
	}

	var presets PresetsFile
	if err := v.LoadFile(p.Presets, p.PresetsSchema, &presets); err != nil {
		return nil, fmt.Errorf(ErrMsgLoadPresetsFmt, err)
	}

	store, err := NewStore(items.Items, presets.Presets)
	if err != nil {
		return nil, err
	}

	logger.Info(LogMsgCatalogLoaded,
		"templates", len(items.Items),
		"presets", len(presets.Presets),
		"version", items.Version)
	return store, nil
}
