package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FleaMarket_Go/internal/domain"
	"github.com/osse101/FleaMarket_Go/internal/validation"
)

const (
	tplPM       = "5448bd6b4bdc2dfc2f8b4569"
	tplPMGrip   = "6374a822e629013b9c0645c8"
	tplHandgun  = "5447b5cf4bdc2d65278b4567"
	tplBolts    = "57347c5b245977448d35f6e1"
	tplRootNode = "54009119af1c881c07000029"
)

func repoPaths() Paths {
	return Paths{
		Items:         "../../configs/catalog/items.json",
		ItemsSchema:   "../../configs/schemas/items.schema.json",
		Presets:       "../../configs/catalog/presets.json",
		PresetsSchema: "../../configs/schemas/presets.schema.json",
	}
}

func TestLoad_ShippedCatalog(t *testing.T) {
	store, err := Load(validation.NewSchemaValidator(), repoPaths())
	require.NoError(t, err)

	pm, ok := store.Template(tplPM)
	require.True(t, ok)
	assert.True(t, pm.IsWeapon)
	assert.Equal(t, 1, pm.MaxStack())

	price, ok := store.HandbookPrice(tplBolts)
	require.True(t, ok)
	assert.Equal(t, 12000.0, price)

	presets := store.PresetsForWeapon(tplPM)
	require.Len(t, presets, 2)
	assert.True(t, presets[0].IsDefault())
	assert.True(t, store.IsWeaponPresetRoot(tplPM))
	assert.False(t, store.IsWeaponPresetRoot(tplBolts))
}

func TestIsOfBaseClass(t *testing.T) {
	store, err := Load(validation.NewSchemaValidator(), repoPaths())
	require.NoError(t, err)

	assert.True(t, store.IsOfBaseClass(tplPM, domain.BaseClassWeapon))
	assert.True(t, store.IsOfBaseClass(tplPM, tplHandgun))
	assert.True(t, store.IsOfBaseClass(tplPM, tplRootNode))
	assert.True(t, store.IsOfBaseClass(domain.CurrencyDollars, domain.BaseClassMoney))
	assert.False(t, store.IsOfBaseClass(tplBolts, domain.BaseClassWeapon))
	assert.False(t, store.IsOfBaseClass("missing", domain.BaseClassWeapon))
}

func TestPresetsForWeapon_ReturnsCopies(t *testing.T) {
	store, err := Load(validation.NewSchemaValidator(), repoPaths())
	require.NoError(t, err)

	first := store.PresetsForWeapon(tplPM)
	first[0].Items[1].TemplateID = "mutated"

	second := store.PresetsForWeapon(tplPM)
	assert.Equal(t, tplPMGrip, second[0].Items[1].TemplateID)
}

func TestNewStore_Rejects(t *testing.T) {
	node := domain.ItemTemplate{ID: "n", Kind: domain.TemplateKindNode}
	item := domain.ItemTemplate{ID: "a", ParentID: "n", Kind: domain.TemplateKindItem}

	tests := []struct {
		name      string
		templates []domain.ItemTemplate
		presets   []domain.Preset
		errMsg    string
	}{
		{"duplicate template", []domain.ItemTemplate{node, item, item}, nil, ErrMsgDuplicateTemplate},
		{"dangling parent", []domain.ItemTemplate{item}, nil, ErrMsgUnknownParent},
		{"empty preset", []domain.ItemTemplate{node, item}, []domain.Preset{{ID: "p"}}, ErrMsgPresetNoItems},
		{"preset unknown tpl", []domain.ItemTemplate{node, item},
			[]domain.Preset{{ID: "p", Items: []domain.ItemStack{{ID: "x", TemplateID: "zzz"}}}}, ErrMsgPresetUnknownTpl},
		{"duplicate preset", []domain.ItemTemplate{node, item},
			[]domain.Preset{
				{ID: "p", Items: []domain.ItemStack{{ID: "x", TemplateID: "a"}}},
				{ID: "p", Items: []domain.ItemStack{{ID: "y", TemplateID: "a"}}},
			}, ErrMsgDuplicatePreset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStore(tt.templates, tt.presets)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestHandbookPrice_NodeHasNone(t *testing.T) {
	store, err := NewStore([]domain.ItemTemplate{{ID: "n", Kind: domain.TemplateKindNode}}, nil)
	require.NoError(t, err)

	_, ok := store.HandbookPrice("n")
	assert.False(t, ok)
	assert.Len(t, store.Templates(), 1)
}
