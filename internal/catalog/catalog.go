package catalog

import (
	"fmt"
	"sort"

	"github.com/osse101/FleaMarket_Go/internal/domain"
)

// Catalog is the read-only view of item templates, handbook prices and weapon presets.
type Catalog interface {
	Template(tpl string) (*domain.ItemTemplate, bool)
	Templates() []domain.ItemTemplate
	HandbookPrice(tpl string) (float64, bool)
	PresetsForWeapon(tpl string) []domain.Preset
	IsOfBaseClass(tpl, base string) bool
}

// Store is an in-memory Catalog. It is immutable after construction.
type Store struct {
	templates map[string]domain.ItemTemplate
	presets   map[string][]domain.Preset
}

// NewStore indexes templates and presets, rejecting duplicates and dangling references.
func NewStore(templates []domain.ItemTemplate, presets []domain.Preset) (*Store, error) {
	s := &Store{
		templates: make(map[string]domain.ItemTemplate, len(templates)),
		presets:   make(map[string][]domain.Preset),
	}

	for _, t := range templates {
		if _, dup := s.templates[t.ID]; dup {
			return nil, fmt.Errorf(ErrMsgInvalidEntryFmt, domain.ErrInvalidInput, ErrMsgDuplicateTemplate, t.ID)
		}
		s.templates[t.ID] = t
	}
	for _, t := range templates {
		if t.ParentID == "" {
			continue
		}
		if _, ok := s.templates[t.ParentID]; !ok {
			return nil, fmt.Errorf(ErrMsgInvalidEntryFmt, domain.ErrInvalidInput, ErrMsgUnknownParent, t.ID)
		}
	}

	seen := make(map[string]bool, len(presets))
	for _, p := range presets {
		if seen[p.ID] {
			return nil, fmt.Errorf(ErrMsgInvalidEntryFmt, domain.ErrInvalidInput, ErrMsgDuplicatePreset, p.ID)
		}
		seen[p.ID] = true
		if len(p.Items) == 0 {
			return nil, fmt.Errorf(ErrMsgInvalidEntryFmt, domain.ErrInvalidInput, ErrMsgPresetNoItems, p.ID)
		}
		for _, it := range p.Items {
			if _, ok := s.templates[it.TemplateID]; !ok {
				return nil, fmt.Errorf(ErrMsgInvalidEntryFmt, domain.ErrInvalidInput, ErrMsgPresetUnknownTpl, p.ID)
			}
		}
		weapon := p.WeaponTemplateID()
		s.presets[weapon] = append(s.presets[weapon], p)
	}

	return s, nil
}

func (s *Store) Template(tpl string) (*domain.ItemTemplate, bool) {
	t, ok := s.templates[tpl]
	if !ok {
		return nil, false
	}
	return &t, true
}

// Templates returns every template sorted by id.
func (s *Store) Templates() []domain.ItemTemplate {
	out := make([]domain.ItemTemplate, 0, len(s.templates))
	for _, t := range s.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) HandbookPrice(tpl string) (float64, bool) {
	t, ok := s.templates[tpl]
	if !ok || t.HandbookPrice <= 0 {
		return 0, false
	}
	return t.HandbookPrice, true
}

// PresetsForWeapon returns deep copies, in file order.
func (s *Store) PresetsForWeapon(tpl string) []domain.Preset {
	src := s.presets[tpl]
	if len(src) == 0 {
		return nil
	}
	out := make([]domain.Preset, len(src))
	for i, p := range src {
		p.Items = domain.CloneItems(p.Items)
		out[i] = p
	}
	return out
}

// IsOfBaseClass walks the parent chain of tpl looking for base. A template is its own base class.
func (s *Store) IsOfBaseClass(tpl, base string) bool {
	for depth := 0; tpl != "" && depth < len(s.templates)+1; depth++ {
		if tpl == base {
			return true
		}
		t, ok := s.templates[tpl]
		if !ok {
			return false
		}
		tpl = t.ParentID
	}
	return false
}

// IsWeaponPresetRoot reports whether the item is a weapon that has at least one preset.
func (s *Store) IsWeaponPresetRoot(tpl string) bool {
	t, ok := s.templates[tpl]
	return ok && t.IsWeapon && len(s.presets[tpl]) > 0
}
