package domain

// TemplateKind separates catalog category nodes from concrete items.
type TemplateKind string

const (
	TemplateKindNode TemplateKind = "Node"
	TemplateKindItem TemplateKind = "Item"
)

// ItemTemplate is the read-only catalog entry for an item type.
type ItemTemplate struct {
	ID                   string       `json:"_id"`
	Name                 string       `json:"_name"`
	ParentID             string       `json:"_parent"`
	Kind                 TemplateKind `json:"_type"`
	HandbookPrice        float64      `json:"handbook_price"`
	StackMaxSize         int          `json:"stack_max_size"`
	IsWeapon             bool         `json:"is_weapon"`
	MaxDurability        float64      `json:"max_durability,omitempty"`
	MaxHpResource        float64      `json:"max_hp_resource,omitempty"`
	MaxResource          float64      `json:"max_resource,omitempty"`
	MaximumNumberOfUsage int          `json:"maximum_number_of_usage,omitempty"`
}

// IsConcrete reports whether the template is an actual item rather than a category node.
func (t *ItemTemplate) IsConcrete() bool {
	return t.Kind != TemplateKindNode
}

// MaxStack returns the stack size limit, never less than 1.
func (t *ItemTemplate) MaxStack() int {
	if t.StackMaxSize < 1 {
		return 1
	}
	return t.StackMaxSize
}

// Preset is a weapon base plus a canonical set of attached mods.
type Preset struct {
	ID           string      `json:"_id"`
	Name         string      `json:"_name"`
	Encyclopedia string      `json:"_encyclopedia,omitempty"` // set on the default preset of a weapon
	Items        []ItemStack `json:"_items"`
}

// IsDefault reports whether this preset is the weapon's canonical preset.
func (p *Preset) IsDefault() bool {
	return p.Encyclopedia != ""
}

// WeaponTemplateID returns the template of the preset's root item.
func (p *Preset) WeaponTemplateID() string {
	if len(p.Items) == 0 {
		return ""
	}
	return p.Items[0].TemplateID
}

// PriceEntry is the price knowledge for one template.
type PriceEntry struct {
	TemplateID   string `json:"tpl"`
	StaticPrice  *int   `json:"static,omitempty"`
	DynamicPrice *int   `json:"dynamic,omitempty"`
}
