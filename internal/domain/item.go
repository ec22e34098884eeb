package domain

import (
	"encoding/json"
)

// ItemStack is one item instance. Assemblies (a weapon and its mods, a backpack and its
// contents) are flat slices where children point at their parent through ParentID.
type ItemStack struct {
	ID         string `json:"_id"`
	TemplateID string `json:"_tpl"`
	ParentID   string `json:"parentId,omitempty"`
	SlotID     string `json:"slotId,omitempty"`
	Upd        *Upd   `json:"upd,omitempty"`
}

// Upd holds the mutable per-instance properties of an item.
// Only the stack and restriction fields are interpreted by the economy; the rest is
// carried through untouched except for quality valuation.
type Upd struct {
	StackObjectsCount         int  `json:"StackObjectsCount,omitempty"`
	OriginalStackObjectsCount *int `json:"OriginalStackObjectsCount,omitempty"`
	BuyRestrictionMax         *int `json:"BuyRestrictionMax,omitempty"`
	BuyRestrictionCurrent     *int `json:"BuyRestrictionCurrent,omitempty"`
	UnlimitedCount            bool `json:"UnlimitedCount,omitempty"`
	SpawnedInSession          bool `json:"SpawnedInSession,omitempty"`

	Repairable *Repairable `json:"Repairable,omitempty"`
	MedKit     *MedKit     `json:"MedKit,omitempty"`
	Key        *Key        `json:"Key,omitempty"`
	FoodDrink  *FoodDrink  `json:"FoodDrink,omitempty"`
	Resource   *Resource   `json:"Resource,omitempty"`

	// Extra keeps unknown properties so they round-trip through persistence.
	Extra map[string]json.RawMessage `json:"-"`
}

// Repairable is weapon/armor durability.
type Repairable struct {
	Durability    float64 `json:"Durability"`
	MaxDurability float64 `json:"MaxDurability"`
}

// MedKit is the remaining hp resource of a medical item.
type MedKit struct {
	HpResource float64 `json:"HpResource"`
}

// Key tracks how many times a key has been used.
type Key struct {
	NumberOfUsages int `json:"NumberOfUsages"`
}

// FoodDrink is the remaining resource of a consumable.
type FoodDrink struct {
	HpPercent float64 `json:"HpPercent"`
}

// Resource is a generic remaining-resource value (fuel, filters).
type Resource struct {
	Value float64 `json:"Value"`
}

// StackCount returns the stack count of the item, treating a missing upd as a single unit.
func (i *ItemStack) StackCount() int {
	if i.Upd == nil || i.Upd.StackObjectsCount == 0 {
		return 1
	}
	return i.Upd.StackObjectsCount
}

// SetStackCount sets the stack count, creating the upd record when needed.
func (i *ItemStack) SetStackCount(count int) {
	if i.Upd == nil {
		i.Upd = &Upd{}
	}
	i.Upd.StackObjectsCount = count
}

// HasBuyRestriction reports whether the item carries a per-buyer purchase cap.
func (i *ItemStack) HasBuyRestriction() bool {
	return i.Upd != nil && i.Upd.BuyRestrictionMax != nil
}

// Clone returns a deep copy of the item.
func (i ItemStack) Clone() ItemStack {
	out := i
	if i.Upd != nil {
		upd := *i.Upd
		upd.OriginalStackObjectsCount = cloneIntPtr(i.Upd.OriginalStackObjectsCount)
		upd.BuyRestrictionMax = cloneIntPtr(i.Upd.BuyRestrictionMax)
		upd.BuyRestrictionCurrent = cloneIntPtr(i.Upd.BuyRestrictionCurrent)
		if i.Upd.Repairable != nil {
			r := *i.Upd.Repairable
			upd.Repairable = &r
		}
		if i.Upd.MedKit != nil {
			m := *i.Upd.MedKit
			upd.MedKit = &m
		}
		if i.Upd.Key != nil {
			k := *i.Upd.Key
			upd.Key = &k
		}
		if i.Upd.FoodDrink != nil {
			f := *i.Upd.FoodDrink
			upd.FoodDrink = &f
		}
		if i.Upd.Resource != nil {
			r := *i.Upd.Resource
			upd.Resource = &r
		}
		if i.Upd.Extra != nil {
			upd.Extra = make(map[string]json.RawMessage, len(i.Upd.Extra))
			for k, v := range i.Upd.Extra {
				upd.Extra[k] = append(json.RawMessage(nil), v...)
			}
		}
		out.Upd = &upd
	}
	return out
}

// CloneItems deep-copies an assembly.
func CloneItems(items []ItemStack) []ItemStack {
	if items == nil {
		return nil
	}
	out := make([]ItemStack, len(items))
	for i := range items {
		out[i] = items[i].Clone()
	}
	return out
}

// FindWithChildren returns the item with the given id and every item nested beneath it.
// The root is always first. Returns nil when the id is not present.
func FindWithChildren(items []ItemStack, rootID string) []ItemStack {
	rootIdx := -1
	for i := range items {
		if items[i].ID == rootID {
			rootIdx = i
			break
		}
	}
	if rootIdx == -1 {
		return nil
	}

	byParent := make(map[string][]int, len(items))
	for i := range items {
		if items[i].ParentID != "" {
			byParent[items[i].ParentID] = append(byParent[items[i].ParentID], i)
		}
	}

	result := []ItemStack{items[rootIdx]}
	queue := []string{rootID}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		for _, idx := range byParent[parent] {
			result = append(result, items[idx])
			queue = append(queue, items[idx].ID)
		}
	}
	return result
}

func cloneIntPtr(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// IntPtr is a convenience for optional int fields.
func IntPtr(v int) *int {
	return &v
}

var knownUpdKeys = []string{
	"StackObjectsCount", "OriginalStackObjectsCount", "BuyRestrictionMax", "BuyRestrictionCurrent",
	"UnlimitedCount", "SpawnedInSession", "Repairable", "MedKit", "Key", "FoodDrink", "Resource",
}

// UnmarshalJSON decodes the known fields and keeps everything else in Extra.
func (u *Upd) UnmarshalJSON(data []byte) error {
	type plain Upd
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range knownUpdKeys {
		delete(raw, k)
	}
	if len(raw) > 0 {
		p.Extra = raw
	}

	*u = Upd(p)
	return nil
}

// MarshalJSON encodes the known fields and merges Extra back in.
func (u Upd) MarshalJSON() ([]byte, error) {
	type plain Upd
	data, err := json.Marshal(plain(u))
	if err != nil || len(u.Extra) == 0 {
		return data, err
	}

	merged := make(map[string]json.RawMessage, len(u.Extra)+4)
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, v := range u.Extra {
		if _, known := merged[k]; !known {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}
