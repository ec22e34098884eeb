package profile

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/FleaMarket_Go/internal/catalog"
	"github.com/osse101/FleaMarket_Go/internal/domain"
)

// Inventory is a slot-capacity stash per profile. There is no spatial packing: a profile
// holds at most maxRoots top-level stacks and every item must have a known template.
type Inventory struct {
	mu       sync.RWMutex
	items    map[string][]domain.ItemStack
	catalog  catalog.Catalog
	maxRoots int
}

// NewInventory creates an inventory. maxRoots <= 0 uses DefaultMaxRootStacks.
func NewInventory(cat catalog.Catalog, maxRoots int) *Inventory {
	if maxRoots <= 0 {
		maxRoots = DefaultMaxRootStacks
	}
	return &Inventory{
		items:    make(map[string][]domain.ItemStack),
		catalog:  cat,
		maxRoots: maxRoots,
	}
}

// Place puts an assembly into the profile's stash. items[0] is the root and is reparented
// to the stash; the rest keep their parents.
func (inv *Inventory) Place(ctx context.Context, profileID string, items []domain.ItemStack) error {
	if len(items) == 0 {
		return fmt.Errorf(ErrMsgProfileFmt, domain.ErrInvalidInput, ErrMsgBadAssembly)
	}
	for i := range items {
		if _, ok := inv.catalog.Template(items[i].TemplateID); !ok {
			return fmt.Errorf(ErrMsgUnknownTplFmt, domain.ErrIncompatibleItem, items[i].TemplateID)
		}
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	held := inv.items[profileID]
	taken := make(map[string]struct{}, len(held))
	for i := range held {
		taken[held[i].ID] = struct{}{}
	}
	for i := range items {
		if _, dup := taken[items[i].ID]; dup {
			return fmt.Errorf(ErrMsgDuplicateItemFmt, domain.ErrInvalidInput, items[i].ID, profileID)
		}
	}
	if roots := countRoots(held); roots >= inv.maxRoots {
		return fmt.Errorf(ErrMsgStashFullFmt, domain.ErrNoSpace, profileID, roots, inv.maxRoots)
	}

	placed := domain.CloneItems(items)
	placed[0].ParentID = domain.RootParentStash
	placed[0].SlotID = domain.RootParentStash
	inv.items[profileID] = append(held, placed...)
	return nil
}

// Find returns the item and everything nested beneath it.
func (inv *Inventory) Find(profileID, itemID string) ([]domain.ItemStack, bool) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	found := domain.FindWithChildren(inv.items[profileID], itemID)
	if found == nil {
		return nil, false
	}
	return domain.CloneItems(found), true
}

// Remove takes an item and its children out of the stash and returns them.
func (inv *Inventory) Remove(ctx context.Context, profileID, itemID string) ([]domain.ItemStack, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	held := inv.items[profileID]
	found := domain.FindWithChildren(held, itemID)
	if found == nil {
		return nil, fmt.Errorf(ErrMsgItemFmt, domain.ErrNotFound, profileID, itemID)
	}

	drop := make(map[string]struct{}, len(found))
	for i := range found {
		drop[found[i].ID] = struct{}{}
	}
	kept := make([]domain.ItemStack, 0, len(held)-len(found))
	for i := range held {
		if _, ok := drop[held[i].ID]; !ok {
			kept = append(kept, held[i])
		}
	}
	inv.items[profileID] = kept
	return domain.CloneItems(found), nil
}

// ItemIDs returns the set of ids in the profile's stash.
func (inv *Inventory) ItemIDs(profileID string) map[string]struct{} {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	out := make(map[string]struct{}, len(inv.items[profileID]))
	for i := range inv.items[profileID] {
		out[inv.items[profileID][i].ID] = struct{}{}
	}
	return out
}

// Items returns a copy of the profile's stash.
func (inv *Inventory) Items(profileID string) []domain.ItemStack {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return domain.CloneItems(inv.items[profileID])
}

// Units counts stack units of a template among the stash's root stacks.
func (inv *Inventory) Units(profileID, tpl string) int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	n := 0
	for i := range inv.items[profileID] {
		it := &inv.items[profileID][i]
		if it.TemplateID == tpl && it.ParentID == domain.RootParentStash {
			n += it.StackCount()
		}
	}
	return n
}

// TakeUnits removes count units of a template from root stacks, splitting the last stack
// touched. Nothing is removed when fewer than count units are held.
func (inv *Inventory) TakeUnits(profileID, tpl string, count int) bool {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	held := inv.items[profileID]
	have := 0
	for i := range held {
		if held[i].TemplateID == tpl && held[i].ParentID == domain.RootParentStash {
			have += held[i].StackCount()
		}
	}
	if have < count {
		return false
	}

	emptied := make(map[string]struct{})
	for i := range held {
		if count == 0 {
			break
		}
		it := &held[i]
		if it.TemplateID != tpl || it.ParentID != domain.RootParentStash {
			continue
		}
		n := it.StackCount()
		if n <= count {
			count -= n
			emptied[it.ID] = struct{}{}
			continue
		}
		it.SetStackCount(n - count)
		count = 0
	}

	if len(emptied) > 0 {
		kept := held[:0]
		for i := range held {
			if _, gone := emptied[held[i].ID]; gone {
				continue
			}
			if _, gone := emptied[held[i].ParentID]; gone {
				continue
			}
			kept = append(kept, held[i])
		}
		inv.items[profileID] = kept
	}
	return true
}

func countRoots(items []domain.ItemStack) int {
	n := 0
	for i := range items {
		if items[i].ParentID == domain.RootParentStash {
			n++
		}
	}
	return n
}
