package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/afjrotc/logistics/internal/kv"
	"github.com/afjrotc/logistics/internal/model"
)

// Filter selects items. Empty fields match everything; Condition also
// accepts model.ConditionAll.
type Filter struct {
	Search    string
	Category  string
	Condition string
}

// Stats are the dashboard totals.
type Stats struct {
	Total       int `json:"total"`
	InUse       int `json:"inUse"`
	LowStock    int `json:"lowStock"`
	NeedsRepair int `json:"needsRepair"`
}

// Totals are the quantity sums of a category.
type Totals struct {
	Total int `json:"total"`
	InUse int `json:"inUse"`
}

// CategorySummary pairs a category with its totals.
type CategorySummary struct {
	model.Category
	Totals
}

// Inventory owns the item collection. Derived values are recomputed on every
// call. It is not safe for concurrent use.
type Inventory struct {
	kv    kv.Store
	now   func() time.Time
	items []model.Item
}

// NewInventory returns an empty inventory persisted to s. now stamps
// LastUpdated; nil means time.Now.
func NewInventory(s kv.Store, now func() time.Time) *Inventory {
	if now == nil {
		now = time.Now
	}
	return &Inventory{kv: s, now: now}
}

// Load reads the persisted items. When none exist yet, seed is used; it is
// written on the first mutation.
func (inv *Inventory) Load(ctx context.Context, seed []model.Item) error {
	var items []model.Item
	found, err := kv.GetJSON(ctx, inv.kv, kv.KeyItems, &items)
	if err != nil {
		inv.items = seed
		return fmt.Errorf("loading items: %w", err)
	}
	if !found {
		items = seed
	}
	inv.items = items
	return nil
}

// Reset replaces the whole collection and persists it.
func (inv *Inventory) Reset(ctx context.Context, items []model.Item) error {
	inv.items = items
	return inv.save(ctx)
}

// List returns all items in insertion order.
func (inv *Inventory) List() []model.Item {
	out := make([]model.Item, len(inv.items))
	for i, item := range inv.items {
		out[i] = item.Clone()
	}
	return out
}

// Get returns the item with the given id.
func (inv *Inventory) Get(id int64) (model.Item, bool) {
	i := inv.index(id)
	if i < 0 {
		return model.Item{}, false
	}
	return inv.items[i].Clone(), true
}

func (inv *Inventory) index(id int64) int {
	for i, item := range inv.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Filter returns the items matching every predicate of f. The search term
// matches the name or the holder case-insensitively; an item without a
// holder only matches by name.
func (inv *Inventory) Filter(f Filter) []model.Item {
	search := strings.TrimSpace(f.Search)
	var out []model.Item
	for _, item := range inv.items {
		if search != "" && !containsFold(item.Name, search) &&
			(item.AssignedTo == nil || !containsFold(*item.AssignedTo, search)) {
			continue
		}
		if f.Category != "" && item.Category != f.Category {
			continue
		}
		if f.Condition != "" && f.Condition != model.ConditionAll && item.Condition != f.Condition {
			continue
		}
		out = append(out, item.Clone())
	}
	return out
}

// Statistics computes the dashboard totals.
func (inv *Inventory) Statistics() Stats {
	var s Stats
	for _, item := range inv.items {
		s.Total += item.Quantity
		s.InUse += item.InUse
		if item.LowStock() {
			s.LowStock++
		}
		if item.Condition == model.ConditionNeedsRepair {
			s.NeedsRepair++
		}
	}
	return s
}

// CategoryTotals sums quantity and in-use over one category.
func (inv *Inventory) CategoryTotals(category string) Totals {
	var t Totals
	for _, item := range inv.items {
		if item.Category == category {
			t.Total += item.Quantity
			t.InUse += item.InUse
		}
	}
	return t
}

// CategorySummaries returns the totals of every category in display order.
func (inv *Inventory) CategorySummaries() []CategorySummary {
	cats := model.Categories()
	out := make([]CategorySummary, len(cats))
	for i, c := range cats {
		out[i] = CategorySummary{Category: c, Totals: inv.CategoryTotals(c.ID)}
	}
	return out
}

// Upsert validates item and stores it, replacing the item with the same id.
// A zero id allocates the next free one. It reports whether the item is new.
func (inv *Inventory) Upsert(ctx context.Context, item model.Item) (model.Item, bool, error) {
	if err := item.Validate(); err != nil {
		return model.Item{}, false, err
	}

	item = item.Clone()
	item.LastUpdated = inv.today()

	i := -1
	if item.ID != 0 {
		i = inv.index(item.ID)
	} else {
		item.ID = inv.nextID()
	}

	created := i < 0
	if created {
		inv.items = append(inv.items, item)
	} else {
		inv.items[i] = item
	}
	return item.Clone(), created, inv.save(ctx)
}

// Remove deletes the item with the given id. It requires an explicit
// confirmation.
func (inv *Inventory) Remove(ctx context.Context, id int64, confirm Confirmation) (model.Item, error) {
	if !confirm {
		return model.Item{}, ErrConfirmationRequired
	}
	i := inv.index(id)
	if i < 0 {
		return model.Item{}, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}

	removed := inv.items[i]
	inv.items = append(inv.items[:i:i], inv.items[i+1:]...)
	return removed, inv.save(ctx)
}

// Checkout assigns quantity units of an item to holder.
func (inv *Inventory) Checkout(ctx context.Context, id int64, quantity int, holder, dueDate string) (model.Item, error) {
	holder = strings.TrimSpace(holder)
	if holder == "" {
		return model.Item{}, fmt.Errorf("%w: assigned to", ErrMissingField)
	}
	if quantity <= 0 {
		return model.Item{}, fmt.Errorf("%w: quantity must be positive", model.ErrInvalidItem)
	}
	if dueDate != "" {
		if _, err := time.Parse(model.DateLayout, dueDate); err != nil {
			return model.Item{}, fmt.Errorf("%w: due date %q", model.ErrInvalidItem, dueDate)
		}
	}

	return inv.mutate(ctx, id, func(item *model.Item) error {
		if item.InUse+quantity > item.Quantity {
			return fmt.Errorf("%w: %d available", ErrInsufficientStock, item.Available())
		}
		item.InUse += quantity
		item.AssignedTo = &holder
		if dueDate != "" {
			item.DueDate = &dueDate
		}
		return nil
	})
}

// Return checks quantity units of an item back in. When nothing remains in
// use the holder and due date are cleared.
func (inv *Inventory) Return(ctx context.Context, id int64, quantity int) (model.Item, error) {
	if quantity <= 0 {
		return model.Item{}, fmt.Errorf("%w: quantity must be positive", model.ErrInvalidItem)
	}

	return inv.mutate(ctx, id, func(item *model.Item) error {
		if quantity > item.InUse {
			return fmt.Errorf("%w: only %d in use", model.ErrInvalidItem, item.InUse)
		}
		item.InUse -= quantity
		if item.InUse == 0 {
			item.AssignedTo = nil
			item.DueDate = nil
		}
		return nil
	})
}

// SetCondition changes an item's condition.
func (inv *Inventory) SetCondition(ctx context.Context, id int64, condition string) (model.Item, error) {
	if !model.ValidCondition(condition) {
		return model.Item{}, fmt.Errorf("%w: unknown condition %q", model.ErrInvalidItem, condition)
	}
	return inv.mutate(ctx, id, func(item *model.Item) error {
		item.Condition = condition
		return nil
	})
}

// mutate applies fn to a copy of the item and commits it if fn succeeds.
func (inv *Inventory) mutate(ctx context.Context, id int64, fn func(*model.Item) error) (model.Item, error) {
	i := inv.index(id)
	if i < 0 {
		return model.Item{}, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}

	item := inv.items[i].Clone()
	if err := fn(&item); err != nil {
		return model.Item{}, err
	}
	item.LastUpdated = inv.today()
	inv.items[i] = item
	return item.Clone(), inv.save(ctx)
}

func (inv *Inventory) nextID() int64 {
	var highest int64
	for _, item := range inv.items {
		if item.ID > highest {
			highest = item.ID
		}
	}
	return highest + 1
}

func (inv *Inventory) today() string {
	return inv.now().Format(model.DateLayout)
}

func (inv *Inventory) save(ctx context.Context) error {
	if err := kv.SetJSON(ctx, inv.kv, kv.KeyItems, inv.items); err != nil {
		return persistErr(err)
	}
	return nil
}
