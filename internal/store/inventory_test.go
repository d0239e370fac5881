package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afjrotc/logistics/internal/kv"
	"github.com/afjrotc/logistics/internal/model"
	"github.com/afjrotc/logistics/internal/seed"
)

var fixedNow = func() time.Time { return time.Date(2025, 11, 3, 14, 30, 0, 0, time.UTC) }

func loadedInventory(t *testing.T, s kv.Store) *Inventory {
	t.Helper()
	inv := NewInventory(s, fixedNow)
	require.NoError(t, inv.Load(context.Background(), seed.Items()))
	return inv
}

func names(items []model.Item) []string {
	var out []string
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func TestInventoryLoadUsesSeedWithoutPersisting(t *testing.T) {
	m := kv.NewMemory()
	inv := loadedInventory(t, m)
	assert.Len(t, inv.List(), 8)
	assert.Equal(t, 0, m.Len())
}

func TestFilter(t *testing.T) {
	inv := loadedInventory(t, kv.NewMemory())

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"rifle over all conditions", Filter{Search: "rifle", Condition: model.ConditionAll}, []string{"Drill Rifle (Daisy)", "Air Rifle"}},
		{"search is case-insensitive", Filter{Search: "RIFLE"}, []string{"Drill Rifle (Daisy)", "Air Rifle"}},
		{"search matches holder", Filter{Search: "johnson"}, []string{"Service Dress Coat"}},
		{"search matches holder of team", Filter{Search: "drill team"}, []string{"Drill Rifle (Daisy)"}},
		{"category", Filter{Category: model.CategoryBlues}, []string{"Service Dress Coat", "Flight Cap"}},
		{"category and search", Filter{Search: "cap", Category: model.CategoryOCP}, []string{"OCP Patrol Cap"}},
		{"condition", Filter{Condition: model.ConditionNeedsRepair}, []string{"Folding Table"}},
		{"condition and category disagree", Filter{Category: model.CategoryBlues, Condition: model.ConditionNeedsRepair}, nil},
		{"no match", Filter{Search: "parachute"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(inv.Filter(tt.filter)))
		})
	}
}

func TestFilterEmptyMatchesAllInOrder(t *testing.T) {
	inv := loadedInventory(t, kv.NewMemory())
	assert.Equal(t, names(inv.List()), names(inv.Filter(Filter{Condition: model.ConditionAll})))
}

func TestStatistics(t *testing.T) {
	inv := loadedInventory(t, kv.NewMemory())

	s := inv.Statistics()
	assert.Equal(t, 154, s.Total)
	assert.Equal(t, 34, s.InUse)
	assert.Equal(t, 1, s.NeedsRepair)
	// Drill Rifle: 0 available.
	assert.Equal(t, 1, s.LowStock)
}

func TestStatisticsLowStockIndependentOfOrder(t *testing.T) {
	items := seed.Items()
	items[1].InUse = 22 // Flight Cap: 3 available
	items[4].InUse = 4  // Air Rifle: 4 available

	want := 0
	for _, item := range items {
		if item.Quantity-item.InUse < 5 {
			want++
		}
	}

	forward := NewInventory(kv.NewMemory(), fixedNow)
	require.NoError(t, forward.Load(context.Background(), items))

	reversed := make([]model.Item, len(items))
	for i, item := range items {
		reversed[len(items)-1-i] = item
	}
	backward := NewInventory(kv.NewMemory(), fixedNow)
	require.NoError(t, backward.Load(context.Background(), reversed))

	assert.Equal(t, want, forward.Statistics().LowStock)
	assert.Equal(t, forward.Statistics(), backward.Statistics())
	assert.Equal(t, 3, want)
}

func TestCategoryTotals(t *testing.T) {
	inv := loadedInventory(t, kv.NewMemory())

	assert.Equal(t, Totals{Total: 40, InUse: 3}, inv.CategoryTotals(model.CategoryBlues))
	assert.Equal(t, Totals{}, inv.CategoryTotals("unknown"))

	summaries := inv.CategorySummaries()
	require.Len(t, summaries, len(model.Categories()))
	assert.Equal(t, model.CategoryBlues, summaries[0].ID)
	assert.Equal(t, 40, summaries[0].Total)
}

func TestUpsertCreatesAndUpdates(t *testing.T) {
	ctx := context.Background()
	m := kv.NewMemory()
	inv := loadedInventory(t, m)

	created, isNew, err := inv.Upsert(ctx, model.Item{
		Category:  model.CategoryField,
		Name:      "Canteen",
		Quantity:  30,
		Condition: model.ConditionNew,
		Location:  "Garage",
	})
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, int64(9), created.ID)
	assert.Equal(t, "2025-11-03", created.LastUpdated)

	created.Quantity = 28
	updated, isNew, err := inv.Upsert(ctx, created)
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, 28, updated.Quantity)
	assert.Len(t, inv.List(), 9)

	reloaded := loadedInventory(t, m)
	assert.Equal(t, inv.List(), reloaded.List())
}

func TestUpsertRejectsInUseAboveQuantity(t *testing.T) {
	inv := loadedInventory(t, kv.NewMemory())
	item, _ := inv.Get(1)
	item.InUse = item.Quantity + 1

	_, _, err := inv.Upsert(context.Background(), item)
	assert.ErrorIs(t, err, model.ErrInvalidItem)

	unchanged, _ := inv.Get(1)
	assert.Equal(t, 3, unchanged.InUse)
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	inv := loadedInventory(t, kv.NewMemory())

	_, err := inv.Remove(ctx, 8, false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)

	removed, err := inv.Remove(ctx, 8, Confirmed)
	require.NoError(t, err)
	assert.Equal(t, "Folding Table", removed.Name)
	_, ok := inv.Get(8)
	assert.False(t, ok)

	_, err = inv.Remove(ctx, 8, Confirmed)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckoutAndReturn(t *testing.T) {
	ctx := context.Background()
	inv := loadedInventory(t, kv.NewMemory())

	item, err := inv.Checkout(ctx, 5, 3, "Rifle Team", "2025-12-01")
	require.NoError(t, err)
	assert.Equal(t, 3, item.InUse)
	assert.Equal(t, "Rifle Team", item.Holder())
	require.NotNil(t, item.DueDate)
	assert.Equal(t, "2025-12-01", *item.DueDate)

	_, err = inv.Checkout(ctx, 5, 6, "Rifle Team", "")
	assert.ErrorIs(t, err, ErrInsufficientStock)

	_, err = inv.Return(ctx, 5, 4)
	assert.ErrorIs(t, err, model.ErrInvalidItem)

	item, err = inv.Return(ctx, 5, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, item.InUse)
	assert.Nil(t, item.AssignedTo)
	assert.Nil(t, item.DueDate)
}

func TestCheckoutValidation(t *testing.T) {
	ctx := context.Background()
	inv := loadedInventory(t, kv.NewMemory())

	_, err := inv.Checkout(ctx, 5, 1, "", "")
	assert.ErrorIs(t, err, ErrMissingField)
	_, err = inv.Checkout(ctx, 5, 0, "Rifle Team", "")
	assert.ErrorIs(t, err, model.ErrInvalidItem)
	_, err = inv.Checkout(ctx, 5, 1, "Rifle Team", "next week")
	assert.ErrorIs(t, err, model.ErrInvalidItem)
	_, err = inv.Checkout(ctx, 99, 1, "Rifle Team", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetCondition(t *testing.T) {
	ctx := context.Background()
	inv := loadedInventory(t, kv.NewMemory())

	item, err := inv.SetCondition(ctx, 8, model.ConditionGood)
	require.NoError(t, err)
	assert.Equal(t, model.ConditionGood, item.Condition)
	assert.Equal(t, 0, inv.Statistics().NeedsRepair)

	_, err = inv.SetCondition(ctx, 8, model.ConditionAll)
	assert.ErrorIs(t, err, model.ErrInvalidItem)
}

func TestMutationPersistFailureKeepsChange(t *testing.T) {
	m := kv.NewMemory()
	inv := loadedInventory(t, m)
	m.SetFailing(true)

	item, err := inv.Checkout(context.Background(), 2, 5, "Flight 1", "")
	assert.ErrorIs(t, err, ErrPersist)
	assert.Equal(t, 5, item.InUse)

	got, _ := inv.Get(2)
	assert.Equal(t, 5, got.InUse)
}
