package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afjrotc/logistics/internal/store"
)

type fixedStats store.Stats

func (f fixedStats) Statistics() store.Stats { return store.Stats(f) }

func TestInventoryCollector(t *testing.T) {
	m := New()
	m.RegisterInventory(fixedStats{Total: 154, InUse: 34, LowStock: 1, NeedsRepair: 1})

	expected := `
# HELP logistics_inventory_items Total quantity of all items.
# TYPE logistics_inventory_items gauge
logistics_inventory_items 154
# HELP logistics_inventory_in_use Quantity currently checked out.
# TYPE logistics_inventory_in_use gauge
logistics_inventory_in_use 34
`
	err := testutil.GatherAndCompare(m.Registry, strings.NewReader(expected),
		"logistics_inventory_items", "logistics_inventory_in_use")
	assert.NoError(t, err)
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.HTTPRequests.WithLabelValues("GET", "/api/items", "200").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `logistics_http_requests_total{method="GET",route="/api/items",status="200"} 1`)
}
