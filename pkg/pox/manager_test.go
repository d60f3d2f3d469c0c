package pox

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdnlab/pox-mcp/pkg/session"
)

func newTestManager(t *testing.T) (*Manager, *stubController, *session.Store) {
	t.Helper()

	stub := newStubController(t)
	store := session.NewStore()
	client := newTestClient(stub.url())
	return NewManager(client, store, zerolog.Nop()), stub, store
}

func TestManagerGetSwitches(t *testing.T) {
	mgr, stub, _ := newTestManager(t)

	t.Run("returns switch descriptors verbatim", func(t *testing.T) {
		stub.respond(http.StatusOK, `{"result": [{"dpid": "00:00:00:00:00:01"}]}`)

		switches := mgr.GetSwitches(context.Background())
		require.Len(t, switches, 1)
		assert.Equal(t, map[string]any{"dpid": "00:00:00:00:00:01"}, switches[0])
	})

	t.Run("empty on HTTP failure", func(t *testing.T) {
		stub.respond(http.StatusInternalServerError, "boom")

		switches := mgr.GetSwitches(context.Background())
		assert.NotNil(t, switches)
		assert.Empty(t, switches)
	})

	t.Run("empty on controller error", func(t *testing.T) {
		stub.respond(http.StatusOK, `{"error": "oops", "details": "bad day"}`)

		assert.Empty(t, mgr.GetSwitches(context.Background()))
	})

	t.Run("empty when result is absent", func(t *testing.T) {
		stub.respond(http.StatusOK, `{}`)

		assert.Empty(t, mgr.GetSwitches(context.Background()))
	})
}

func TestManagerGetSwitchDesc(t *testing.T) {
	mgr, stub, _ := newTestManager(t)
	stub.respond(http.StatusOK, `{"result": {"dpid": "1", "hw_desc": "Open vSwitch"}}`)

	desc := mgr.GetSwitchDesc(context.Background(), "1")
	assert.Equal(t, "Open vSwitch", desc["hw_desc"])

	req := stub.lastRequest()
	assert.Equal(t, "get_switch_desc", req.payload["method"])
	assert.Equal(t, map[string]any{"dpid": "1"}, req.payload["params"])

	t.Run("empty map on failure", func(t *testing.T) {
		stub.respond(http.StatusInternalServerError, "boom")

		desc := mgr.GetSwitchDesc(context.Background(), "1")
		assert.NotNil(t, desc)
		assert.Empty(t, desc)
	})
}

func TestManagerGetFlowStats(t *testing.T) {
	mgr, stub, _ := newTestManager(t)
	stub.respond(http.StatusOK, `{"result": []}`)

	t.Run("omits absent optional filters", func(t *testing.T) {
		mgr.GetFlowStats(context.Background(), "1", nil, "", "")

		req := stub.lastRequest()
		assert.Equal(t, map[string]any{"dpid": "1"}, req.payload["params"])
	})

	t.Run("includes provided filters", func(t *testing.T) {
		match := map[string]any{"dl_type": "0x0800"}
		mgr.GetFlowStats(context.Background(), "1", match, "0", "2")

		req := stub.lastRequest()
		assert.Equal(t, map[string]any{
			"dpid":     "1",
			"match":    map[string]any{"dl_type": "0x0800"},
			"table_id": "0",
			"out_port": "2",
		}, req.payload["params"])
	})

	t.Run("returns entries", func(t *testing.T) {
		stub.respond(http.StatusOK, `{"result": [{"match": {}, "actions": [], "packet_count": 12}]}`)

		stats := mgr.GetFlowStats(context.Background(), "1", nil, "", "")
		require.Len(t, stats, 1)
		assert.Equal(t, float64(12), stats[0]["packet_count"])
	})
}

func TestManagerSetTable(t *testing.T) {
	flows := []map[string]any{
		{
			"match":   map[string]any{},
			"actions": []any{map[string]any{"type": "OFPAT_OUTPUT", "port": "OFPP_ALL"}},
		},
	}

	t.Run("success appends exactly one config", func(t *testing.T) {
		mgr, stub, store := newTestManager(t)
		stub.respond(http.StatusOK, `{"result": {"status": "ok"}}`)

		result := mgr.SetTable(context.Background(), "1", flows)
		assert.Equal(t, "ok", result["status"])

		configs := store.Configs()
		require.Len(t, configs, 1)
		assert.Equal(t, "1", configs[0].DPID)
		assert.Equal(t, flows, configs[0].Flows)
		assert.NotEmpty(t, configs[0].ID)

		ts, err := time.Parse(time.RFC3339, configs[0].Timestamp)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), ts, 5*time.Second)

		req := stub.lastRequest()
		assert.Equal(t, "set_table", req.payload["method"])
	})

	t.Run("controller error leaves history unchanged", func(t *testing.T) {
		mgr, stub, store := newTestManager(t)
		stub.respond(http.StatusOK, `{"error": "invalid flow", "details": "missing actions"}`)

		result := mgr.SetTable(context.Background(), "1", flows)
		assert.NotNil(t, result)
		assert.Empty(t, result)
		assert.Empty(t, store.Configs())
	})

	t.Run("transport error leaves history unchanged", func(t *testing.T) {
		mgr, stub, store := newTestManager(t)
		stub.respond(http.StatusBadGateway, "upstream sad")

		mgr.SetTable(context.Background(), "1", flows)
		assert.Empty(t, store.Configs())
	})
}
