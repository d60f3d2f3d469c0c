package pox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sdnlab/pox-mcp/pkg/session"
)

// Manager wraps the raw RPC client with typed operations over the
// controller's OpenFlow web service. Both transport and
// controller-reported errors degrade to the operation's empty default;
// callers that need to tell an error apart from an empty network can go
// through Client.Execute directly.
type Manager struct {
	client *Client
	store  *session.Store
	log    zerolog.Logger
	now    func() time.Time
}

// NewManager creates a facade over client, recording accepted flow-table
// configurations into store.
func NewManager(client *Client, store *session.Store, log zerolog.Logger) *Manager {
	return &Manager{
		client: client,
		store:  store,
		log:    log,
		now:    time.Now,
	}
}

// GetSwitches returns all connected switches as opaque descriptors. An
// unreachable or failing controller yields an empty slice.
func (m *Manager) GetSwitches(ctx context.Context) []map[string]any {
	outcome := m.client.Execute(ctx, "get_switches", nil)

	var switches []map[string]any
	m.unwrap(outcome, "get_switches", &switches)
	if switches == nil {
		switches = []map[string]any{}
	}
	return switches
}

// GetSwitchDesc returns the controller's description of one switch.
func (m *Manager) GetSwitchDesc(ctx context.Context, dpid string) map[string]any {
	outcome := m.client.Execute(ctx, "get_switch_desc", map[string]any{"dpid": dpid})

	desc := map[string]any{}
	m.unwrap(outcome, "get_switch_desc", &desc)
	return desc
}

// GetFlowStats returns flow statistics for a switch. The optional
// filters are included in the request only when set: a nil/empty match
// and empty table/port strings are treated as absent.
func (m *Manager) GetFlowStats(ctx context.Context, dpid string, match map[string]any, tableID, outPort string) []map[string]any {
	params := map[string]any{"dpid": dpid}
	if len(match) > 0 {
		params["match"] = match
	}
	if tableID != "" {
		params["table_id"] = tableID
	}
	if outPort != "" {
		params["out_port"] = outPort
	}

	outcome := m.client.Execute(ctx, "get_flow_stats", params)

	var stats []map[string]any
	m.unwrap(outcome, "get_flow_stats", &stats)
	if stats == nil {
		stats = []map[string]any{}
	}
	return stats
}

// SetTable replaces the flow table on a switch. The flow entries are
// passed through verbatim; nothing validates their internal structure.
// When the controller accepts the call, the configuration is appended to
// the session history with a wall-clock timestamp.
func (m *Manager) SetTable(ctx context.Context, dpid string, flows []map[string]any) map[string]any {
	outcome := m.client.Execute(ctx, "set_table", map[string]any{"dpid": dpid, "flows": flows})

	if !outcome.Failed() {
		m.store.AppendConfig(session.AppliedConfig{
			ID:        uuid.NewString(),
			DPID:      dpid,
			Flows:     flows,
			Timestamp: m.now().UTC().Format(time.RFC3339),
		})
	}

	result := map[string]any{}
	m.unwrap(outcome, "set_table", &result)
	return result
}

// unwrap decodes the outcome's result payload into dst, leaving dst
// untouched on any failure so the caller's default survives.
func (m *Manager) unwrap(outcome *Outcome, method string, dst any) {
	if outcome.Failed() {
		m.log.Warn().
			Str("method", method).
			Str("error", outcome.Error).
			Str("details", outcome.Details).
			Msg("controller call failed, returning empty result")
		return
	}
	if len(outcome.Result) == 0 || string(outcome.Result) == "null" {
		return
	}
	if err := json.Unmarshal(outcome.Result, dst); err != nil {
		m.log.Warn().Err(err).Str("method", method).Msg("unexpected result shape")
	}
}
