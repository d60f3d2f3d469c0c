package memo

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdnlab/pox-mcp/pkg/session"
)

type fakeLister struct {
	switches []map[string]any
}

func (f *fakeLister) GetSwitches(ctx context.Context) []map[string]any {
	return f.switches
}

func TestSynthesize_Topology(t *testing.T) {
	lister := &fakeLister{switches: []map[string]any{
		{"dpid": "00:00:00:00:00:01"},
		{"ports": 4}, // no dpid
	}}

	text, err := Synthesize(context.Background(), lister, session.NewStore())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, header))
	assert.Contains(t, text, "Network Topology:\n")
	assert.Contains(t, text, "- Switch DPID: 00:00:00:00:00:01\n")
	assert.Contains(t, text, "- Switch DPID: unknown\n")
}

func TestSynthesize_EmptySectionsOmitted(t *testing.T) {
	text, err := Synthesize(context.Background(), &fakeLister{}, session.NewStore())
	require.NoError(t, err)

	assert.NotContains(t, text, "Recent Flow Configurations:")
	assert.NotContains(t, text, "Network Insights:")
}

func TestSynthesize_Insights(t *testing.T) {
	store := session.NewStore()
	store.AppendInsight("x")
	store.AppendInsight("switch 2 drops IPv6")

	text, err := Synthesize(context.Background(), &fakeLister{}, store)
	require.NoError(t, err)

	assert.Contains(t, text, "\nNetwork Insights:\n")
	assert.Contains(t, text, "- x\n")

	// Append order preserved.
	assert.Less(t, strings.Index(text, "- x"), strings.Index(text, "- switch 2 drops IPv6"))
}

func TestSynthesize_RendersLastFiveConfigs(t *testing.T) {
	store := session.NewStore()
	for i := 1; i <= 7; i++ {
		store.AppendConfig(session.AppliedConfig{
			DPID:  fmt.Sprintf("sw-%d", i),
			Flows: []map[string]any{{"match": map[string]any{}, "actions": []any{}}},
		})
	}

	text, err := Synthesize(context.Background(), &fakeLister{}, store)
	require.NoError(t, err)

	// Only the last five, renumbered 1-5 in chronological order.
	assert.NotContains(t, text, "Switch sw-1:")
	assert.NotContains(t, text, "Switch sw-2:")
	for i := 3; i <= 7; i++ {
		assert.Contains(t, text, fmt.Sprintf("Configuration %d - Switch sw-%d:\n", i-2, i))
	}
	assert.NotContains(t, text, "Configuration 6")
}

func TestSynthesize_FlowTruncation(t *testing.T) {
	store := session.NewStore()
	store.AppendConfig(session.AppliedConfig{
		DPID: "1",
		Flows: []map[string]any{
			{"note": strings.Repeat("a", 300)},
			{"short": true},
		},
	})

	text, err := Synthesize(context.Background(), &fakeLister{}, store)
	require.NoError(t, err)

	lines := strings.Split(text, "\n")
	var flowLines []string
	for _, l := range lines {
		if strings.HasPrefix(l, "  Flow ") {
			flowLines = append(flowLines, l)
		}
	}
	require.Len(t, flowLines, 2)

	// Long flow is cut at 100 serialized characters before the marker.
	assert.Equal(t, "  Flow 1: ", flowLines[0][:10])
	assert.True(t, strings.HasSuffix(flowLines[0], "..."))
	assert.Len(t, flowLines[0], len("  Flow 1: ")+100+len("..."))

	// Short flow still carries the marker.
	assert.Equal(t, `  Flow 2: {"short":true}...`, flowLines[1])
}

func TestSynthesize_UnserializableFlowFails(t *testing.T) {
	store := session.NewStore()
	store.AppendConfig(session.AppliedConfig{
		DPID:  "1",
		Flows: []map[string]any{{"bad": func() {}}},
	})

	_, err := Synthesize(context.Background(), &fakeLister{}, store)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serializing flow")
}
