// Package memo renders the network configuration memo: a deterministic
// text report combining live topology with the session's accumulated
// configuration history and insights.
package memo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sdnlab/pox-mcp/pkg/metrics"
	"github.com/sdnlab/pox-mcp/pkg/session"
)

// SwitchLister is the slice of the controller facade the memo needs.
type SwitchLister interface {
	GetSwitches(ctx context.Context) []map[string]any
}

const (
	header = "📊 Network Configuration Memo 📊\n\n"

	// recentConfigLimit bounds how many configurations are rendered, not
	// how many are stored.
	recentConfigLimit = 5

	// flowPreviewLen is the serialized-flow prefix shown per line. The
	// ellipsis is appended whether or not truncation happened.
	flowPreviewLen = 100
)

// Synthesize builds the memo. Section order is fixed: header, live
// topology, recent configurations (only when history is non-empty), then
// insights (only when non-empty). The topology section performs a live
// controller call through lister. A flow entry that cannot be
// JSON-serialized fails the whole synthesis.
func Synthesize(ctx context.Context, lister SwitchLister, store *session.Store) (string, error) {
	var b strings.Builder
	b.WriteString(header)

	b.WriteString("Network Topology:\n")
	for _, sw := range lister.GetSwitches(ctx) {
		fmt.Fprintf(&b, "- Switch DPID: %s\n", switchDPID(sw))
	}

	configs := store.RecentConfigs(recentConfigLimit)
	if len(configs) > 0 {
		b.WriteString("\nRecent Flow Configurations:\n")
		for i, cfg := range configs {
			fmt.Fprintf(&b, "Configuration %d - Switch %s:\n", i+1, cfg.DPID)
			for j, flow := range cfg.Flows {
				encoded, err := json.Marshal(flow)
				if err != nil {
					return "", fmt.Errorf("serializing flow %d of configuration %d: %w", j+1, i+1, err)
				}
				preview := string(encoded)
				if len(preview) > flowPreviewLen {
					preview = preview[:flowPreviewLen]
				}
				fmt.Fprintf(&b, "  Flow %d: %s...\n", j+1, preview)
			}
		}
	}

	insights := store.Insights()
	if len(insights) > 0 {
		b.WriteString("\nNetwork Insights:\n")
		for _, insight := range insights {
			fmt.Fprintf(&b, "- %s\n", insight)
		}
	}

	metrics.DefaultRecorder().RecordMemoSynthesis()
	return b.String(), nil
}

func switchDPID(sw map[string]any) string {
	v, ok := sw["dpid"]
	if !ok || v == nil {
		return "unknown"
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
