package session

import (
	"sync"

	"github.com/sdnlab/pox-mcp/pkg/metrics"
)

// AppliedConfig is one flow-table configuration that the controller
// accepted. Records are append-only and never mutated.
type AppliedConfig struct {
	ID        string           `json:"id"`
	DPID      string           `json:"dpid"`
	Flows     []map[string]any `json:"flows"`
	Timestamp string           `json:"timestamp"`
}

// Store accumulates applied configurations and free-text insights for
// the lifetime of the process. It is constructor-injected everywhere it
// is used so tests get a fresh instance, and mutex-guarded because the
// MCP transport dispatches tool calls concurrently.
type Store struct {
	mu       sync.RWMutex
	configs  []AppliedConfig
	insights []string
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{}
}

// AppendConfig records an accepted flow-table configuration.
func (s *Store) AppendConfig(cfg AppliedConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.configs = append(s.configs, cfg)
	metrics.DefaultRecorder().SetSessionSizes(len(s.configs), len(s.insights))
}

// AppendInsight records a free-text network insight. No validation, no
// deduplication.
func (s *Store) AppendInsight(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.insights = append(s.insights, text)
	metrics.DefaultRecorder().SetSessionSizes(len(s.configs), len(s.insights))
}

// Configs returns a copy of the full configuration history in append order.
func (s *Store) Configs() []AppliedConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]AppliedConfig, len(s.configs))
	copy(out, s.configs)
	return out
}

// RecentConfigs returns a copy of the last n configurations, still in
// chronological order. Nothing is ever discarded from the underlying
// history.
func (s *Store) RecentConfigs(n int) []AppliedConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := 0
	if len(s.configs) > n {
		start = len(s.configs) - n
	}
	out := make([]AppliedConfig, len(s.configs)-start)
	copy(out, s.configs[start:])
	return out
}

// Insights returns a copy of all recorded insights in append order.
func (s *Store) Insights() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.insights))
	copy(out, s.insights)
	return out
}
