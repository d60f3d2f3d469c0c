package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sdnlab/pox-mcp/pkg/memo"
)

const (
	resourceConfigURI   = "pox://network-config"
	resourceTopologyURI = "pox://topology"

	textPlain = "text/plain"
)

func (s *Server) registerResources() {
	s.mcp.AddResource(mcp.NewResource(resourceConfigURI, "Network Configuration Memo",
		mcp.WithResourceDescription("A document containing network topology, configurations, and insights"),
		mcp.WithMIMEType(textPlain),
	), s.readNetworkConfig)

	s.mcp.AddResource(mcp.NewResource(resourceTopologyURI, "Network Topology",
		mcp.WithResourceDescription("Current network topology with connected switches"),
		mcp.WithMIMEType(textPlain),
	), s.readTopology)
}

func (s *Server) readNetworkConfig(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	text, err := memo.Synthesize(ctx, s.manager, s.store)
	if err != nil {
		s.log.Error().Err(err).Msg("memo synthesis failed")
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      resourceConfigURI,
			MIMEType: textPlain,
			Text:     text,
		},
	}, nil
}

func (s *Server) readTopology(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	switches := s.manager.GetSwitches(ctx)
	encoded, err := json.MarshalIndent(switches, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing topology: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      resourceTopologyURI,
			MIMEType: textPlain,
			Text:     fmt.Sprintf("Network Topology:\n%s", encoded),
		},
	}, nil
}
