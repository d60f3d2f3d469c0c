// Package mcpserver exposes the POX controller facade over the Model
// Context Protocol: five tools, two readable resources, and three canned
// prompt templates.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/sdnlab/pox-mcp/pkg/metrics"
	"github.com/sdnlab/pox-mcp/pkg/pox"
	"github.com/sdnlab/pox-mcp/pkg/session"
)

const (
	serverName    = "pox-openflow"
	serverVersion = "0.1.0"
)

// Server wires the controller facade and session store into an MCP
// server. Transports are chosen by the caller: ServeStdio blocks on
// stdin/stdout, NewSSE returns an HTTP/SSE binding.
type Server struct {
	mcp      *server.MCPServer
	manager  *pox.Manager
	store    *session.Store
	log      zerolog.Logger
	recorder *metrics.Recorder
}

// New builds a fully registered MCP server around manager and store.
func New(manager *pox.Manager, store *session.Store, log zerolog.Logger) *Server {
	s := &Server{
		manager:  manager,
		store:    store,
		log:      log,
		recorder: metrics.DefaultRecorder(),
	}

	s.mcp = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(false),
		server.WithRecovery(),
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()
	return s
}

// ServeStdio runs the server over stdin/stdout until EOF.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// NewSSE returns the SSE transport binding. The caller owns its
// lifecycle (Start/Shutdown).
func (s *Server) NewSSE() *server.SSEServer {
	return server.NewSSEServer(s.mcp)
}

// notifyConfigChanged tells connected clients the network-config
// resource has new content. A no-op when no sessions are attached,
// which is always the case before the first client connects.
func (s *Server) notifyConfigChanged() {
	s.mcp.SendNotificationToAllClients("notifications/resources/updated", map[string]any{
		"uri": resourceConfigURI,
	})
}
