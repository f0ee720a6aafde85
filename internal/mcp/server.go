package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/primer/internal/tutorials"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the tutorial library read-only.
type Server struct {
	store *tutorials.Store
	mcp   *server.MCPServer
}

// NewServer creates a new MCP server over store.
func NewServer(store *tutorials.Store) *Server {
	s := &Server{store: store}

	s.mcp = server.NewMCPServer(
		"primer",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listTutorialsTool, s.handleListTutorials)
	s.mcp.AddTool(getTutorialTool, s.handleGetTutorial)
	s.mcp.AddTool(getChapterTool, s.handleGetChapter)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
