package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/rag"
	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/pkg/logger_i"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server exposes the question pipeline as an MCP tool over stdio, so
// agent hosts can query the indexed documents without going through HTTP.
type Server struct {
	ragService rag.Service
	server     *mcp.Server
	logger     *logger_i.Logger
}

func NewServer(ragService rag.Service) *Server {
	impl := &mcp.Implementation{
		Name:    "document-intelligence",
		Version: Version,
	}

	s := &Server{
		ragService: ragService,
		server:     mcp.NewServer(impl, nil),
		logger:     logger_i.NewLogger("MCPServer"),
	}

	s.registerTools()
	return s
}

// Run blocks until the context is cancelled or the transport dies.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("MCP server running over stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
