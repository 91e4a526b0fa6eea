package mcpserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/MuhammadSobanHameed/AI-Powered-RAG-System/internal/adapter"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question   string `json:"question" jsonschema:"the question to answer from the indexed documents"`
	MaxSources int    `json:"max_sources,omitempty" jsonschema:"maximum number of chunks to retrieve (default 5)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer     string   `json:"answer"`
	Sources    []string `json:"sources"`
	NumSources int      `json:"num_sources"`
	Confidence string   `json:"confidence"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question using the indexed documents, with source document ids",
	}, s.handleAsk)
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return &mcp.CallToolResult{IsError: true}, AskOutput{}, nil
	}

	outcome := s.ragService.AnswerQuestion(ctx, question, input.MaxSources)

	sources := outcome.Sources
	if sources == nil {
		sources = []string{}
	}
	return nil, AskOutput{
		Answer:     outcome.Answer,
		Sources:    sources,
		NumSources: outcome.NumSources(),
		Confidence: adapter.ConfidenceFor(outcome.NumSources()),
	}, nil
}
