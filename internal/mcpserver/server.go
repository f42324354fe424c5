// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes Ponens proof-verification tools for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/halmos/ponens/internal/index"
	"github.com/halmos/ponens/internal/storage"
	"github.com/halmos/ponens/internal/verifyservice"
)

// Server wraps the MCP server with Ponens tools.
type Server struct {
	mcp   *server.MCPServer
	store storage.Provider
	svc   *verifyservice.Service
}

// New creates a new MCP server with all Ponens tools registered.
func New(store storage.Provider, db index.ProofIndex) *Server {
	s := &Server{store: store, svc: verifyservice.NewService(store, db)}

	s.mcp = server.NewMCPServer(
		"Ponens",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("verify_proof",
		mcp.WithDescription("Verify a proof document without storing it. "+
			"The document MUST follow the Ponens proof format (numbered lines, "+
			"Premise/AX1/AX2/AX3/MP justifications). Read the contract first via "+
			"the get_proof_contract tool or the ponens://proof-format resource."),
		mcp.WithString("content", mcp.Required(), mcp.Description("Proof document text to verify")),
	), s.verifyProof)

	s.mcp.AddTool(mcp.NewTool("read_document",
		mcp.WithDescription("Read the full text of a stored proof document."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the document (e.g. batch/day1.proof)")),
	), s.readDocument)

	s.mcp.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List all proof documents or documents in a specific folder."),
		mcp.WithString("folder", mcp.Description("Optional folder to list (empty for all)")),
	), s.listDocuments)

	s.mcp.AddTool(mcp.NewTool("list_verdicts",
		mcp.WithDescription("List stored verdicts across all documents, optionally filtered by status."),
		mcp.WithString("status", mcp.Description("Optional status filter: succeeded or failed")),
	), s.listVerdicts)

	s.mcp.AddTool(mcp.NewTool("get_proof_contract",
		mcp.WithDescription("Returns the Ponens proof document format contract. "+
			"Call this before submitting proofs to ensure correct structure."),
	), s.getProofContract)

	// Resource: proof format contract.
	s.mcp.AddResource(
		mcp.NewResource("ponens://proof-format", "Proof Format Contract",
			mcp.WithResourceDescription("Proof document format that all submitted proofs must follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readProofFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) verifyProof(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.VerifyContent(ctx, []byte(content))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	for _, r := range results {
		if r.Succeeded() {
			fmt.Fprintf(&b, "VALID: %s\n", r.Name)
		} else {
			fmt.Fprintf(&b, "FAILED: %s: line %d (%s): %s\n",
				r.Name, r.Failure.LineNumber, r.Failure.Kind, r.Failure.Detail)
		}
	}
	if b.Len() == 0 {
		return mcp.NewToolResultText("no proofs found in document"), nil
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) readDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.store.Read(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) listDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folder := ""
	if f, err := req.RequireString("folder"); err == nil {
		folder = f
	}

	metas, err := s.store.List(folder)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var paths []string
	for _, m := range metas {
		paths = append(paths, m.Path)
	}
	if len(paths) == 0 {
		return mcp.NewToolResultText("no documents found"), nil
	}
	return mcp.NewToolResultText(strings.Join(paths, "\n")), nil
}

func (s *Server) listVerdicts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := ""
	if st, err := req.RequireString("status"); err == nil {
		status = st
	}

	rows, _, err := s.svc.ListVerdicts(ctx, 100, 0, status)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(rows, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getProofContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(ProofFormatContract), nil
}

func (s *Server) readProofFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "ponens://proof-format",
			MIMEType: "text/markdown",
			Text:     ProofFormatContract,
		},
	}, nil
}
