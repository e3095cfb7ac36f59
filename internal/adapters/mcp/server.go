// Package mcp exposes the engine as an MCP server: every registered
// operation becomes a tool, plus an evaluate tool for whole workflow
// documents.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/atomgraph/webalgebra"
)

// Server wraps the Engine and exposes it as an MCP Server.
type Server struct {
	engine    *webalgebra.Engine
	log       *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine *webalgebra.Engine, log *slog.Logger) *Server {
	s := &Server{
		engine:    engine,
		log:       log,
		mcpServer: server.NewMCPServer("webalgebra-mcp", webalgebra.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.log.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.log.Info("shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// One tool per registered operation, schema taken from the descriptor.
	for _, desc := range s.engine.Operations() {
		desc := desc
		tool := mcp.NewToolWithRawSchema(desc.Name, desc.Doc, desc.InputSchemaJSON())
		s.mcpServer.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			out, err := s.engine.Call(ctx, desc.Name, request.GetArguments())
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return textResult(out)
		})
	}

	// TOOL: evaluate, a whole workflow document in one call.
	evaluateTool := mcp.NewToolWithRawSchema("evaluate",
		"Evaluate a complete workflow document: a tree of {\"@op\": name, \"args\": {...}} invocations.",
		json.RawMessage(`{
			"type": "object",
			"properties": {
				"document": {"description": "The workflow document to evaluate."}
			},
			"required": ["document"]
		}`))
	s.mcpServer.AddTool(evaluateTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		doc, ok := request.GetArguments()["document"]
		if !ok {
			return mcp.NewToolResultError("missing document argument"), nil
		}
		data, err := json.Marshal(doc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out, err := s.engine.EvaluateDocument(ctx, data)
		if err != nil {
			s.log.Error("evaluation failed", "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		return textResult(out)
	})
}

func textResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: webalgebra://operations
	s.mcpServer.AddResource(mcp.NewResource("webalgebra://operations", "Registered Operations",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		type opInfo struct {
			Name   string         `json:"name"`
			Doc    string         `json:"description"`
			Schema map[string]any `json:"inputSchema"`
		}
		var infos []opInfo
		for _, desc := range s.engine.Operations() {
			infos = append(infos, opInfo{Name: desc.Name, Doc: desc.Doc, Schema: desc.InputSchema()})
		}
		jsonBytes, _ := json.Marshal(infos)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "webalgebra://operations",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
