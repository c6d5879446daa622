package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/njchilds90/polygrade"
	"github.com/njchilds90/polygrade/internal/grader"
)

// TextArgs is the input of the parsing tools.
type TextArgs struct {
	Text string `json:"text"`
}

// CheckArgs is the input of check_answer.
type CheckArgs struct {
	Expected string `json:"expected"`
	Answer   string `json:"answer"`
	Mode     string `json:"mode,omitempty"`
}

// FactoredResponse pairs a factored expression with its factor map.
type FactoredResponse struct {
	Factored  polygrade.Factored `json:"factored" jsonschema_description:"Factors in input order"`
	FactorMap map[string]int     `json:"factor_map" jsonschema_description:"Base signature to total power"`
	LaTeX     string             `json:"latex"`
}

// Server exposes the grading service as MCP tools.
type Server struct {
	svc       *grader.Service
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server and registers its tools.
func NewServer(svc *grader.Service, logger *slog.Logger, version string) *Server {
	s := &Server{
		svc:       svc,
		logger:    logger,
		mcpServer: server.NewMCPServer("polygrade", version, server.WithToolCapabilities(false)),
	}
	s.registerTools()
	return s
}

// ServeStdio serves on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves over Server-Sent Events until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("parse_polynomial",
		mcp.WithDescription("Parse a single-variable polynomial typed in LaTeX-like notation and combine like terms."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Polynomial, e.g. 3x^2 + 2x - 1")),
		mcp.WithOutputSchema[polygrade.Polynomial](),
	), mcp.NewStructuredToolHandler(s.handleParsePolynomial))

	s.mcpServer.AddTool(mcp.NewTool("parse_factored",
		mcp.WithDescription("Split a factored expression into (base, power) factors."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Product, e.g. (x+1)^2(x-3)")),
		mcp.WithOutputSchema[FactoredResponse](),
	), mcp.NewStructuredToolHandler(s.handleParseFactored))

	s.mcpServer.AddTool(mcp.NewTool("check_answer",
		mcp.WithDescription("Grade a student's answer against the expected one."),
		mcp.WithString("expected", mcp.Required(), mcp.Description("Expected answer")),
		mcp.WithString("answer", mcp.Required(), mcp.Description("Student answer")),
		mcp.WithString("mode", mcp.Enum(string(polygrade.ModeSimplified), string(polygrade.ModeFactored)),
			mcp.Description("simplified (default) or factored")),
		mcp.WithOutputSchema[polygrade.Result](),
	), mcp.NewStructuredToolHandler(s.handleCheck))
}

func (s *Server) handleParsePolynomial(ctx context.Context, request mcp.CallToolRequest, args TextArgs) (polygrade.Polynomial, error) {
	return polygrade.ParsePolynomial(args.Text), nil
}

func (s *Server) handleParseFactored(ctx context.Context, request mcp.CallToolRequest, args TextArgs) (FactoredResponse, error) {
	f, err := polygrade.ParseFactored(args.Text)
	if err != nil {
		return FactoredResponse{}, fmt.Errorf("parse failed: %w", err)
	}
	return FactoredResponse{Factored: f, FactorMap: polygrade.FactorMap(f), LaTeX: f.LaTeX()}, nil
}

func (s *Server) handleCheck(ctx context.Context, request mcp.CallToolRequest, args CheckArgs) (polygrade.Result, error) {
	res, err := s.svc.Grade(ctx, grader.Request{Expected: args.Expected, Answer: args.Answer, Mode: args.Mode})
	if err != nil {
		s.logger.Warn("MCP check_answer rejected", "error", err)
		return polygrade.Result{}, err
	}
	return res, nil
}
