package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/actionserver/internal/logging"
	"github.com/aretw0/actionserver/pkg/domain"
)

// Executor defines what the MCP server needs from the dispatch core.
type Executor interface {
	Run(ctx context.Context, call *domain.ActionCall) (*domain.ActionResult, error)
	Actions() []domain.ActionInfo
}

// ToolError is the structured body of a failed tool call.
type ToolError struct {
	Error      string `json:"error"`
	ActionName string `json:"action_name"`
	Message    string `json:"message,omitempty"`
}

// Server exposes every registered action as an MCP tool.
type Server struct {
	executor  Executor
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger for tool calls.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(exec Executor, version string, opts ...Option) *Server {
	s := &Server{
		executor:  exec,
		mcpServer: server.NewMCPServer("actionserver-mcp", version),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on port until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
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
	for _, info := range s.executor.Actions() {
		s.mcpServer.AddTool(newTool(info), s.toolHandler(info.Name))
	}
}

func newTool(info domain.ActionInfo) mcp.Tool {
	desc := info.Description
	if desc == "" {
		desc = fmt.Sprintf("Run the %q action.", info.Name)
	}
	return mcp.NewTool(info.Name,
		mcp.WithDescription(desc),
		mcp.WithObject("tracker", mcp.Description("Conversation tracker passed to the action")),
		mcp.WithObject("domain", mcp.Description("Assistant domain passed to the action")),
		mcp.WithArray("args", mcp.Description("Positional parameters (parameterized actions only)")),
		mcp.WithObject("kwargs", mcp.Description("Keyword parameters (parameterized actions only)")),
	)
}

// toolHandler runs an action. Params are delivered through a request-scoped
// alias binding so they go through the same filtering as webhook calls.
func (s *Server) toolHandler(actionName string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		call := BuildCall(actionName, request.GetArguments())

		result, err := s.executor.Run(ctx, call)
		if err != nil {
			s.logger.Warn("MCP tool call failed", "action", actionName, "error", err)
			return mcp.NewToolResultError(toolErrorJSON(err, actionName)), nil
		}

		body, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("encode result: %w", err)
		}
		return mcp.NewToolResultText(string(body)), nil
	}
}

// BuildCall turns MCP tool arguments into an action call for actionName.
func BuildCall(actionName string, arguments map[string]any) *domain.ActionCall {
	call := &domain.ActionCall{
		NextAction: actionName,
		Tracker:    domain.Tracker{},
		Domain:     domain.Domain{},
	}
	if tracker, ok := arguments["tracker"].(map[string]any); ok {
		call.Tracker = tracker
	}
	if dom, ok := arguments["domain"].(map[string]any); ok {
		call.Domain = make(domain.Domain, len(dom)+1)
		for k, v := range dom {
			call.Domain[k] = v
		}
	}
	call.SenderID = call.Tracker.SenderID()

	args, hasArgs := arguments["args"].([]any)
	kwargs, hasKwargs := arguments["kwargs"].(map[string]any)
	if hasArgs || hasKwargs {
		call.Domain["actions_params"] = map[string]any{
			actionName: map[string]any{
				"base_action": actionName,
				"args":        args,
				"kwargs":      kwargs,
			},
		}
	}
	return call
}

func toolErrorJSON(err error, actionName string) string {
	body := ToolError{Error: err.Error(), ActionName: actionName}

	var (
		notFound *domain.ActionNotFoundError
		rejected *domain.ActionRejectedError
		failed   *domain.ActionExecutionError
	)
	switch {
	case errors.As(err, &notFound):
		body.ActionName = notFound.ActionName
	case errors.As(err, &rejected):
		body.ActionName = rejected.ActionName
	case errors.As(err, &failed):
		body.Error = domain.ErrActionExecution.Error()
		body.ActionName = failed.ActionName
		body.Message = failed.Err.Error()
	}

	raw, _ := json.Marshal(body)
	return string(raw)
}
