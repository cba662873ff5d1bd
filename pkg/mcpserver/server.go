// Package mcpserver exposes registered agent operations as MCP tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nawi-n/SmartCart/pkg/agent"
	"github.com/nawi-n/SmartCart/pkg/errmodel"
)

// Server wraps an MCP server whose tools are the operations of one registry.
type Server struct {
	srv    *mcp.Server
	reg    *agent.Registry
	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New builds a server with one tool per operation registered in reg.
func New(reg *agent.Registry, version string, opts ...Option) (*Server, error) {
	s := &Server{
		srv:    mcp.NewServer(&mcp.Implementation{Name: "smartcart", Version: version}, nil),
		reg:    reg,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	for _, d := range reg.Describe() {
		schema, err := inputSchema(d.Fields)
		if err != nil {
			return nil, err
		}
		s.srv.AddTool(&mcp.Tool{
			Name:        d.Name,
			Description: d.Description,
			InputSchema: schema,
		}, s.handler(d.Name))
	}
	return s, nil
}

// MCP returns the underlying SDK server.
func (s *Server) MCP() *mcp.Server { return s.srv }

// Run serves a single session over t until the client disconnects or ctx ends.
func (s *Server) Run(ctx context.Context, t mcp.Transport) error {
	return s.srv.Run(ctx, t)
}

// inputSchema describes the template fields as optional properties of any
// JSON type. Absent fields render as missing rather than failing the call.
func inputSchema(fields []string) (json.RawMessage, error) {
	props := make(map[string]any, len(fields))
	for _, f := range fields {
		props[f] = map[string]any{}
	}
	return json.Marshal(map[string]any{
		"type":       "object",
		"properties": props,
	})
}

func (s *Server) handler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		c := agent.Context{}
		if args := req.Params.Arguments; len(args) > 0 {
			if err := json.Unmarshal(args, &c); err != nil {
				return errorResult(errmodel.Validation(errmodel.CodeBadJSON, "arguments must be a JSON object", nil)), nil
			}
		}
		v, err := s.reg.Execute(ctx, name, c)
		if err != nil {
			level := slog.LevelInfo
			if !errmodel.IsCategory(err, errmodel.CategoryValidation) {
				level = slog.LevelWarn
			}
			s.logger.Log(ctx, level, "mcp tool failed", "operation", name, "error", err)
			return errorResult(errmodel.From(err)), nil
		}
		b, err := json.Marshal(v)
		if err != nil {
			return errorResult(errmodel.System(errmodel.CodeInternal, "result could not be encoded", map[string]any{"operation": name}, err)), nil
		}
		return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: string(b)}}}, nil
	}
}

func errorResult(ce *errmodel.Error) *mcp.CallToolResult {
	b, _ := json.Marshal(map[string]any{"error": ce})
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: string(b)}},
	}
}
