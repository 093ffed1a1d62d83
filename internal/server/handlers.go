package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/openfiles/internal/output"
	"github.com/mj1618/openfiles/internal/tracker"
	"gopkg.in/yaml.v3"
)

// toText serializes v to YAML for an MCP response.
func toText(v interface{}) (*mcp.CallToolResult, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("yaml encode: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (s *Server) handleListOpen(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if sort := request.GetString("sort", ""); sort != "" {
		s.session.SetPolicy(tracker.ParseSortPolicy(sort))
	}
	if request.GetBool("refresh", true) {
		s.session.Tick(ctx)
	} else {
		s.session.Resort()
	}

	return toText(output.NewListResult(s.session.Tracker.Records(), s.session.Policy()))
}

func (s *Server) handleActivate(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !s.session.Activate(key) {
		// activations for windows we have not seen yet are not errors
		s.logger.Debug("activation for untracked window", "key", key)
		return toText(map[string]interface{}{"key": key, "tracked": false})
	}

	return toText(output.NewListResult(s.session.Tracker.Records(), s.session.Policy()))
}

func (s *Server) handleFind(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	r := s.session.Tracker.FindKey(key)
	if r == nil {
		return toText(map[string]interface{}{"key": key, "tracked": false})
	}
	return toText(output.NewOpenItem(r))
}
