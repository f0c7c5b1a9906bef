package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type PanelArgs struct {
	Season      string   `json:"season,omitempty" jsonschema:"Season, e.g. 2021 (default: first season in the dataset)"`
	League      string   `json:"league,omitempty" jsonschema:"League name (default: Barclays Premier League)"`
	Teams       []string `json:"teams,omitempty" jsonschema:"Teams to include (default: none for radar, all for trend)"`
	Orientation string   `json:"orientation,omitempty" jsonschema:"Home or Away (default Home)"`
}

type PairArgs struct {
	Season string `json:"season,omitempty" jsonschema:"Season, e.g. 2021"`
	League string `json:"league,omitempty" jsonschema:"League name"`
	TeamA  string `json:"team_a" jsonschema:"First team (required)"`
	TeamB  string `json:"team_b" jsonschema:"Second team (required)"`
}

type TeamsArgs struct {
	Season string `json:"season,omitempty" jsonschema:"Season, e.g. 2021"`
	League string `json:"league,omitempty" jsonschema:"League name"`
}

var radarTool = &mcp.Tool{
	Name:        "radar_averages",
	Description: "League average and per-team averages of projected score, score, xG, nSxG and adjusted score for one side of the fixture",
}

// newMCPServer exposes the panel aggregates as MCP tools.
func (s *Server) newMCPServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "soccer-science",
			Version: "0.1.0",
		},
		nil,
	)

	panelTool := func(panel string) func(context.Context, *mcp.CallToolRequest, PanelArgs) (*mcp.CallToolResult, any, error) {
		return func(ctx context.Context, req *mcp.CallToolRequest, args PanelArgs) (*mcp.CallToolResult, any, error) {
			reply := s.answer(panelRequest{
				Panel:       panel,
				Season:      args.Season,
				League:      args.League,
				Teams:       args.Teams,
				Orientation: args.Orientation,
			})
			if reply.Error != "" {
				return toolError(errors.New(reply.Error)), nil, nil
			}
			return toolJSON(reply.Data), nil, nil
		}
	}

	radar := *radarTool
	mcp.AddTool(server, &radar, panelTool("radar"))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "monthly_trend",
		Description: "Mean win probability per calendar month and team for one side of the fixture",
	}, panelTool("trend"))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "pair_stats",
		Description: "Head-to-head averages of score, xG, projected score and nsXG for two teams, with the pre-match nsXG split",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args PairArgs) (*mcp.CallToolResult, any, error) {
		if args.TeamA == "" || args.TeamB == "" {
			return toolError(errors.New("team_a and team_b are required")), nil, nil
		}
		reply := s.answer(panelRequest{
			Panel:  "pair",
			Season: args.Season,
			League: args.League,
			TeamA:  args.TeamA,
			TeamB:  args.TeamB,
		})
		if reply.Error != "" {
			return toolError(errors.New(reply.Error)), nil, nil
		}
		return toolJSON(reply.Data), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_teams",
		Description: "Teams of a league season in selector order, plus the available seasons",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args TeamsArgs) (*mcp.CallToolResult, any, error) {
		q, err := s.newQuery(args.Season, args.League, "", nil, "", "")
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(map[string]any{
			"league":  q.League,
			"season":  q.Season,
			"teams":   s.data.Teams(q.League, q.Season),
			"seasons": s.data.Seasons(),
		}), nil, nil
	})

	return server
}

func (s *Server) mcpHandler() http.Handler {
	server := s.newMCPServer()
	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

func toolJSON(v any) *mcp.CallToolResult {
	b, _ := json.MarshalIndent(v, "", "  ")
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
