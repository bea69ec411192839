package mcp

import (
	"context"
	"encoding/json"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/deepwork/internal/clock"
	"github.com/rpggio/deepwork/internal/domain/session"
	"github.com/rpggio/deepwork/internal/leaderboard"
)

const sessionRecordedMessage = "Deep work session recorded! 🎉"

func registerTools(server *sdkmcp.Server, sessions SessionService, clk clock.Clock) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "record_session",
		Description: "Record a completed deep work session",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in RecordSessionParams) (*sdkmcp.CallToolResult, any, error) {
		sess, err := sessions.Append(ctx, session.Submission{
			Name:  in.Name,
			Buddy: in.Buddy,
			Task:  in.Task,
		})
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(RecordSessionResult{Session: sess, Message: sessionRecordedMessage})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_dashboard",
		Description: "Get the weekly leaderboard, sessions per day, all-time stats and recent sessions",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ GetDashboardParams) (*sdkmcp.CallToolResult, any, error) {
		return jsonResult(leaderboard.Build(sessions.ListAll(ctx), clk.Now()))
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_sessions",
		Description: "List all stored deep work sessions",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListSessionsParams) (*sdkmcp.CallToolResult, any, error) {
		var list []session.Session
		switch in.Order {
		case "", "asc":
			list = sessions.ListAll(ctx)
		case "desc":
			list = sessions.ListRecent(ctx)
		default:
			return errorResult(&APIError{Code: "INVALID_INPUT", Message: "order must be asc or desc"}), nil, nil
		}
		return jsonResult(ListSessionsResult{Sessions: list, Count: len(list)})
	})
}

func jsonResult(v any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, err
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}

func errorResult(err error) *sdkmcp.CallToolResult {
	apiErr, ok := err.(*APIError)
	if !ok {
		apiErr = MapError(err)
	}
	data, _ := json.Marshal(apiErr)
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}
