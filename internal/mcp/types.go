package mcp

import (
	"github.com/rpggio/deepwork/internal/domain/session"
)

type RecordSessionParams struct {
	Name  string `json:"name" jsonschema:"person who did the deep work"`
	Buddy string `json:"buddy" jsonschema:"accountability buddy"`
	Task  string `json:"task" jsonschema:"what was worked on"`
}

type GetDashboardParams struct{}

type ListSessionsParams struct {
	Order string `json:"order,omitempty" jsonschema:"asc (storage order, default) or desc (newest first)"`
}

type RecordSessionResult struct {
	Session *session.Session `json:"session"`
	Message string           `json:"message"`
}

type ListSessionsResult struct {
	Sessions []session.Session `json:"sessions"`
	Count    int               `json:"count"`
}
