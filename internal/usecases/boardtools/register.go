// Package boardtools registers the Jira board tool and resource
// surface onto a ServerService. Every handler delegates to the backend
// client and returns the backend payload serialized as a single text
// content entry; backend errors pass through already translated.
package boardtools

import (
	"encoding/json"

	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain/shared"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/infrastructure/jira"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/usecases"
)

// RegisterAll wires the complete tool and resource surface. It must run
// before any transport starts serving.
func RegisterAll(s *usecases.ServerService, client *jira.Client) {
	registerBoardTools(s, client)
	registerBacklogTools(s, client)
	registerProjectTools(s, client)
	registerIssueTools(s, client)
	registerFilterTools(s, client)
	registerEstimationTools(s, client)
	registerFieldTools(s, client)
	registerBoardResources(s, client)
}

// jsonContent marshals a backend payload into the single text content
// entry tool results carry.
func jsonContent(v interface{}) ([]shared.Content, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, domain.NewInternalServerError("serializing backend response", nil).WithCause(err)
	}
	return []shared.Content{shared.NewTextContent(string(raw))}, nil
}

func pageOptions(in domain.ToolInput) jira.PageOptions {
	return jira.PageOptions{
		StartAt:    in.Int("startAt"),
		MaxResults: in.Int("maxResults"),
	}
}
