package boardtools

import (
	"context"

	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain/shared"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/infrastructure/jira"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/usecases"
)

func registerBacklogTools(s *usecases.ServerService, client *jira.Client) {
	s.RegisterTool(domain.NewTool("move_issues_to_backlog",
		domain.WithDescription("Move issues out of their sprints into the backlog (max 50 per call, enforced by the backend)"),
		domain.WithSchema(domain.NewSchema(
			domain.WithStringArray("issues", domain.Required(), domain.Description("Issue keys or ids to move")),
		)),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			issues := in.StringSlice("issues")
			if err := client.MoveIssuesToBacklog(ctx, issues); err != nil {
				return nil, err
			}
			return jsonContent(map[string]interface{}{"moved": issues})
		}),
	))

	s.RegisterTool(domain.NewTool("move_issues_to_backlog_for_board",
		domain.WithDescription("Move issues into a specific board's backlog, optionally ranked relative to an existing issue"),
		domain.WithSchema(domain.NewSchema(
			domain.WithNumber("boardId", domain.Required(), domain.Description("Target board id")),
			domain.WithStringArray("issues", domain.Required(), domain.Description("Issue keys or ids to move")),
			domain.WithString("rankBeforeIssue", domain.Description("Rank the moved issues before this issue")),
			domain.WithString("rankAfterIssue", domain.Description("Rank the moved issues after this issue")),
		)),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			boardID := in.Int("boardId")
			req := jira.BacklogMoveRequest{
				Issues:          in.StringSlice("issues"),
				RankBeforeIssue: in.String("rankBeforeIssue"),
				RankAfterIssue:  in.String("rankAfterIssue"),
			}
			if err := client.MoveIssuesToBacklogForBoard(ctx, boardID, req); err != nil {
				return nil, err
			}
			return jsonContent(map[string]interface{}{"boardId": boardID, "moved": req.Issues})
		}),
	))
}
