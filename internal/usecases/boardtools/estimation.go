package boardtools

import (
	"context"

	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain/shared"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/infrastructure/jira"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/usecases"
)

func registerEstimationTools(s *usecases.ServerService, client *jira.Client) {
	s.RegisterTool(domain.NewTool("estimate_issue",
		domain.WithDescription("Suggest a story-point estimate for an issue"),
		domain.WithSchema(domain.NewSchema(
			domain.WithString("issueKeyOrId", domain.Required(), domain.Description("Issue key or numeric id")),
			domain.WithNumber("boardId", domain.Description("Board whose estimation field should be read for the current value")),
		)),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			key := in.String("issueKeyOrId")
			issue, err := client.GetIssue(ctx, key, jira.GetIssueOptions{Fields: []string{"summary", "description"}})
			if err != nil {
				return nil, err
			}

			result := map[string]interface{}{
				"issueKeyOrId": key,
				"suggested":    jira.EstimateStoryPoints(issue),
			}
			if in.Has("boardId") {
				current, err := client.GetIssueEstimation(ctx, key, in.Int("boardId"))
				if err != nil {
					return nil, err
				}
				result["current"] = current
			}
			return jsonContent(result)
		}),
	))

	s.RegisterTool(domain.NewTool("set_issue_estimation",
		domain.WithDescription("Set the estimation value of an issue on a board"),
		domain.WithSchema(domain.NewSchema(
			domain.WithString("issueKeyOrId", domain.Required(), domain.Description("Issue key or numeric id")),
			domain.WithNumber("boardId", domain.Required(), domain.Description("Board whose estimation field is written")),
			domain.WithString("value", domain.Required(), domain.Description("Estimation value, e.g. story points or a duration")),
		)),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			estimation, err := client.SetIssueEstimation(ctx, in.String("issueKeyOrId"), in.Int("boardId"), in.String("value"))
			if err != nil {
				return nil, err
			}
			return jsonContent(estimation)
		}),
	))
}
