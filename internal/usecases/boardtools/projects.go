package boardtools

import (
	"context"

	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain/shared"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/infrastructure/jira"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/usecases"
)

func registerProjectTools(s *usecases.ServerService, client *jira.Client) {
	s.RegisterTool(domain.NewTool("get_project",
		domain.WithDescription("Fetch one project by key or id"),
		domain.WithSchema(domain.NewSchema(
			domain.WithString("projectKeyOrId", domain.Required(), domain.Description("Project key or numeric id")),
			domain.WithString("expand", domain.Description("Project details to expand")),
		)),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			project, err := client.GetProject(ctx, in.String("projectKeyOrId"), in.String("expand"))
			if err != nil {
				return nil, err
			}
			return jsonContent(project)
		}),
	))

	s.RegisterTool(domain.NewTool("search_projects",
		domain.WithDescription("List projects matching a query, paginated"),
		domain.WithSchema(domain.NewSchema(
			domain.WithNumber("startAt"),
			domain.WithNumber("maxResults"),
			domain.WithString("query", domain.Description("Match against project names and keys")),
		)),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			projects, err := client.SearchProjects(ctx, jira.ProjectSearchOptions{
				PageOptions: pageOptions(in),
				Query:       in.String("query"),
			})
			if err != nil {
				return nil, err
			}
			return jsonContent(projects)
		}),
	))

	s.RegisterTool(domain.NewTool("get_project_statuses",
		domain.WithDescription("List the valid statuses per issue type of a project"),
		domain.WithSchema(domain.NewSchema(
			domain.WithString("projectKeyOrId", domain.Required(), domain.Description("Project key or numeric id")),
		)),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			statuses, err := client.GetProjectStatuses(ctx, in.String("projectKeyOrId"))
			if err != nil {
				return nil, err
			}
			return jsonContent(statuses)
		}),
	))
}
