package boardtools

import (
	"context"

	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain/shared"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/infrastructure/jira"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/usecases"
)

func registerFilterTools(s *usecases.ServerService, client *jira.Client) {
	s.RegisterTool(domain.NewTool("create_filter",
		domain.WithDescription("Create a saved JQL filter"),
		domain.WithSchema(domain.NewSchema(
			domain.WithString("name", domain.Required(), domain.Description("Filter name")),
			domain.WithString("jql", domain.Required(), domain.Description("JQL the filter runs")),
			domain.WithString("description", domain.Description("Filter description")),
		)),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			filter, err := client.CreateFilter(ctx, jira.CreateFilterRequest{
				Name:        in.String("name"),
				JQL:         in.String("jql"),
				Description: in.String("description"),
			})
			if err != nil {
				return nil, err
			}
			return jsonContent(filter)
		}),
	))

	s.RegisterTool(domain.NewTool("get_filter",
		domain.WithDescription("Fetch one filter by id"),
		domain.WithSchema(domain.NewSchema(
			domain.WithString("filterId", domain.Required(), domain.Description("Filter id")),
		)),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			filter, err := client.GetFilter(ctx, in.String("filterId"))
			if err != nil {
				return nil, err
			}
			return jsonContent(filter)
		}),
	))

	s.RegisterTool(domain.NewTool("get_my_filters",
		domain.WithDescription("List the filters owned by the authenticated user"),
		domain.WithSchema(domain.NewSchema()),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			filters, err := client.GetMyFilters(ctx)
			if err != nil {
				return nil, err
			}
			return jsonContent(filters)
		}),
	))

	s.RegisterTool(domain.NewTool("get_favourite_filters",
		domain.WithDescription("List the filters the authenticated user marked as favourite"),
		domain.WithSchema(domain.NewSchema()),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			filters, err := client.GetFavouriteFilters(ctx)
			if err != nil {
				return nil, err
			}
			return jsonContent(filters)
		}),
	))

	s.RegisterTool(domain.NewTool("delete_filter",
		domain.WithDescription("Delete a filter"),
		domain.WithSchema(domain.NewSchema(
			domain.WithString("filterId", domain.Required(), domain.Description("Filter id")),
		)),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			id := in.String("filterId")
			if err := client.DeleteFilter(ctx, id); err != nil {
				return nil, err
			}
			return jsonContent(map[string]interface{}{"deleted": id})
		}),
	))
}
