package boardtools

import (
	"context"

	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain/shared"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/infrastructure/jira"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/usecases"
)

func registerFieldTools(s *usecases.ServerService, client *jira.Client) {
	s.RegisterTool(domain.NewTool("find_custom_field",
		domain.WithDescription("Look up a custom field by display name; returns null when no custom field matches"),
		domain.WithSchema(domain.NewSchema(
			domain.WithString("name", domain.Required(), domain.Description("Display name, matched case-insensitively")),
		)),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			field := client.FindCustomField(ctx, in.String("name"))
			return jsonContent(field)
		}),
	))

	s.RegisterTool(domain.NewTool("get_field_configurations",
		domain.WithDescription("List field configurations, optionally with the items of one configuration"),
		domain.WithSchema(domain.NewSchema(
			domain.WithNumber("startAt"),
			domain.WithNumber("maxResults"),
			domain.WithNumber("configId", domain.Description("When set, also fetch the items of this configuration")),
		)),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			configs, err := client.GetFieldConfigurations(ctx, pageOptions(in))
			if err != nil {
				return nil, err
			}

			result := map[string]interface{}{"configurations": configs}
			if in.Has("configId") {
				items, err := client.GetFieldConfigurationItems(ctx, in.Int("configId"), jira.PageOptions{})
				if err != nil {
					return nil, err
				}
				result["items"] = items
			}
			return jsonContent(result)
		}),
	))
}
