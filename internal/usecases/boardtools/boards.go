package boardtools

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain/shared"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/infrastructure/jira"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/usecases"
)

func registerBoardTools(s *usecases.ServerService, client *jira.Client) {
	s.RegisterTool(domain.NewTool("get_all_boards",
		domain.WithDescription("List agile boards visible to the configured user"),
		domain.WithSchema(domain.NewSchema(
			domain.WithNumber("startAt", domain.Description("Zero-based index of the first board to return")),
			domain.WithNumber("maxResults", domain.Description("Maximum number of boards to return")),
			domain.WithString("type", domain.Description("Board type filter"), domain.Enum("scrum", "kanban", "simple")),
			domain.WithString("name", domain.Description("Substring filter on board names")),
			domain.WithString("projectKeyOrId", domain.Description("Restrict to boards of one project")),
		)),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			boards, err := client.GetAllBoards(ctx, jira.BoardSearchOptions{
				PageOptions:    pageOptions(in),
				Type:           in.String("type"),
				Name:           in.String("name"),
				ProjectKeyOrID: in.String("projectKeyOrId"),
			})
			if err != nil {
				return nil, err
			}
			return jsonContent(boards)
		}),
	))

	s.RegisterTool(domain.NewTool("create_board",
		domain.WithDescription("Create an agile board backed by a saved filter; without filterId the first own filter is used"),
		domain.WithSchema(domain.NewSchema(
			domain.WithString("name", domain.Required(), domain.Description("Board name")),
			domain.WithString("type", domain.Required(), domain.Enum("scrum", "kanban"), domain.Description("Board type")),
			domain.WithNumber("filterId", domain.Description("Saved filter the board is built from")),
			domain.WithString("projectKeyOrId", domain.Description("Project to locate the board under")),
		)),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			filterID, err := resolveFilterID(ctx, client, in)
			if err != nil {
				return nil, err
			}

			req := jira.CreateBoardRequest{
				Name:     in.String("name"),
				Type:     in.String("type"),
				FilterID: filterID,
			}
			if project := in.String("projectKeyOrId"); project != "" {
				req.Location = &jira.BoardLocationRequest{Type: "project", ProjectKeyOrID: project}
			}

			board, err := client.CreateBoard(ctx, req)
			if err != nil {
				return nil, err
			}
			return jsonContent(board)
		}),
	))

	s.RegisterTool(domain.NewTool("get_board",
		domain.WithDescription("Fetch a single board by id"),
		domain.WithSchema(boardIDSchema()),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			board, err := client.GetBoard(ctx, in.Int("boardId"))
			if err != nil {
				return nil, err
			}
			return jsonContent(board)
		}),
	))

	s.RegisterTool(domain.NewTool("delete_board",
		domain.WithDescription("Delete a board; the backing filter survives"),
		domain.WithSchema(boardIDSchema()),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			if err := client.DeleteBoard(ctx, in.Int("boardId")); err != nil {
				return nil, err
			}
			return jsonContent(map[string]interface{}{"deleted": in.Int("boardId")})
		}),
	))

	s.RegisterTool(domain.NewTool("get_board_backlog",
		domain.WithDescription("List the issues in a board's backlog"),
		domain.WithSchema(boardIssueListingSchema()),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			issues, err := client.GetBoardBacklog(ctx, in.Int("boardId"), issuePageOptions(in))
			if err != nil {
				return nil, err
			}
			return jsonContent(issues)
		}),
	))

	s.RegisterTool(domain.NewTool("get_board_issues",
		domain.WithDescription("List every issue on a board"),
		domain.WithSchema(boardIssueListingSchema()),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			issues, err := client.GetBoardIssues(ctx, in.Int("boardId"), issuePageOptions(in))
			if err != nil {
				return nil, err
			}
			return jsonContent(issues)
		}),
	))

	s.RegisterTool(domain.NewTool("get_board_epics",
		domain.WithDescription("List the epics associated with a board"),
		domain.WithSchema(domain.NewSchema(
			domain.WithNumber("boardId", domain.Required(), domain.Description("Board id")),
			domain.WithNumber("startAt"),
			domain.WithNumber("maxResults"),
		)),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			epics, err := client.GetBoardEpics(ctx, in.Int("boardId"), pageOptions(in))
			if err != nil {
				return nil, err
			}
			return jsonContent(epics)
		}),
	))

	s.RegisterTool(domain.NewTool("get_board_sprints",
		domain.WithDescription("List the sprints of a board, optionally filtered by state"),
		domain.WithSchema(domain.NewSchema(
			domain.WithNumber("boardId", domain.Required(), domain.Description("Board id")),
			domain.WithNumber("startAt"),
			domain.WithNumber("maxResults"),
			domain.WithString("state", domain.Description("Sprint state filter"), domain.Enum("future", "active", "closed")),
		)),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			sprints, err := client.GetBoardSprints(ctx, in.Int("boardId"), jira.SprintPageOptions{
				PageOptions: pageOptions(in),
				State:       in.String("state"),
			})
			if err != nil {
				return nil, err
			}
			return jsonContent(sprints)
		}),
	))

	s.RegisterTool(domain.NewTool("get_board_configuration",
		domain.WithDescription("Fetch the column, filter and estimation setup of a board"),
		domain.WithSchema(boardIDSchema()),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			cfg, err := client.GetBoardConfiguration(ctx, in.Int("boardId"))
			if err != nil {
				return nil, err
			}
			return jsonContent(cfg)
		}),
	))

	s.RegisterTool(domain.NewTool("get_board_projects",
		domain.WithDescription("List the projects a board draws issues from"),
		domain.WithSchema(domain.NewSchema(
			domain.WithNumber("boardId", domain.Required(), domain.Description("Board id")),
			domain.WithNumber("startAt"),
			domain.WithNumber("maxResults"),
		)),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			projects, err := client.GetBoardProjects(ctx, in.Int("boardId"), pageOptions(in))
			if err != nil {
				return nil, err
			}
			return jsonContent(projects)
		}),
	))
}

// resolveFilterID returns the explicit filterId argument, or falls back
// to the caller's first own filter. A failed or empty lookup is a
// user-input error: guessing a filter id would create a board on the
// wrong filter.
func resolveFilterID(ctx context.Context, client *jira.Client, in domain.ToolInput) (int, error) {
	if in.Has("filterId") {
		return in.Int("filterId"), nil
	}

	filters, err := client.GetMyFilters(ctx)
	if err != nil || len(filters) == 0 {
		return 0, domain.NewUserInputError(
			"create_board: no filterId given and no own filter found to default to; pass filterId explicitly", nil)
	}
	id, err := strconv.Atoi(filters[0].ID)
	if err != nil {
		return 0, domain.NewUserInputError(
			fmt.Sprintf("create_board: default filter %q has a non-numeric id; pass filterId explicitly", filters[0].Name), nil)
	}
	return id, nil
}

func boardIDSchema() *domain.Schema {
	return domain.NewSchema(
		domain.WithNumber("boardId", domain.Required(), domain.Description("Board id")),
	)
}

func boardIssueListingSchema() *domain.Schema {
	return domain.NewSchema(
		domain.WithNumber("boardId", domain.Required(), domain.Description("Board id")),
		domain.WithNumber("startAt"),
		domain.WithNumber("maxResults"),
		domain.WithString("jql", domain.Description("Extra JQL filter applied by the backend")),
		domain.WithStringArray("fields", domain.Description("Issue fields to include")),
		domain.WithString("expand", domain.Description("Entities to expand")),
	)
}

func issuePageOptions(in domain.ToolInput) jira.IssuePageOptions {
	return jira.IssuePageOptions{
		PageOptions: pageOptions(in),
		JQL:         in.String("jql"),
		Fields:      in.StringSlice("fields"),
		Expand:      in.String("expand"),
	}
}
