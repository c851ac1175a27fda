package boardtools

import (
	"context"

	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain/shared"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/infrastructure/jira"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/usecases"
)

func registerIssueTools(s *usecases.ServerService, client *jira.Client) {
	s.RegisterTool(domain.NewTool("create_issue",
		domain.WithDescription("Create an issue in a project"),
		domain.WithSchema(domain.NewSchema(
			domain.WithString("projectKey", domain.Required(), domain.Description("Project key")),
			domain.WithString("summary", domain.Required(), domain.Description("Issue summary")),
			domain.WithString("issueTypeId", domain.Required(), domain.Description("Issue type id")),
			domain.WithString("description", domain.Description("Plain-text description")),
			domain.WithString("assigneeAccountId", domain.Description("Account id of the initial assignee")),
			domain.WithString("priority", domain.Description("Priority id")),
			domain.WithStringArray("components", domain.Description("Component names")),
			domain.WithStringArray("fixVersions", domain.Description("Fix version names")),
		)),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			fields := map[string]interface{}{
				"project":   map[string]string{"key": in.String("projectKey")},
				"summary":   in.String("summary"),
				"issuetype": map[string]string{"id": in.String("issueTypeId")},
			}
			if desc := in.String("description"); desc != "" {
				fields["description"] = jira.ADFFromText(desc)
			}
			if assignee := in.String("assigneeAccountId"); assignee != "" {
				fields["assignee"] = map[string]string{"accountId": assignee}
			}
			if priority := in.String("priority"); priority != "" {
				fields["priority"] = map[string]string{"id": priority}
			}
			if components := in.StringSlice("components"); len(components) > 0 {
				fields["components"] = namedRefs(components)
			}
			if versions := in.StringSlice("fixVersions"); len(versions) > 0 {
				fields["fixVersions"] = namedRefs(versions)
			}

			created, err := client.CreateIssue(ctx, fields)
			if err != nil {
				return nil, err
			}
			return jsonContent(created)
		}),
	))

	s.RegisterTool(domain.NewTool("get_issue",
		domain.WithDescription("Fetch one issue by key or id"),
		domain.WithSchema(domain.NewSchema(
			domain.WithString("issueKeyOrId", domain.Required(), domain.Description("Issue key or numeric id")),
			domain.WithStringArray("fields", domain.Description("Issue fields to include")),
			domain.WithString("expand", domain.Description("Entities to expand")),
		)),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			issue, err := client.GetIssue(ctx, in.String("issueKeyOrId"), jira.GetIssueOptions{
				Fields: in.StringSlice("fields"),
				Expand: in.String("expand"),
			})
			if err != nil {
				return nil, err
			}
			return jsonContent(issue)
		}),
	))

	s.RegisterTool(domain.NewTool("update_issue",
		domain.WithDescription("Apply field changes, assignment, a workflow transition and/or a comment to an issue"),
		domain.WithSchema(domain.NewSchema(
			domain.WithString("issueKeyOrId", domain.Required(), domain.Description("Issue key or numeric id")),
			domain.WithString("summary", domain.Description("New summary")),
			domain.WithString("description", domain.Description("New plain-text description")),
			domain.WithString("assigneeAccountId", domain.Description("Account id of the new assignee")),
			domain.WithBoolean("unassign", domain.Description("Remove the current assignee")),
			domain.WithString("priorityId", domain.Description("New priority id")),
			domain.WithString("transitionId", domain.Description("Workflow transition to apply")),
			domain.WithString("comment", domain.Description("Comment to add after the update")),
		)),
		domain.WithHandler(updateIssueHandler(client)),
	))

	s.RegisterTool(domain.NewTool("delete_issue",
		domain.WithDescription("Delete an issue"),
		domain.WithSchema(domain.NewSchema(
			domain.WithString("issueKeyOrId", domain.Required(), domain.Description("Issue key or numeric id")),
		)),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			key := in.String("issueKeyOrId")
			if err := client.DeleteIssue(ctx, key); err != nil {
				return nil, err
			}
			return jsonContent(map[string]interface{}{"deleted": key})
		}),
	))

	s.RegisterTool(domain.NewTool("search_issues",
		domain.WithDescription("Search issues with JQL"),
		domain.WithSchema(domain.NewSchema(
			domain.WithString("jql", domain.Description("JQL query; empty matches everything visible")),
			domain.WithNumber("startAt"),
			domain.WithNumber("maxResults"),
			domain.WithStringArray("fields", domain.Description("Issue fields to include")),
			domain.WithString("expand", domain.Description("Entities to expand")),
		)),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			result, err := client.SearchIssues(ctx, jira.IssueSearchOptions{
				PageOptions: pageOptions(in),
				JQL:         in.String("jql"),
				Fields:      in.StringSlice("fields"),
				Expand:      in.String("expand"),
			})
			if err != nil {
				return nil, err
			}
			return jsonContent(result)
		}),
	))

	s.RegisterTool(domain.NewTool("get_transitions",
		domain.WithDescription("List the workflow transitions currently available to an issue"),
		domain.WithSchema(domain.NewSchema(
			domain.WithString("issueKeyOrId", domain.Required(), domain.Description("Issue key or numeric id")),
		)),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			transitions, err := client.GetTransitions(ctx, in.String("issueKeyOrId"))
			if err != nil {
				return nil, err
			}
			return jsonContent(transitions)
		}),
	))

	s.RegisterTool(domain.NewTool("add_comment",
		domain.WithDescription("Add a plain-text comment to an issue"),
		domain.WithSchema(domain.NewSchema(
			domain.WithString("issueKeyOrId", domain.Required(), domain.Description("Issue key or numeric id")),
			domain.WithString("body", domain.Required(), domain.Description("Comment text")),
		)),
		domain.WithHandler(func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
			comment, err := client.AddComment(ctx, in.String("issueKeyOrId"), in.String("body"))
			if err != nil {
				return nil, err
			}
			return jsonContent(comment)
		}),
	))
}

// updateIssueHandler applies the requested changes in a fixed order:
// field update, assignment, transition, comment. The first failure
// aborts the remainder, so a partial update is possible and the
// response names what was applied.
func updateIssueHandler(client *jira.Client) domain.ToolHandler {
	return func(ctx context.Context, in domain.ToolInput) ([]shared.Content, error) {
		key := in.String("issueKeyOrId")

		fields := map[string]interface{}{}
		if summary := in.String("summary"); summary != "" {
			fields["summary"] = summary
		}
		if desc := in.String("description"); desc != "" {
			fields["description"] = jira.ADFFromText(desc)
		}
		if priority := in.String("priorityId"); priority != "" {
			fields["priority"] = map[string]string{"id": priority}
		}

		assignee := in.String("assigneeAccountId")
		unassign := in.Bool("unassign")
		transition := in.String("transitionId")
		comment := in.String("comment")

		if len(fields) == 0 && assignee == "" && !unassign && transition == "" && comment == "" {
			return nil, domain.NewUserInputError("update_issue: no change requested; pass at least one updatable argument", nil)
		}

		applied := []string{}
		if len(fields) > 0 {
			if err := client.UpdateIssue(ctx, key, fields); err != nil {
				return nil, err
			}
			for _, name := range []string{"summary", "description", "priority"} {
				if _, ok := fields[name]; ok {
					applied = append(applied, name)
				}
			}
		}
		if unassign {
			if err := client.AssignIssue(ctx, key, nil); err != nil {
				return nil, err
			}
			applied = append(applied, "unassign")
		} else if assignee != "" {
			if err := client.AssignIssue(ctx, key, &assignee); err != nil {
				return nil, err
			}
			applied = append(applied, "assignee")
		}
		if transition != "" {
			if err := client.TransitionIssue(ctx, key, transition); err != nil {
				return nil, err
			}
			applied = append(applied, "transition")
		}
		if comment != "" {
			if _, err := client.AddComment(ctx, key, comment); err != nil {
				return nil, err
			}
			applied = append(applied, "comment")
		}

		return jsonContent(map[string]interface{}{"issueKeyOrId": key, "applied": applied})
	}
}

func namedRefs(names []string) []map[string]string {
	refs := make([]map[string]string, 0, len(names))
	for _, name := range names {
		refs = append(refs, map[string]string{"name": name})
	}
	return refs
}
