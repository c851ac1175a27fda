package jira

import (
	"context"
	"net/url"
)

// ProjectSearchOptions filters the paginated project search.
type ProjectSearchOptions struct {
	PageOptions
	Query string
}

// GetProject fetches one project by key or id.
func (c *Client) GetProject(ctx context.Context, projectKeyOrID string, expand string) (*Project, error) {
	endpoint := coreAPIPath + "/project/" + url.PathEscape(projectKeyOrID)
	input := map[string]interface{}{"projectKeyOrId": projectKeyOrID, "expand": expand}

	r := c.http.R().SetContext(ctx).SetResult(&Project{})
	if expand != "" {
		r.SetQueryParam("expand", expand)
	}

	resp, err := r.Get(endpoint)
	if err := c.check("get project", resp, err, input, endpoint); err != nil {
		return nil, err
	}
	return resp.Result().(*Project), nil
}

// SearchProjects lists projects matching the query, paginated.
func (c *Client) SearchProjects(ctx context.Context, opts ProjectSearchOptions) (*ProjectList, error) {
	endpoint := coreAPIPath + "/project/search"

	r := c.http.R().SetContext(ctx).SetResult(&ProjectList{})
	setPage(r, opts.PageOptions)
	if opts.Query != "" {
		r.SetQueryParam("query", opts.Query)
	}

	resp, err := r.Get(endpoint)
	if err := c.check("search projects", resp, err, opts, endpoint); err != nil {
		return nil, err
	}
	return resp.Result().(*ProjectList), nil
}

// GetProjectStatuses lists the valid statuses per issue type of a
// project.
func (c *Client) GetProjectStatuses(ctx context.Context, projectKeyOrID string) ([]IssueTypeStatuses, error) {
	endpoint := coreAPIPath + "/project/" + url.PathEscape(projectKeyOrID) + "/statuses"
	input := map[string]interface{}{"projectKeyOrId": projectKeyOrID}

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&[]IssueTypeStatuses{}).
		Get(endpoint)
	if err := c.check("get project statuses", resp, err, input, endpoint); err != nil {
		return nil, err
	}
	return *resp.Result().(*[]IssueTypeStatuses), nil
}
