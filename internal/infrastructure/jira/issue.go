package jira

import (
	"context"
	"net/url"
	"strings"
)

// GetIssueOptions narrows the fields returned for a single issue.
type GetIssueOptions struct {
	Fields []string
	Expand string
}

// IssueSearchOptions shapes a JQL search.
type IssueSearchOptions struct {
	PageOptions
	JQL    string
	Fields []string
	Expand string
}

// CreateIssue creates an issue from a field map. The map is handed to
// the backend unchanged, so callers control project, issue type,
// summary and any custom fields.
func (c *Client) CreateIssue(ctx context.Context, fields map[string]interface{}) (*CreatedIssue, error) {
	endpoint := coreAPIPath + "/issue"
	body := map[string]interface{}{"fields": fields}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&CreatedIssue{}).
		Post(endpoint)
	if err := c.check("create issue", resp, err, body, endpoint); err != nil {
		return nil, err
	}
	return resp.Result().(*CreatedIssue), nil
}

// GetIssue fetches one issue by key or id.
func (c *Client) GetIssue(ctx context.Context, issueKeyOrID string, opts GetIssueOptions) (*Issue, error) {
	endpoint := coreAPIPath + "/issue/" + url.PathEscape(issueKeyOrID)
	input := map[string]interface{}{"issueKeyOrId": issueKeyOrID, "options": opts}

	r := c.http.R().SetContext(ctx).SetResult(&Issue{})
	if len(opts.Fields) > 0 {
		r.SetQueryParam("fields", strings.Join(opts.Fields, ","))
	}
	if opts.Expand != "" {
		r.SetQueryParam("expand", opts.Expand)
	}

	resp, err := r.Get(endpoint)
	if err := c.check("get issue", resp, err, input, endpoint); err != nil {
		return nil, err
	}
	return resp.Result().(*Issue), nil
}

// UpdateIssue applies a partial field update to an issue.
func (c *Client) UpdateIssue(ctx context.Context, issueKeyOrID string, fields map[string]interface{}) error {
	endpoint := coreAPIPath + "/issue/" + url.PathEscape(issueKeyOrID)
	body := map[string]interface{}{"fields": fields}
	input := map[string]interface{}{"issueKeyOrId": issueKeyOrID, "fields": fields}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Put(endpoint)
	return c.check("update issue", resp, err, input, endpoint)
}

// DeleteIssue deletes an issue.
func (c *Client) DeleteIssue(ctx context.Context, issueKeyOrID string) error {
	endpoint := coreAPIPath + "/issue/" + url.PathEscape(issueKeyOrID)
	input := map[string]interface{}{"issueKeyOrId": issueKeyOrID}

	resp, err := c.http.R().SetContext(ctx).Delete(endpoint)
	return c.check("delete issue", resp, err, input, endpoint)
}

// SearchIssues runs a JQL search.
func (c *Client) SearchIssues(ctx context.Context, opts IssueSearchOptions) (*IssueList, error) {
	endpoint := coreAPIPath + "/search"

	r := c.http.R().SetContext(ctx).SetResult(&IssueList{})
	setPage(r, opts.PageOptions)
	if opts.JQL != "" {
		r.SetQueryParam("jql", opts.JQL)
	}
	if len(opts.Fields) > 0 {
		r.SetQueryParam("fields", strings.Join(opts.Fields, ","))
	}
	if opts.Expand != "" {
		r.SetQueryParam("expand", opts.Expand)
	}

	resp, err := r.Get(endpoint)
	if err := c.check("search issues", resp, err, opts, endpoint); err != nil {
		return nil, err
	}
	return resp.Result().(*IssueList), nil
}

// GetTransitions lists the workflow transitions currently available to
// an issue.
func (c *Client) GetTransitions(ctx context.Context, issueKeyOrID string) (*TransitionList, error) {
	endpoint := coreAPIPath + "/issue/" + url.PathEscape(issueKeyOrID) + "/transitions"
	input := map[string]interface{}{"issueKeyOrId": issueKeyOrID}

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&TransitionList{}).
		Get(endpoint)
	if err := c.check("get transitions", resp, err, input, endpoint); err != nil {
		return nil, err
	}
	return resp.Result().(*TransitionList), nil
}

// TransitionIssue moves an issue through the named workflow transition.
func (c *Client) TransitionIssue(ctx context.Context, issueKeyOrID string, transitionID string) error {
	endpoint := coreAPIPath + "/issue/" + url.PathEscape(issueKeyOrID) + "/transitions"
	body := map[string]interface{}{
		"transition": map[string]string{"id": transitionID},
	}
	input := map[string]interface{}{"issueKeyOrId": issueKeyOrID, "transitionId": transitionID}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(endpoint)
	return c.check("transition issue", resp, err, input, endpoint)
}

// AddComment adds a plain-text comment, wrapped into the document
// format the v3 API requires.
func (c *Client) AddComment(ctx context.Context, issueKeyOrID string, body string) (*Comment, error) {
	endpoint := coreAPIPath + "/issue/" + url.PathEscape(issueKeyOrID) + "/comment"
	payload := map[string]interface{}{"body": ADFFromText(body)}
	input := map[string]interface{}{"issueKeyOrId": issueKeyOrID, "comment": body}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&Comment{}).
		Post(endpoint)
	if err := c.check("add comment", resp, err, input, endpoint); err != nil {
		return nil, err
	}
	return resp.Result().(*Comment), nil
}

// AssignIssue assigns an issue to the given account. A nil accountID
// unassigns the issue, which the backend expects as a JSON null.
func (c *Client) AssignIssue(ctx context.Context, issueKeyOrID string, accountID *string) error {
	endpoint := coreAPIPath + "/issue/" + url.PathEscape(issueKeyOrID) + "/assignee"
	body := map[string]interface{}{"accountId": accountID}
	input := map[string]interface{}{"issueKeyOrId": issueKeyOrID, "accountId": accountID}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Put(endpoint)
	return c.check("assign issue", resp, err, input, endpoint)
}
