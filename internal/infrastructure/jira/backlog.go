package jira

import (
	"context"
	"fmt"
)

// BacklogMoveRequest moves issues into a board's backlog, optionally
// ranking them relative to an existing issue.
type BacklogMoveRequest struct {
	Issues            []string `json:"issues"`
	RankBeforeIssue   string   `json:"rankBeforeIssue,omitempty"`
	RankAfterIssue    string   `json:"rankAfterIssue,omitempty"`
	RankCustomFieldID int      `json:"rankCustomFieldId,omitempty"`
}

// MoveIssuesToBacklog moves issues out of their sprints into the
// backlog. The backend caps one call at 50 issues; the limit is not
// validated here.
func (c *Client) MoveIssuesToBacklog(ctx context.Context, issues []string) error {
	endpoint := agileAPIPath + "/backlog/issue"
	body := map[string]interface{}{"issues": issues}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(endpoint)
	return c.check("move issues to backlog", resp, err, body, endpoint)
}

// MoveIssuesToBacklogForBoard moves issues into a specific board's
// backlog with optional ranking.
func (c *Client) MoveIssuesToBacklogForBoard(ctx context.Context, boardID int, req BacklogMoveRequest) error {
	endpoint := fmt.Sprintf("%s/backlog/%d/issue", agileAPIPath, boardID)
	input := map[string]interface{}{"boardId": boardID, "request": req}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post(endpoint)
	return c.check("move issues to backlog for board", resp, err, input, endpoint)
}
