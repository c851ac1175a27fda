package jira

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// BoardSearchOptions filters the board listing. Zero values are omitted
// from the query.
type BoardSearchOptions struct {
	PageOptions
	Type           string
	Name           string
	ProjectKeyOrID string
}

// IssuePageOptions shapes issue listings under a board.
type IssuePageOptions struct {
	PageOptions
	JQL    string
	Fields []string
	Expand string
}

// SprintPageOptions shapes sprint listings under a board. State filters
// by sprint state (future, active, closed), comma separated.
type SprintPageOptions struct {
	PageOptions
	State string
}

// GetAllBoards lists boards visible to the authenticated user.
func (c *Client) GetAllBoards(ctx context.Context, opts BoardSearchOptions) (*BoardList, error) {
	endpoint := agileAPIPath + "/board"
	input := opts

	r := c.http.R().SetContext(ctx).SetResult(&BoardList{})
	setPage(r, opts.PageOptions)
	if opts.Type != "" {
		r.SetQueryParam("type", opts.Type)
	}
	if opts.Name != "" {
		r.SetQueryParam("name", opts.Name)
	}
	if opts.ProjectKeyOrID != "" {
		r.SetQueryParam("projectKeyOrId", opts.ProjectKeyOrID)
	}

	resp, err := r.Get(endpoint)
	if err := c.check("get all boards", resp, err, input, endpoint); err != nil {
		return nil, err
	}
	return resp.Result().(*BoardList), nil
}

// CreateBoard creates a board backed by the given saved filter.
func (c *Client) CreateBoard(ctx context.Context, req CreateBoardRequest) (*Board, error) {
	endpoint := agileAPIPath + "/board"

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&Board{}).
		Post(endpoint)
	if err := c.check("create board", resp, err, req, endpoint); err != nil {
		return nil, err
	}
	return resp.Result().(*Board), nil
}

// GetBoard fetches a single board by id.
func (c *Client) GetBoard(ctx context.Context, boardID int) (*Board, error) {
	endpoint := agileAPIPath + "/board/" + strconv.Itoa(boardID)
	input := map[string]interface{}{"boardId": boardID}

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&Board{}).
		Get(endpoint)
	if err := c.check("get board", resp, err, input, endpoint); err != nil {
		return nil, err
	}
	return resp.Result().(*Board), nil
}

// DeleteBoard deletes a board. The backing filter survives.
func (c *Client) DeleteBoard(ctx context.Context, boardID int) error {
	endpoint := agileAPIPath + "/board/" + strconv.Itoa(boardID)
	input := map[string]interface{}{"boardId": boardID}

	resp, err := c.http.R().SetContext(ctx).Delete(endpoint)
	return c.check("delete board", resp, err, input, endpoint)
}

// GetBoardBacklog lists the issues in a board's backlog.
func (c *Client) GetBoardBacklog(ctx context.Context, boardID int, opts IssuePageOptions) (*IssueList, error) {
	return c.boardIssueListing(ctx, "get board backlog", boardID, "backlog", opts)
}

// GetBoardIssues lists every issue belonging to a board.
func (c *Client) GetBoardIssues(ctx context.Context, boardID int, opts IssuePageOptions) (*IssueList, error) {
	return c.boardIssueListing(ctx, "get board issues", boardID, "issue", opts)
}

func (c *Client) boardIssueListing(ctx context.Context, operation string, boardID int, leaf string, opts IssuePageOptions) (*IssueList, error) {
	endpoint := fmt.Sprintf("%s/board/%d/%s", agileAPIPath, boardID, leaf)
	input := map[string]interface{}{"boardId": boardID, "options": opts}

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
	if err := c.check(operation, resp, err, input, endpoint); err != nil {
		return nil, err
	}
	return resp.Result().(*IssueList), nil
}

// GetBoardEpics lists the epics associated with a board.
func (c *Client) GetBoardEpics(ctx context.Context, boardID int, opts PageOptions) (*EpicList, error) {
	endpoint := fmt.Sprintf("%s/board/%d/epic", agileAPIPath, boardID)
	input := map[string]interface{}{"boardId": boardID, "options": opts}

	r := c.http.R().SetContext(ctx).SetResult(&EpicList{})
	setPage(r, opts)

	resp, err := r.Get(endpoint)
	if err := c.check("get board epics", resp, err, input, endpoint); err != nil {
		return nil, err
	}
	return resp.Result().(*EpicList), nil
}

// GetBoardSprints lists the sprints of a board, optionally filtered by
// state.
func (c *Client) GetBoardSprints(ctx context.Context, boardID int, opts SprintPageOptions) (*SprintList, error) {
	endpoint := fmt.Sprintf("%s/board/%d/sprint", agileAPIPath, boardID)
	input := map[string]interface{}{"boardId": boardID, "options": opts}

	r := c.http.R().SetContext(ctx).SetResult(&SprintList{})
	setPage(r, opts.PageOptions)
	if opts.State != "" {
		r.SetQueryParam("state", opts.State)
	}

	resp, err := r.Get(endpoint)
	if err := c.check("get board sprints", resp, err, input, endpoint); err != nil {
		return nil, err
	}
	return resp.Result().(*SprintList), nil
}

// GetBoardConfiguration fetches the column and estimation setup of a
// board.
func (c *Client) GetBoardConfiguration(ctx context.Context, boardID int) (*BoardConfiguration, error) {
	endpoint := fmt.Sprintf("%s/board/%d/configuration", agileAPIPath, boardID)
	input := map[string]interface{}{"boardId": boardID}

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&BoardConfiguration{}).
		Get(endpoint)
	if err := c.check("get board configuration", resp, err, input, endpoint); err != nil {
		return nil, err
	}
	return resp.Result().(*BoardConfiguration), nil
}

// GetBoardProjects lists the projects a board draws issues from.
func (c *Client) GetBoardProjects(ctx context.Context, boardID int, opts PageOptions) (*ProjectList, error) {
	endpoint := fmt.Sprintf("%s/board/%d/project", agileAPIPath, boardID)
	input := map[string]interface{}{"boardId": boardID, "options": opts}

	r := c.http.R().SetContext(ctx).SetResult(&ProjectList{})
	setPage(r, opts)

	resp, err := r.Get(endpoint)
	if err := c.check("get board projects", resp, err, input, endpoint); err != nil {
		return nil, err
	}
	return resp.Result().(*ProjectList), nil
}
