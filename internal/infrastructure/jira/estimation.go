package jira

import (
	"context"
	"math/rand"
	"net/url"
	"strconv"
)

// storyPointScale is the Fibonacci scale estimate_issue picks from.
var storyPointScale = []int{1, 2, 3, 5, 8, 13, 21}

// GetIssueEstimation reads the estimation of an issue in the context of
// one board (the board decides which field holds the estimate).
func (c *Client) GetIssueEstimation(ctx context.Context, issueKeyOrID string, boardID int) (*Estimation, error) {
	endpoint := agileAPIPath + "/issue/" + url.PathEscape(issueKeyOrID) + "/estimation"
	input := map[string]interface{}{"issueKeyOrId": issueKeyOrID, "boardId": boardID}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("boardId", strconv.Itoa(boardID)).
		SetResult(&Estimation{}).
		Get(endpoint)
	if err := c.check("get issue estimation", resp, err, input, endpoint); err != nil {
		return nil, err
	}
	return resp.Result().(*Estimation), nil
}

// SetIssueEstimation writes the estimation of an issue in the context
// of one board.
func (c *Client) SetIssueEstimation(ctx context.Context, issueKeyOrID string, boardID int, value string) (*Estimation, error) {
	endpoint := agileAPIPath + "/issue/" + url.PathEscape(issueKeyOrID) + "/estimation"
	body := map[string]string{"value": value}
	input := map[string]interface{}{"issueKeyOrId": issueKeyOrID, "boardId": boardID, "value": value}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("boardId", strconv.Itoa(boardID)).
		SetBody(body).
		SetResult(&Estimation{}).
		Put(endpoint)
	if err := c.check("set issue estimation", resp, err, input, endpoint); err != nil {
		return nil, err
	}
	return resp.Result().(*Estimation), nil
}

// EstimateStoryPoints suggests a story point value for an issue. This
// is a placeholder heuristic that picks pseudo-randomly from the
// Fibonacci scale; the configured OpenAI key is reserved for a real
// model-backed estimator.
func EstimateStoryPoints(issue *Issue) int {
	_ = issue
	return storyPointScale[rand.Intn(len(storyPointScale))]
}
