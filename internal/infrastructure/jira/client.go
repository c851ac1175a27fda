// Package jira wraps the Jira Cloud REST API behind typed operation
// wrappers. Core endpoints live under /rest/api/3, agile endpoints
// (boards, backlog, sprints, epics, estimation) under /rest/agile/1.0.
// Every wrapper funnels failures through Translate so callers always
// observe the domain error taxonomy, never raw HTTP errors.
package jira

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jmoliugp/mcp-jira-board-sub000/internal/config"
)

const (
	coreAPIPath  = "/rest/api/3"
	agileAPIPath = "/rest/agile/1.0"

	requestTimeout = 30 * time.Second
)

// Client is a thin Jira Cloud REST client. It holds no state beyond the
// configured HTTP client and is safe for concurrent use.
type Client struct {
	http *resty.Client
}

// NewClient builds a client authenticated with basic auth (email + API
// token) against the configured site base URL.
func NewClient(cfg config.JiraConfig) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(requestTimeout).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	if cfg.Email != "" && cfg.APIToken != "" {
		httpClient.SetBasicAuth(cfg.Email, cfg.APIToken)
	}

	return &Client{http: httpClient}
}

// check inspects the outcome of one executed request and returns nil when
// it succeeded with a 2xx status, otherwise the translated domain error.
// A non-nil err means the request never produced a usable response
// (connection failure, timeout, cancelled context).
func (c *Client) check(operation string, resp *resty.Response, err error, input interface{}, endpoint string) error {
	if err != nil {
		return Translate(operation, 0, "", input, endpoint).WithCause(err)
	}
	if code := resp.StatusCode(); code < 200 || code >= 300 {
		return Translate(operation, code, resp.String(), input, endpoint)
	}
	return nil
}

// PageOptions carries the cursor pagination parameters shared by list
// endpoints. Zero values are omitted so the backend applies its defaults.
type PageOptions struct {
	StartAt    int
	MaxResults int
}

func setPage(r *resty.Request, opts PageOptions) {
	if opts.StartAt > 0 {
		r.SetQueryParam("startAt", strconv.Itoa(opts.StartAt))
	}
	if opts.MaxResults > 0 {
		r.SetQueryParam("maxResults", strconv.Itoa(opts.MaxResults))
	}
}
