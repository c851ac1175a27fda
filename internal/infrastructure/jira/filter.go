package jira

import (
	"context"
	"net/url"
)

// CreateFilter creates a saved JQL filter owned by the authenticated
// user.
func (c *Client) CreateFilter(ctx context.Context, req CreateFilterRequest) (*Filter, error) {
	endpoint := coreAPIPath + "/filter"

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&Filter{}).
		Post(endpoint)
	if err := c.check("create filter", resp, err, req, endpoint); err != nil {
		return nil, err
	}
	return resp.Result().(*Filter), nil
}

// GetFilter fetches one saved filter by id.
func (c *Client) GetFilter(ctx context.Context, filterID string) (*Filter, error) {
	endpoint := coreAPIPath + "/filter/" + url.PathEscape(filterID)
	input := map[string]interface{}{"filterId": filterID}

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&Filter{}).
		Get(endpoint)
	if err := c.check("get filter", resp, err, input, endpoint); err != nil {
		return nil, err
	}
	return resp.Result().(*Filter), nil
}

// GetMyFilters lists the filters owned by the authenticated user.
func (c *Client) GetMyFilters(ctx context.Context) ([]Filter, error) {
	endpoint := coreAPIPath + "/filter/my"

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&[]Filter{}).
		Get(endpoint)
	if err := c.check("get my filters", resp, err, nil, endpoint); err != nil {
		return nil, err
	}
	return *resp.Result().(*[]Filter), nil
}

// GetFavouriteFilters lists the filters the authenticated user marked
// as favourite.
func (c *Client) GetFavouriteFilters(ctx context.Context) ([]Filter, error) {
	endpoint := coreAPIPath + "/filter/favourite"

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&[]Filter{}).
		Get(endpoint)
	if err := c.check("get favourite filters", resp, err, nil, endpoint); err != nil {
		return nil, err
	}
	return *resp.Result().(*[]Filter), nil
}

// DeleteFilter deletes a saved filter.
func (c *Client) DeleteFilter(ctx context.Context, filterID string) error {
	endpoint := coreAPIPath + "/filter/" + url.PathEscape(filterID)
	input := map[string]interface{}{"filterId": filterID}

	resp, err := c.http.R().SetContext(ctx).Delete(endpoint)
	return c.check("delete filter", resp, err, input, endpoint)
}
