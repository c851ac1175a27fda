package jira

import (
	"context"
	"strconv"
	"strings"
)

// GetFields lists every field definition, system and custom.
func (c *Client) GetFields(ctx context.Context) ([]Field, error) {
	endpoint := coreAPIPath + "/field"

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&[]Field{}).
		Get(endpoint)
	if err := c.check("get fields", resp, err, nil, endpoint); err != nil {
		return nil, err
	}
	return *resp.Result().(*[]Field), nil
}

// FindCustomField looks up a custom field by display name,
// case-insensitively. Lookup is best effort: any backend failure or a
// missing match yields nil rather than an error, so callers can treat
// the result as an optional hint.
func (c *Client) FindCustomField(ctx context.Context, name string) *Field {
	fields, err := c.GetFields(ctx)
	if err != nil {
		return nil
	}
	for i := range fields {
		if fields[i].Custom && strings.EqualFold(fields[i].Name, name) {
			return &fields[i]
		}
	}
	return nil
}

// GetFieldConfigurations lists field configurations, paginated.
func (c *Client) GetFieldConfigurations(ctx context.Context, opts PageOptions) (*FieldConfigurationList, error) {
	endpoint := coreAPIPath + "/fieldconfiguration"
	input := map[string]interface{}{"options": opts}

	r := c.http.R().SetContext(ctx).SetResult(&FieldConfigurationList{})
	setPage(r, opts)

	resp, err := r.Get(endpoint)
	if err := c.check("get field configurations", resp, err, input, endpoint); err != nil {
		return nil, err
	}
	return resp.Result().(*FieldConfigurationList), nil
}

// GetFieldConfigurationItems lists the per-field behavior entries of
// one configuration.
func (c *Client) GetFieldConfigurationItems(ctx context.Context, configID int, opts PageOptions) (*FieldConfigurationItemList, error) {
	endpoint := coreAPIPath + "/fieldconfiguration/" + strconv.Itoa(configID) + "/fields"
	input := map[string]interface{}{"configId": configID, "options": opts}

	r := c.http.R().SetContext(ctx).SetResult(&FieldConfigurationItemList{})
	setPage(r, opts)

	resp, err := r.Get(endpoint)
	if err := c.check("get field configuration items", resp, err, input, endpoint); err != nil {
		return nil, err
	}
	return resp.Result().(*FieldConfigurationItemList), nil
}
