package apiclient

import (
	"context"
	"net/http"

	"github.com/trezcool/aimforms/core/school"
)

var _ school.API = (*Client)(nil)

func (c *Client) GetSchool(ctx context.Context, id string) (school.Snapshot, error) {
	var s school.Snapshot
	err := c.getJSON(ctx, c.endpoint(nil, school.Resource, id), &s)
	return s, err
}

func (c *Client) CreateSchool(ctx context.Context, p school.Payload) error {
	_, err := c.do(ctx, http.MethodPost, c.endpoint(nil, school.Resource), p)
	return err
}

func (c *Client) UpdateSchool(ctx context.Context, id string, p school.Payload) error {
	_, err := c.do(ctx, http.MethodPut, c.endpoint(nil, school.Resource, id), p)
	return err
}
