package apiclient

import (
	"context"
	"net/http"

	"github.com/trezcool/aimforms/core/course"
)

var _ course.API = (*Client)(nil)

func (c *Client) GetCourse(ctx context.Context, id string) (course.Snapshot, error) {
	var s course.Snapshot
	err := c.getJSON(ctx, c.endpoint(nil, course.Resource, id), &s)
	return s, err
}

func (c *Client) CreateCourse(ctx context.Context, p course.Payload) error {
	_, err := c.do(ctx, http.MethodPost, c.endpoint(nil, course.Resource), p)
	return err
}

func (c *Client) UpdateCourse(ctx context.Context, id string, p course.Payload) error {
	_, err := c.do(ctx, http.MethodPut, c.endpoint(nil, course.Resource, id), p)
	return err
}
