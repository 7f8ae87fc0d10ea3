package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/aimforms/core"
)

const maxBodySize = 4 << 20

// ErrBodyTooLarge is returned when a response body exceeds the size the client reads.
var ErrBodyTooLarge = errors.New("response body too large")

// APIError is returned for every non-2xx response.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string // human-readable message sent by the API, if any
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// UserMessage returns the message sent by the API.
func (e *APIError) UserMessage() string {
	return e.Message
}

// Message returns the message the API attached to `err`, or "".
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// IsNotFound reports whether `err` is a 404 response.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type (
	Client struct {
		baseURL *url.URL
		http    *http.Client
		logger  core.Logger
	}

	Option func(*Client)
)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(logger core.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New returns a client of the API served at `baseURL`.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parsing API base URL")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("invalid API base URL %q", baseURL)
	}
	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func NewFromConfig(conf *core.Config, logger core.Logger) (*Client, error) {
	return New(conf.API.BaseURL, WithHTTPClient(&http.Client{Timeout: conf.API.Timeout}), WithLogger(logger))
}

func (c *Client) endpoint(query url.Values, segments ...string) string {
	escaped := make([]string, 0, len(segments)+1)
	escaped = append(escaped, "api")
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}
	u := c.baseURL.JoinPath(escaped...)
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends `in` (if any) as JSON and returns the raw body of a 2xx response.
func (c *Client) do(ctx context.Context, method, endpoint string, in interface{}) ([]byte, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, errors.Wrap(err, "encoding request")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.New().String()
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, endpoint)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s %s", method, endpoint)
	}
	if len(data) > maxBodySize {
		return nil, errors.Wrapf(ErrBodyTooLarge, "%s %s", method, endpoint)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			Method:     method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data),
			Body:       data,
		}
		if c.logger != nil {
			c.logger.Debug("API request failed", apiErr, map[string]interface{}{"requestID": reqID})
		}
		return nil, apiErr
	}
	return data, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	data, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "decoding GET %s", endpoint)
	}
	return nil
}

// errorMessage extracts {"message": "..."} (or {"error": "..."}) from an error body.
func errorMessage(body []byte) string {
	var payload struct {
		Message interface{} `json:"message"`
		Error   interface{} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if m, ok := payload.Message.(string); ok && m != "" {
		return m
	}
	if m, ok := payload.Error.(string); ok {
		return m
	}
	return ""
}
