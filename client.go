package paperwave

import (
	"context"
	"net/url"

	"resty.dev/v3"
)

// Client talks to the workspace task API. It is safe for concurrent use; a
// single client is typically shared by the tracker and the host application.
type Client struct {
	http    *resty.Client
	encoder Encoder
}

// NewClient creates a client for the workspace API rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	cfg := defaultClientOptions()
	for _, opt := range opts {
		opt(cfg)
	}
	hc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.timeout).
		SetHeader("User-Agent", cfg.userAgent)
	if cfg.authToken != "" {
		hc.SetAuthToken(cfg.authToken)
	}
	return &Client{http: hc, encoder: cfg.encoder}
}

// Close releases the underlying transport resources.
func (c *Client) Close() error {
	return c.http.Close()
}

// taskListResponse is the wire shape of the listing endpoint.
type taskListResponse struct {
	Tasks []Task `json:"tasks"`
}

// ListTasks fetches the full task snapshot. There is no pagination: the
// server returns every task it currently tracks.
func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/tasks")
	if err != nil {
		return nil, err
	}
	if !is2xx(resp.StatusCode()) {
		return nil, c.apiError(resp)
	}
	var out taskListResponse
	if err := c.encoder.Decode([]byte(resp.String()), &out); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

// CancelTask asks the server to cancel one task. A non-2xx response comes
// back as *APIError carrying the server's reason when the body had one.
func (c *Client) CancelTask(ctx context.Context, taskID string) error {
	if taskID == "" {
		return ErrEmptyTaskID
	}
	resp, err := c.http.R().SetContext(ctx).Post("/tasks/" + url.PathEscape(taskID) + "/cancel")
	if err != nil {
		return err
	}
	if !is2xx(resp.StatusCode()) {
		return c.apiError(resp)
	}
	return nil
}

// apiError turns a non-2xx response into an *APIError, pulling the reason out
// of an {error} body when the server sent one. Malformed bodies just leave
// the reason empty.
func (c *Client) apiError(resp *resty.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = c.encoder.Decode([]byte(resp.String()), &body)
	return &APIError{StatusCode: resp.StatusCode(), Reason: body.Error}
}

func is2xx(code int) bool { return code >= 200 && code < 300 }
