package deck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// StatusError relays a non-success answer from the rendering service with
// its status and body so the caller can forward both.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("deck renderer error %d: %s", e.Status, e.Body)
}

// Client posts deck payloads to the rendering service and hands back the
// binary document stream.
type Client struct {
	url  string
	http *retryablehttp.Client
}

func NewClient(renderURL string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.RetryMax = 1
	rc.HTTPClient.Timeout = 120 * time.Second // deck rendering is slow
	rc.Logger = nil
	return &Client{url: renderURL, http: rc}
}

// Result is the rendered document. Body must be closed by the caller.
type Result struct {
	Body               io.ReadCloser
	ContentType        string
	ContentDisposition string
}

func (c *Client) Generate(ctx context.Context, payload map[string]any) (*Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return nil, &StatusError{Status: resp.StatusCode, Body: string(b)}
	}
	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	}
	return &Result{
		Body:               resp.Body,
		ContentType:        ct,
		ContentDisposition: resp.Header.Get("Content-Disposition"),
	}, nil
}
