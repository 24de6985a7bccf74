package naverland

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

// ErrRateLimited is returned when the portal answers 429.
var ErrRateLimited = errors.New("naver land rate limit exceeded")

// Client talks to the Naver Land JSON API. Credentials (bearer token and
// session cookie string) are provisioned externally and passed in opaque.
type Client struct {
	token   string
	cookie  string
	baseURL string
	http    *retryablehttp.Client
	limiter *rate.Limiter
}

type Option func(*Client)

// WithBaseURL points the client at a different host (tests, proxies).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithRateLimit overrides the outbound request budget.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(r, burst) }
}

func NewClient(token, cookie string, opts ...Option) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 900 * time.Millisecond
	rc.RetryMax = 2
	rc.HTTPClient.Timeout = 10 * time.Second
	rc.Logger = nil
	// a 429 from the portal means back off, not hammer
	rc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
			return false, nil
		}
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}

	c := &Client{
		token:   token,
		cookie:  cookie,
		baseURL: "https://new.land.naver.com",
		http:    rc,
		limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 2),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchComplexes fetches one page of the complex keyword search.
func (c *Client) SearchComplexes(ctx context.Context, keyword string, page int) ([]byte, error) {
	q := url.Values{}
	q.Set("keyword", keyword)
	q.Set("page", strconv.Itoa(page))
	return c.get(ctx, "/api/search?"+q.Encode())
}

// ComplexArticles fetches one page of the article list for a complex.
// query should come from ArticleQuery; the page number overrides whatever
// page value it carries.
func (c *Client) ComplexArticles(ctx context.Context, complexNo string, query url.Values, page int) ([]byte, error) {
	q := url.Values{}
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("page", strconv.Itoa(page))
	return c.get(ctx, "/api/articles/complex/"+url.PathEscape(complexNo)+"?"+q.Encode())
}

// ArticleDetail fetches one article's full detail payload. complexNo is an
// optional hint passed through when present.
func (c *Client) ArticleDetail(ctx context.Context, articleNo, complexNo string) ([]byte, error) {
	path := "/api/articles/" + url.PathEscape(articleNo)
	if complexNo != "" {
		q := url.Values{}
		q.Set("complexNo", complexNo)
		path += "?" + q.Encode()
	}
	return c.get(ctx, path)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "*/*")
	req.Header.Set("accept-language", "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7")
	if c.token != "" {
		req.Header.Set("authorization", "Bearer "+c.token)
	}
	if c.cookie != "" {
		req.Header.Set("cookie", c.cookie)
	}
	req.Header.Set("referer", c.baseURL+"/complexes")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode >= 400 {
		body, _ := ioReadAllLimit(resp.Body, 64<<10)
		return nil, fmt.Errorf("naver land error %d: %s", resp.StatusCode, string(body))
	}
	return ioReadAllLimit(resp.Body, 4<<20) // 4MB guard
}

func ioReadAllLimit(r io.Reader, limit int64) ([]byte, error) {
	lr := io.LimitReader(r, limit+1)
	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, errors.New("payload too large")
	}
	return b, nil
}
