package hubstaff

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/abhiram98920/teamtracker/pkg/utils/debuglog"
	"github.com/abhiram98920/teamtracker/pkg/utils/logging"
	"github.com/abhiram98920/teamtracker/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// DefaultHTTPTimeout bounds every request to the API
	DefaultHTTPTimeout = 30 * time.Second

	maxErrorBody = 4096
)

// PageErrorPolicy decides what a failed page does to the whole listing
type PageErrorPolicy int

const (
	// StopAndReturnPartial logs the failure and returns the items fetched so far
	StopAndReturnPartial PageErrorPolicy = iota
	// FailFast returns ErrRemoteFetch
	FailFast
)

func (p PageErrorPolicy) String() string {
	if p == FailFast {
		return "fail_fast"
	}
	return "stop_and_return_partial"
}

// Pager issues authenticated GET requests following page_start_id cursors
type Pager struct {
	httpClient *http.Client
	tokens     TokenSource
	policy     PageErrorPolicy
}

// NewPager creates a Pager. A nil client gets one with DefaultHTTPTimeout.
func NewPager(tokens TokenSource, httpClient *http.Client, policy PageErrorPolicy) *Pager {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &Pager{
		httpClient: httpClient,
		tokens:     tokens,
		policy:     policy,
	}
}

// Page is one decoded response body keyed by top-level field
type Page map[string]json.RawMessage

type pagination struct {
	NextPageStartID json.RawMessage `json:"next_page_start_id"`
}

// nextCursor returns the next page_start_id, or "" at the end
func (pg Page) nextCursor() string {
	raw, ok := pg["pagination"]
	if !ok {
		return ""
	}

	var p pagination
	if err := json.Unmarshal(raw, &p); err != nil {
		return ""
	}

	cursor := strings.Trim(strings.TrimSpace(string(p.NextPageStartID)), `"`)
	if cursor == "null" {
		return ""
	}
	return cursor
}

// Decode unmarshals the array under key. A missing key yields no items.
func Decode[T any](pg Page, key string) ([]T, error) {
	raw, ok := pg[key]
	if !ok || string(raw) == "null" {
		return nil, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, goerr.Wrap(err, "failed to decode page items", goerr.V("key", key))
	}
	return items, nil
}

// FetchAll collects the array under key from every page
func FetchAll[T any](ctx context.Context, p *Pager, key string, buildURL func(cursor string) string) ([]T, error) {
	var all []T
	err := p.Each(ctx, buildURL, func(pg Page) error {
		items, err := Decode[T](pg, key)
		if err != nil {
			return err
		}
		all = append(all, items...)
		return nil
	})
	return all, err
}

// Each walks every page starting without a cursor and hands each decoded page
// to fn. Failures follow the pager policy; with StopAndReturnPartial the
// pages handled so far stand and nil is returned.
func (p *Pager) Each(ctx context.Context, buildURL func(cursor string) string, fn func(Page) error) error {
	logger := logging.From(ctx)
	cursor := ""
	pages := 0

	for {
		url := buildURL(cursor)

		pg, err := p.get(ctx, url)
		if err == nil {
			err = fn(pg)
		}
		if err != nil {
			if p.policy == FailFast || IsHardError(err) || ctx.Err() != nil {
				return err
			}
			logger.Warn("pagination stopped early, returning partial result",
				"url", url, "pages", pages, "error", err)
			debuglog.Add(ctx, "pagination stopped after %d page(s) at %s: %v", pages, url, err)
			return nil
		}

		pages++
		cursor = pg.nextCursor()
		if cursor == "" {
			return nil
		}
	}
}

func (p *Pager) get(ctx context.Context, url string) (Page, error) {
	token, err := p.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := p.do(ctx, url, token)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		safe.DrainAndClose(ctx, resp.Body)
		// token rejected before its expiry; refresh once and retry
		p.tokens.Invalidate(token)
		if token, err = p.tokens.Token(ctx); err != nil {
			return nil, err
		}
		if resp, err = p.do(ctx, url, token); err != nil {
			return nil, err
		}
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, goerr.Wrap(ErrRemoteFetch, "unexpected status code",
			goerr.V(StatusKey, resp.StatusCode),
			goerr.V(URLKey, url),
			goerr.V(BodyKey, string(body)))
	}

	var pg Page
	if err := json.NewDecoder(resp.Body).Decode(&pg); err != nil {
		return nil, goerr.Wrap(ErrRemoteFetch, "failed to decode response",
			goerr.V(URLKey, url),
			goerr.V("cause", err.Error()))
	}
	return pg, nil
}

func (p *Pager) do(ctx context.Context, url, token string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build request", goerr.V(URLKey, url))
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(ErrRemoteFetch, "request failed",
			goerr.V(URLKey, url),
			goerr.V("cause", err.Error()))
	}
	return resp, nil
}
