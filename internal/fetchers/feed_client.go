package fetchers

import (
	"context"
	"fmt"
	"time"

	"hampropdisplay/internal/logger"

	"github.com/go-resty/resty/v2"
)

// DefaultFetchTimeout bounds a single feed request. The control loop is
// blocked for the duration of a fetch.
const DefaultFetchTimeout = 10 * time.Second

// FeedSource returns the raw feed document
type FeedSource interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FeedClient issues a single GET against the feed URL. It never retries;
// the display retries on its own refresh schedule.
type FeedClient struct {
	client *resty.Client
	log    *logger.Logger
}

// NewFeedClient creates a feed client with the given request timeout
func NewFeedClient(timeout time.Duration) *FeedClient {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(0)
	client.SetHeader("User-Agent", "hampropdisplay/1")

	return NewFeedClientWithClient(client)
}

// NewFeedClientWithClient wraps an existing resty client
func NewFeedClientWithClient(client *resty.Client) *FeedClient {
	return &FeedClient{
		client: client,
		log:    logger.Component("feed"),
	}
}

// Fetch downloads the feed body. Transport errors and non-2xx statuses are
// reported as ErrNetworkFailure.
func (f *FeedClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/xml, text/xml").
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", ErrNetworkFailure, url, err)
	}

	if !resp.IsSuccess() {
		body := resp.Body()
		if len(body) > 200 {
			body = body[:200]
		}
		f.log.Warn("Feed returned non-success status", logger.Fields{
			"status": resp.StatusCode(),
			"url":    url,
			"body":   string(body),
		})
		return nil, fmt.Errorf("%w: GET %s returned status %d", ErrNetworkFailure, url, resp.StatusCode())
	}

	f.log.Debug("Feed fetched", logger.Fields{
		"bytes":    len(resp.Body()),
		"duration": resp.Time().String(),
	})
	return resp.Body(), nil
}
