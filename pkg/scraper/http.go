package scraper

import (
	"context"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

const maxErrorBodySize = 4e+6 // 4MB

type HTTPScraper struct {
	client    *http.Client
	userAgent string
	headers   http.Header
}

// Check implements scraper.Scraper.
func (s *HTTPScraper) Check(ctx context.Context, url string) (bool, error) {
	req, err := s.newRequest(ctx, url)
	if err != nil {
		return false, errors.WithStack(err)
	}

	res, err := s.client.Do(req)
	if err != nil {
		return false, errors.WithStack(err)
	}

	defer res.Body.Close()

	return IsSuccess(res.StatusCode), nil
}

// Get implements scraper.Scraper.
func (s *HTTPScraper) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := s.newRequest(ctx, url)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	res, err := s.client.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if !IsSuccess(res.StatusCode) {
		defer res.Body.Close()

		body, err := io.ReadAll(io.LimitReader(res.Body, maxErrorBodySize))
		if err != nil {
			return nil, errors.WithStack(err)
		}

		return nil, errors.WithStack(&StatusError{
			URL:        url,
			StatusCode: res.StatusCode,
			Status:     res.Status,
			Body:       body,
		})
	}

	return res.Body, nil
}

func (s *HTTPScraper) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for key, values := range s.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	return req, nil
}

func NewHTTPScraper(client *http.Client, funcs ...OptionFunc) *HTTPScraper {
	opts := NewOptions(funcs...)

	if client == nil {
		client = &http.Client{}
	}

	if opts.Timeout > 0 && client.Timeout == 0 {
		withTimeout := *client
		withTimeout.Timeout = opts.Timeout
		client = &withTimeout
	}

	return &HTTPScraper{
		client:    client,
		userAgent: opts.UserAgent,
		headers:   opts.Headers,
	}
}

var _ Scraper = &HTTPScraper{}
