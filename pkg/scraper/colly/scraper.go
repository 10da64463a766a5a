package colly

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/bornholm/imagegrab/pkg/scraper"
	"github.com/gocolly/colly"
	"github.com/pkg/errors"
)

// Scraper fetches pages with a gocolly collector. A fresh collector is built
// for each request so the same URL can be fetched more than once.
type Scraper struct {
	opts *scraper.Options
}

// Check implements scraper.Scraper.
func (s *Scraper) Check(ctx context.Context, url string) (bool, error) {
	res, err := s.visit(ctx, url)
	if err != nil {
		var statusErr *scraper.StatusError
		if errors.As(err, &statusErr) {
			return false, nil
		}

		return false, errors.WithStack(err)
	}

	return scraper.IsSuccess(res.StatusCode), nil
}

// Get implements scraper.Scraper.
func (s *Scraper) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	res, err := s.visit(ctx, url)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return io.NopCloser(bytes.NewReader(res.Body)), nil
}

func (s *Scraper) visit(ctx context.Context, url string) (*colly.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	// Every response reaches OnResponse, the status is checked once below.
	collector := colly.NewCollector(
		colly.UserAgent(s.opts.UserAgent),
		colly.ParseHTTPErrorResponse(),
	)

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	defer transport.CloseIdleConnections()

	collector.WithTransport(transport)

	if s.opts.Timeout > 0 {
		collector.SetRequestTimeout(s.opts.Timeout)
	}

	var (
		response *colly.Response
		visitErr error
	)

	collector.OnRequest(func(r *colly.Request) {
		for key := range s.opts.Headers {
			r.Headers.Set(key, s.opts.Headers.Get(key))
		}
	})

	collector.OnResponse(func(r *colly.Response) {
		response = r
	})

	collector.OnError(func(r *colly.Response, err error) {
		visitErr = err
	})

	if err := collector.Visit(url); err != nil && visitErr == nil {
		visitErr = err
	}

	if visitErr != nil {
		return nil, errors.WithStack(visitErr)
	}

	if response == nil {
		return nil, errors.Errorf("no response received for '%s'", url)
	}

	if !scraper.IsSuccess(response.StatusCode) {
		return nil, errors.WithStack(&scraper.StatusError{
			URL:        url,
			StatusCode: response.StatusCode,
			Status:     http.StatusText(response.StatusCode),
			Body:       response.Body,
		})
	}

	return response, nil
}

func NewScraper(funcs ...scraper.OptionFunc) *Scraper {
	return &Scraper{
		opts: scraper.NewOptions(funcs...),
	}
}

var _ scraper.Scraper = &Scraper{}
