package surf

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/bornholm/imagegrab/pkg/scraper"
	"github.com/enetx/g"
	"github.com/enetx/surf"
	"github.com/pkg/errors"
)

// Scraper fetches pages while impersonating a desktop Chrome browser (TLS
// fingerprint and headers included). The impersonated user agent takes
// precedence over the configured one.
type Scraper struct {
	opts *scraper.Options
}

// Check implements scraper.Scraper.
func (s *Scraper) Check(ctx context.Context, url string) (bool, error) {
	client := s.getClient()
	resp := client.Get(g.String(url)).WithContext(ctx).Do()
	if resp.IsErr() {
		return false, errors.WithStack(resp.Err())
	}

	return scraper.IsSuccess(int(resp.Ok().StatusCode)), nil
}

// Get implements scraper.Scraper.
func (s *Scraper) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	client := s.getClient()
	resp := client.Get(g.String(url)).WithContext(ctx).Do()
	if resp.IsErr() {
		return nil, errors.WithStack(resp.Err())
	}

	res := resp.Ok()
	statusCode := int(res.StatusCode)

	if !scraper.IsSuccess(statusCode) {
		res.Body.Reader.Close()

		return nil, errors.WithStack(&scraper.StatusError{
			URL:        url,
			StatusCode: statusCode,
			Status:     http.StatusText(statusCode),
		})
	}

	return res.Body.Reader, nil
}

func (s *Scraper) getClient() *surf.Client {
	builder := surf.NewClient().
		Builder()

	if proxy := os.Getenv("HTTP_PROXY"); proxy != "" {
		builder = builder.Proxy(proxy)
	}

	builder = builder.Impersonate().RandomOS().Chrome().
		Timeout(s.opts.Timeout).
		Session()

	return builder.Build()
}

func NewScraper(funcs ...scraper.OptionFunc) *Scraper {
	return &Scraper{
		opts: scraper.NewOptions(funcs...),
	}
}

var _ scraper.Scraper = &Scraper{}
