package chromedp

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/bornholm/imagegrab/pkg/scraper"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"

	cu "github.com/Davincible/chromedp-undetected"
)

// Scraper renders pages in a headless Chrome instance. The status of the
// main document response decides whether a navigation succeeded.
type Scraper struct {
	chromeCtx    context.Context
	cancelChrome context.CancelFunc
	opts         *scraper.Options
}

// Check implements scraper.Scraper.
func (s *Scraper) Check(ctx context.Context, url string) (bool, error) {
	runCtx, cancel := s.runContext(ctx)
	defer cancel()

	res, err := chromedp.RunResponse(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	)
	if err != nil {
		return false, errors.WithStack(err)
	}

	if res == nil {
		return false, errors.Errorf("no document response for '%s'", url)
	}

	return scraper.IsSuccess(int(res.Status)), nil
}

// Get implements scraper.Scraper.
func (s *Scraper) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	runCtx, cancel := s.runContext(ctx)
	defer cancel()

	res, err := chromedp.RunResponse(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := checkResponse(url, res); err != nil {
		return nil, errors.WithStack(err)
	}

	var html string

	err = chromedp.Run(runCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			node, err := dom.GetDocument().Do(ctx)
			if err != nil {
				return errors.WithStack(err)
			}

			res, err := dom.GetOuterHTML().WithNodeID(node.NodeID).Do(ctx)
			if err != nil {
				return errors.WithStack(err)
			}

			html = res

			return nil
		}),
	)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return io.NopCloser(bytes.NewBufferString(html)), nil
}

func checkResponse(url string, res *network.Response) error {
	if res == nil {
		return errors.Errorf("no document response for '%s'", url)
	}

	statusCode := int(res.Status)
	if scraper.IsSuccess(statusCode) {
		return nil
	}

	return &scraper.StatusError{
		URL:        url,
		StatusCode: statusCode,
		Status:     res.StatusText,
	}
}

// runContext bounds a browser run by the configured timeout and by ctx.
func (s *Scraper) runContext(ctx context.Context) (context.Context, context.CancelFunc) {
	var (
		runCtx context.Context
		cancel context.CancelFunc
	)

	if s.opts.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(s.chromeCtx, s.opts.Timeout)
	} else {
		runCtx, cancel = context.WithCancel(s.chromeCtx)
	}

	stop := context.AfterFunc(ctx, cancel)

	return runCtx, func() {
		stop()
		cancel()
	}
}

func (s *Scraper) Close() {
	s.cancelChrome()
}

func NewScraper(headless bool, funcs ...scraper.OptionFunc) (*Scraper, error) {
	opts := scraper.NewOptions(funcs...)

	chromeFlags := []chromedp.ExecAllocatorOption{}

	if opts.UserAgent != "" {
		chromeFlags = append(chromeFlags, chromedp.UserAgent(opts.UserAgent))
	}

	if httpProxy := os.Getenv("HTTP_PROXY"); httpProxy != "" {
		chromeFlags = append(chromeFlags, chromedp.ProxyServer(httpProxy))
	}

	options := []cu.Option{
		cu.WithChromeFlags(chromeFlags...),
	}

	if headless {
		options = append(options, cu.WithHeadless())
	}

	chromeCtx, cancelChrome, err := cu.New(cu.NewConfig(options...))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Allocate the browser on the bare context: a run context carrying a
	// timeout would otherwise own the browser and close it when it expires.
	if err := chromedp.Run(chromeCtx); err != nil {
		cancelChrome()
		return nil, errors.WithStack(err)
	}

	return &Scraper{
		chromeCtx:    chromeCtx,
		cancelChrome: cancelChrome,
		opts:         opts,
	}, nil
}

var _ scraper.Scraper = &Scraper{}
