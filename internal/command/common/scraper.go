package common

import (
	"time"

	"github.com/bornholm/imagegrab/internal/command"
	"github.com/bornholm/imagegrab/pkg/scraper"
	"github.com/bornholm/imagegrab/pkg/scraper/chromedp"
	"github.com/bornholm/imagegrab/pkg/scraper/colly"
	"github.com/bornholm/imagegrab/pkg/scraper/surf"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	ScraperHTTP     = "http"
	ScraperColly    = "colly"
	ScraperSurf     = "surf"
	ScraperChromedp = "chromedp"
)

func ScraperFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "scraper",
			Value:   ScraperHTTP,
			EnvVars: command.EnvVars("SCRAPER"),
			Usage:   "Page fetcher to use (http, colly, surf, chromedp)",
		},
		&cli.StringFlag{
			Name:    "user-agent",
			Value:   scraper.DefaultUserAgent,
			EnvVars: command.EnvVars("USER_AGENT"),
			Usage:   "User-Agent header sent with the request",
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Value:   30 * time.Second,
			EnvVars: command.EnvVars("TIMEOUT"),
			Usage:   "Maximum duration of the request",
		},
		&cli.BoolFlag{
			Name:    "headful",
			EnvVars: command.EnvVars("HEADFUL"),
			Usage:   "Show the browser window when using the chromedp scraper",
		},
	}
}

// NewScraper builds the scraper selected by the command flags. The returned
// function releases the resources held by the scraper.
func NewScraper(ctx *cli.Context) (scraper.Scraper, func(), error) {
	funcs := []scraper.OptionFunc{
		scraper.WithUserAgent(ctx.String("user-agent")),
		scraper.WithTimeout(ctx.Duration("timeout")),
	}

	noop := func() {}

	switch kind := ctx.String("scraper"); kind {
	case ScraperHTTP:
		return scraper.NewHTTPScraper(nil, funcs...), noop, nil

	case ScraperColly:
		return colly.NewScraper(funcs...), noop, nil

	case ScraperSurf:
		return surf.NewScraper(funcs...), noop, nil

	case ScraperChromedp:
		s, err := chromedp.NewScraper(!ctx.Bool("headful"), funcs...)
		if err != nil {
			return nil, nil, errors.Wrap(err, "could not start browser")
		}

		return s, s.Close, nil

	default:
		return nil, nil, errors.Errorf("unknown scraper '%s'", kind)
	}
}
