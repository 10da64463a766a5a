package check

import (
	"fmt"
	"log/slog"

	"github.com/bornholm/imagegrab/internal/command"
	"github.com/bornholm/imagegrab/internal/command/common"
	"github.com/bornholm/imagegrab/pkg/scraper"
	"github.com/bornholm/imagegrab/pkg/search/bing"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Check() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "url",
			Value:   bing.DefaultBaseURL,
			EnvVars: command.EnvVars("BASE_URL"),
			Usage:   "URL of the endpoint to check",
		},
	}

	return &cli.Command{
		Name:  "check",
		Usage: "Check that the search endpoint answers with a successful status",
		Flags: append(flags, common.ScraperFlags()...),
		Action: func(cliCtx *cli.Context) error {
			ctx := cliCtx.Context
			url := cliCtx.String("url")

			s, closeScraper, err := common.NewScraper(cliCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			defer closeScraper()

			previous := scraper.SetDefault(s)
			defer scraper.SetDefault(previous)

			slog.DebugContext(ctx, "checking endpoint", slog.String("url", url))

			ok, err := scraper.Check(ctx, url)
			if err != nil {
				return errors.Wrapf(err, "could not reach '%s'", url)
			}

			if !ok {
				return errors.Errorf("'%s' did not answer with a successful status", url)
			}

			fmt.Fprintf(cliCtx.App.Writer, "%s: ok\n", url)

			return nil
		},
	}
}
