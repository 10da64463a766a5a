package search

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bornholm/imagegrab/internal/command"
	"github.com/bornholm/imagegrab/internal/command/common"
	"github.com/bornholm/imagegrab/internal/logx"
	"github.com/bornholm/imagegrab/internal/output"
	se "github.com/bornholm/imagegrab/pkg/search"
	"github.com/bornholm/imagegrab/pkg/search/bing"
	"github.com/bornholm/imagegrab/pkg/search/google"
	"github.com/gosimple/slug"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	EngineBing   = "bing"
	EngineGoogle = "google"
)

func Search() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "query",
			Required: true,
			Aliases:  []string{"q"},
			EnvVars:  command.EnvVars("QUERY"),
			Usage:    "Terms to search images for",
		},
		&cli.IntFlag{
			Name:    "offset",
			Value:   1,
			Aliases: []string{"f"},
			EnvVars: command.EnvVars("OFFSET"),
			Usage:   "1-based position of the first result",
		},
		&cli.StringFlag{
			Name:    "engine",
			Value:   EngineBing,
			Aliases: []string{"e"},
			EnvVars: command.EnvVars("ENGINE"),
			Usage:   "Search engine (bing, google)",
		},
		&cli.StringFlag{
			Name:    "base-url",
			Value:   bing.DefaultBaseURL,
			EnvVars: command.EnvVars("BASE_URL"),
			Usage:   "Image search endpoint of the bing engine",
		},
		&cli.BoolFlag{
			Name:    "skip-invalid",
			EnvVars: command.EnvVars("SKIP_INVALID"),
			Usage:   "Skip results whose metadata cannot be decoded instead of failing",
		},
		&cli.StringFlag{
			Name:    "format",
			Value:   string(output.FormatYAML),
			EnvVars: command.EnvVars("FORMAT"),
			Usage:   "Output format (yaml, json, markdown)",
		},
		&cli.StringFlag{
			Name:      "output",
			Value:     "",
			Aliases:   []string{"o"},
			EnvVars:   command.EnvVars("OUTPUT"),
			TakesFile: true,
			Usage:     "Output file or directory, default to stdout",
		},
		&cli.StringFlag{
			Name:    "google-api-key",
			EnvVars: command.EnvVars("GOOGLE_API_KEY"),
			Usage:   "Google Custom Search API key",
		},
		&cli.StringFlag{
			Name:    "google-cx",
			EnvVars: command.EnvVars("GOOGLE_CX"),
			Usage:   "Google Custom Search engine identifier",
		},
	}

	return &cli.Command{
		Name:  "search",
		Usage: "Fetch one page of image results and print them",
		Flags: append(flags, common.ScraperFlags()...),
		Action: func(cliCtx *cli.Context) error {
			query := strings.TrimSpace(cliCtx.String("query"))
			if query == "" {
				return errors.New("query must not be empty")
			}

			offset := cliCtx.Int("offset")
			if offset < 1 {
				offset = 1
			}

			engine := cliCtx.String("engine")

			format, err := output.ParseFormat(cliCtx.String("format"))
			if err != nil {
				return errors.WithStack(err)
			}

			ctx := logx.WithAttrs(cliCtx.Context, slog.String("query", query), slog.String("engine", engine))

			doc := &output.Document{
				Query:     query,
				Offset:    offset,
				Engine:    engine,
				FetchedAt: time.Now().UTC(),
			}

			switch engine {
			case EngineBing:
				doc.URL, doc.Results, err = searchBing(ctx, cliCtx, query, offset)
			case EngineGoogle:
				doc.Results, err = searchGoogle(ctx, cliCtx, query, offset)
			default:
				err = errors.Errorf("unknown engine '%s'", engine)
			}
			if err != nil {
				return errors.Wrap(err, "search failed")
			}

			slog.InfoContext(ctx, "search done", slog.Int("results", len(doc.Results)))

			return errors.WithStack(writeDocument(ctx, cliCtx.App.Writer, cliCtx.String("output"), format, doc))
		},
	}
}

func searchBing(ctx context.Context, cliCtx *cli.Context, query string, offset int) (string, []se.Result, error) {
	s, closeScraper, err := common.NewScraper(cliCtx)
	if err != nil {
		return "", nil, errors.WithStack(err)
	}

	defer closeScraper()

	policy := se.DecodeAbort
	if cliCtx.Bool("skip-invalid") {
		policy = se.DecodeSkip
	}

	client, err := bing.NewClient(
		bing.WithScraper(s),
		bing.WithBaseURL(cliCtx.String("base-url")),
		bing.WithDecodePolicy(policy),
	)
	if err != nil {
		return "", nil, errors.WithStack(err)
	}

	searchURL, err := client.URL(query, se.WithOffset(offset))
	if err != nil {
		return "", nil, errors.WithStack(err)
	}

	results, err := client.Scrape(ctx, searchURL)
	if err != nil {
		if policy == se.DecodeSkip && onlyDecodeErrors(err) {
			slog.WarnContext(ctx, "some results were skipped", slog.Any("error", err))
			return searchURL, results, nil
		}

		return "", nil, errors.WithStack(err)
	}

	return searchURL, results, nil
}

// onlyDecodeErrors reports whether err is made of decode errors and nothing else.
func onlyDecodeErrors(err error) bool {
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return errors.Is(err, se.ErrDecode)
	}

	for _, e := range merr.Errors {
		if !errors.Is(e, se.ErrDecode) {
			return false
		}
	}

	return true
}

func searchGoogle(ctx context.Context, cliCtx *cli.Context, query string, offset int) ([]se.Result, error) {
	apiKey := cliCtx.String("google-api-key")
	cx := cliCtx.String("google-cx")

	if apiKey == "" || cx == "" {
		return nil, errors.New("the google engine requires --google-api-key and --google-cx")
	}

	client := google.NewClient(apiKey, cx)

	results, err := client.Search(ctx, query, se.WithOffset(offset))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return results, nil
}

func writeDocument(ctx context.Context, stdout io.Writer, target string, format output.Format, doc *output.Document) error {
	if target == "" || target == "-" {
		return errors.WithStack(output.Write(stdout, format, doc))
	}

	if info, err := os.Stat(target); err == nil && info.IsDir() {
		target = filepath.Join(target, slug.Make(doc.Query)+format.Extension())
	}

	file, err := os.Create(target)
	if err != nil {
		return errors.Wrapf(err, "could not create output file '%s'", target)
	}

	if err := output.Write(file, format, doc); err != nil {
		file.Close()
		return errors.WithStack(err)
	}

	if err := file.Close(); err != nil {
		return errors.WithStack(err)
	}

	slog.InfoContext(ctx, "results written", slog.String("output", target))

	return nil
}
