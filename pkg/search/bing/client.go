package bing

import (
	"context"
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/bornholm/imagegrab/pkg/scraper"
	"github.com/bornholm/imagegrab/pkg/search"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

const (
	DefaultSelector  = ".iusc"
	DefaultAttribute = "m"
)

type Client struct {
	scraper   scraper.Scraper
	baseURL   string
	selector  cascadia.Selector
	attribute string
	policy    search.DecodePolicy
}

// Search implements search.Client.
func (c *Client) Search(ctx context.Context, query string, funcs ...search.SearchOptionFunc) ([]search.Result, error) {
	searchURL, err := c.URL(query, funcs...)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return c.Scrape(ctx, searchURL)
}

// URL returns the results page url Search would fetch for query.
func (c *Client) URL(query string, funcs ...search.SearchOptionFunc) (string, error) {
	opts := search.NewSearchOptions(funcs...)

	searchURL, err := SearchURL(c.baseURL, query, opts.Offset)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return searchURL, nil
}

// Scrape fetches the given absolute results page url and extracts one result
// per element matching the client selector.
func (c *Client) Scrape(ctx context.Context, url string) ([]search.Result, error) {
	slog.DebugContext(ctx, "scraping bing image results", slog.String("url", url))

	doc, err := c.fetch(ctx, url)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return c.Extract(ctx, doc)
}

func (c *Client) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := c.scraper.Get(ctx, url)
	if err != nil {
		return nil, search.NetworkError(err)
	}

	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, search.NetworkError(err)
		}

		return nil, search.ParseError(err)
	}

	return doc, nil
}

// Extract decodes the embedded metadata of every matching element of doc, in
// document order.
//
// With search.DecodeAbort the first malformed element fails the whole
// extraction and no result is returned. With search.DecodeSkip malformed
// elements are dropped and their errors are returned aggregated alongside
// the remaining results.
func (c *Client) Extract(ctx context.Context, doc *goquery.Document) ([]search.Result, error) {
	elements := doc.FindMatcher(c.selector)

	slog.DebugContext(ctx, "matched result elements", slog.Int("count", elements.Length()))

	results := make([]search.Result, 0, elements.Length())

	var skipped error

	for i := range elements.Nodes {
		result, err := c.parseElement(i, elements.Eq(i))
		if err != nil {
			if c.policy != search.DecodeSkip {
				return nil, errors.WithStack(err)
			}

			slog.WarnContext(ctx, "skipping malformed result element", slog.Int("index", i), slog.Any("error", err))
			skipped = multierror.Append(skipped, err)

			continue
		}

		results = append(results, result)
	}

	if skipped != nil {
		return results, skipped
	}

	return results, nil
}

func (c *Client) parseElement(index int, element *goquery.Selection) (search.Result, error) {
	raw, exists := element.Attr(c.attribute)
	if !exists {
		return search.Result{}, errors.WithStack(&search.DecodeError{
			Index:     index,
			Attribute: c.attribute,
		})
	}

	m, err := decodeMetadata(raw)
	if err != nil {
		return search.Result{}, errors.WithStack(&search.DecodeError{
			Index:     index,
			Attribute: c.attribute,
			Value:     raw,
			Err:       err,
		})
	}

	return m.Result(), nil
}

type Options struct {
	Scraper   scraper.Scraper
	BaseURL   string
	Selector  string
	Attribute string
	Policy    search.DecodePolicy
}

type OptionFunc func(opts *Options)

func WithScraper(scraper scraper.Scraper) OptionFunc {
	return func(opts *Options) {
		opts.Scraper = scraper
	}
}

func WithBaseURL(baseURL string) OptionFunc {
	return func(opts *Options) {
		opts.BaseURL = baseURL
	}
}

func WithSelector(selector string) OptionFunc {
	return func(opts *Options) {
		opts.Selector = selector
	}
}

func WithAttribute(attribute string) OptionFunc {
	return func(opts *Options) {
		opts.Attribute = attribute
	}
}

func WithDecodePolicy(policy search.DecodePolicy) OptionFunc {
	return func(opts *Options) {
		opts.Policy = policy
	}
}

func NewClient(funcs ...OptionFunc) (*Client, error) {
	opts := &Options{
		BaseURL:   DefaultBaseURL,
		Selector:  DefaultSelector,
		Attribute: DefaultAttribute,
		Policy:    search.DecodeAbort,
	}

	for _, fn := range funcs {
		fn(opts)
	}

	if opts.Scraper == nil {
		opts.Scraper = scraper.DefaultScraper()
	}

	selector, err := cascadia.Compile(opts.Selector)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid selector '%s'", opts.Selector)
	}

	return &Client{
		scraper:   opts.Scraper,
		baseURL:   opts.BaseURL,
		selector:  selector,
		attribute: opts.Attribute,
		policy:    opts.Policy,
	}, nil
}

var _ search.Client = &Client{}
