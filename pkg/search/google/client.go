package google

import (
	"context"
	"log/slog"

	"github.com/bornholm/imagegrab/pkg/search"
	"github.com/pkg/errors"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// Client implements the search.Client interface using the image search mode
// of the Google Custom Search API.
type Client struct {
	apiKey   string
	cx       string
	endpoint string
}

// Search implements the search.Client interface.
func (c *Client) Search(ctx context.Context, query string, funcs ...search.SearchOptionFunc) ([]search.Result, error) {
	opts := search.NewSearchOptions(funcs...)

	serviceOptions := []option.ClientOption{option.WithAPIKey(c.apiKey)}
	if c.endpoint != "" {
		serviceOptions = append(serviceOptions, option.WithEndpoint(c.endpoint))
	}

	service, err := customsearch.NewService(ctx, serviceOptions...)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	slog.DebugContext(ctx, "executing image search", slog.String("query", query), slog.Int("offset", opts.Offset))

	call := service.Cse.List().
		Context(ctx).
		Q(query).
		Cx(c.cx).
		SearchType("image").
		Num(10).
		Start(int64(opts.Offset))

	res, err := call.Do()
	if err != nil {
		return nil, search.NetworkError(err)
	}

	results := make([]search.Result, 0, len(res.Items))
	for _, item := range res.Items {
		result := search.Result{
			Title: item.Title,
			URL:   item.Link,
		}

		if item.Image != nil {
			result.Page = item.Image.ContextLink
			result.Thumbnail = item.Image.ThumbnailLink
		}

		results = append(results, result)
	}

	return results, nil
}

type OptionFunc func(c *Client)

// WithEndpoint overrides the API base url.
func WithEndpoint(endpoint string) OptionFunc {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// NewClient creates a new Google Custom Search API client.
func NewClient(apiKey, cx string, funcs ...OptionFunc) *Client {
	client := &Client{
		apiKey: apiKey,
		cx:     cx,
	}

	for _, fn := range funcs {
		fn(client)
	}

	return client
}

var _ search.Client = &Client{}
