package search

import "context"

type Client interface {
	Search(ctx context.Context, query string, funcs ...SearchOptionFunc) ([]Result, error)
}

// Result is a single image found on a search results page.
type Result struct {
	Title     string `json:"title" yaml:"title" jsonschema:"description=Title of the image, empty when the engine does not provide one"`
	URL       string `json:"url" yaml:"url" jsonschema:"description=Direct URL of the media"`
	Page      string `json:"page,omitempty" yaml:"page,omitempty" jsonschema:"description=URL of the page hosting the image"`
	Thumbnail string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty" jsonschema:"description=URL of the engine thumbnail"`
}

type SearchOptions struct {
	Offset int
}

type SearchOptionFunc func(opts *SearchOptions)

func NewSearchOptions(funcs ...SearchOptionFunc) *SearchOptions {
	opts := &SearchOptions{
		Offset: 1,
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

// WithOffset sets the 1-based position of the first result to return.
func WithOffset(offset int) SearchOptionFunc {
	return func(opts *SearchOptions) {
		if offset < 1 {
			offset = 1
		}

		opts.Offset = offset
	}
}
