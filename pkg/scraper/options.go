package scraper

import (
	"net/http"
	"time"
)

type Options struct {
	UserAgent string
	Timeout   time.Duration
	Headers   http.Header
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		UserAgent: DefaultUserAgent,
		Timeout:   30 * time.Second,
		Headers:   http.Header{},
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithUserAgent(userAgent string) OptionFunc {
	return func(opts *Options) {
		opts.UserAgent = userAgent
	}
}

// WithTimeout bounds the whole request, body read included. Zero disables it.
func WithTimeout(timeout time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.Timeout = timeout
	}
}

func WithHeader(key, value string) OptionFunc {
	return func(opts *Options) {
		opts.Headers.Set(key, value)
	}
}
