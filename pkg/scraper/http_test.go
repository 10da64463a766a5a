package scraper

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPScraperGet(t *testing.T) {
	var userAgent, accept string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		accept = r.Header.Get("Accept")
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer server.Close()

	s := NewHTTPScraper(server.Client(), WithHeader("Accept", "text/html"))

	body, err := s.Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)

	assert.Equal(t, "<html><body>ok</body></html>", string(data))
	assert.Equal(t, DefaultUserAgent, userAgent)
	assert.Equal(t, "text/html", accept)
}

func TestHTTPScraperCustomUserAgent(t *testing.T) {
	var userAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	s := NewHTTPScraper(server.Client(), WithUserAgent("imagegrab-test/1.0"))

	body, err := s.Get(context.Background(), server.URL)
	require.NoError(t, err)
	body.Close()

	assert.Equal(t, "imagegrab-test/1.0", userAgent)
}

func TestHTTPScraperNonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusMovedPermanently, http.StatusNotFound, http.StatusInternalServerError} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			w.Write([]byte("nope"))
		}))

		client := server.Client()
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}

		s := NewHTTPScraper(client)

		body, err := s.Get(context.Background(), server.URL)
		assert.Nil(t, body)

		var statusErr *StatusError
		if assert.True(t, errors.As(err, &statusErr), "status %d", status) {
			assert.Equal(t, status, statusErr.StatusCode)
			assert.Equal(t, "nope", string(statusErr.Body))
		}

		ok, err := s.Check(context.Background(), server.URL)
		assert.NoError(t, err)
		assert.False(t, ok)

		server.Close()
	}
}

func TestHTTPScraperTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	s := NewHTTPScraper(&http.Client{}, WithTimeout(50*time.Millisecond))

	_, err := s.Get(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestHTTPScraperKeepsClientTimeout(t *testing.T) {
	client := &http.Client{Timeout: time.Minute}

	s := NewHTTPScraper(client, WithTimeout(time.Second))

	assert.Equal(t, time.Minute, s.client.Timeout)
}

func TestDefaultScraper(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	previous := DefaultScraper()
	defer SetDefault(previous)

	SetDefault(NewHTTPScraper(server.Client()))

	ok, err := Check(context.Background(), server.URL)
	require.NoError(t, err)
	assert.True(t, ok)

	SetDefault(nil)
	assert.NotNil(t, DefaultScraper())
}

func TestSetDefaultReturnsReplaced(t *testing.T) {
	original := DefaultScraper()

	replacement := NewHTTPScraper(nil, WithUserAgent("imagegrab-test"))

	previous := SetDefault(replacement)
	assert.Same(t, original, previous)
	assert.Same(t, replacement, DefaultScraper())

	restored := SetDefault(previous)
	assert.Same(t, replacement, restored)
	assert.Same(t, original, DefaultScraper())
}
