package search

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const resultsPage = `<html><body>
<a class="iusc" m='{"murl":"http://x/1.jpg","t":"First"}'></a>
<a class="iusc" m='not-json'></a>
<a class="iusc" m='{"murl":"http://x/3.jpg","t":"Third"}'></a>
</body></html>`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, resultsPage)
	}))

	t.Cleanup(server.Close)

	return server
}

func runSearch(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buff bytes.Buffer

	app := &cli.App{
		Name:     "imagegrab",
		Commands: []*cli.Command{Search()},
		Writer:   &buff,
		ExitErrHandler: func(cCtx *cli.Context, err error) {
		},
	}

	err := app.Run(append([]string{"imagegrab", "search"}, args...))

	return buff.String(), err
}

func TestSearchCommandAbortsOnInvalidMetadata(t *testing.T) {
	server := newServer(t)

	_, err := runSearch(t, "--query", "cats", "--base-url", server.URL)
	assert.Error(t, err)
}

func TestSearchCommandSkipInvalid(t *testing.T) {
	server := newServer(t)

	out, err := runSearch(t, "--query", "cats", "--base-url", server.URL, "--skip-invalid", "--format", "json")
	require.NoError(t, err)

	var doc struct {
		Query   string `json:"query"`
		Engine  string `json:"engine"`
		URL     string `json:"url"`
		Results []struct {
			Title string `json:"title"`
			URL   string `json:"url"`
		} `json:"results"`
	}

	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "cats", doc.Query)
	assert.Equal(t, EngineBing, doc.Engine)
	assert.Contains(t, doc.URL, server.URL)
	require.Len(t, doc.Results, 2)
	assert.Equal(t, "http://x/1.jpg", doc.Results[0].URL)
	assert.Equal(t, "Third", doc.Results[1].Title)
}

func TestSearchCommandOffset(t *testing.T) {
	server := newServer(t)

	out, err := runSearch(t, "--query", "cats", "--base-url", server.URL+"/images/search", "--offset", "36", "--skip-invalid", "--format", "json")
	require.NoError(t, err)

	var doc struct {
		Offset int    `json:"offset"`
		URL    string `json:"url"`
	}

	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, 36, doc.Offset)
	assert.Equal(t, server.URL+"/images/search?first=36&q=cats", doc.URL)
}

func TestSearchCommandOutputDirectory(t *testing.T) {
	server := newServer(t)
	dir := t.TempDir()

	_, err := runSearch(t, "--query", "Hatsune Miku", "--base-url", server.URL, "--skip-invalid", "--output", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "hatsune-miku.yaml"))
	require.NoError(t, err)

	assert.Contains(t, string(data), "url: http://x/3.jpg")
}

func TestSearchCommandGoogleRequiresCredentials(t *testing.T) {
	_, err := runSearch(t, "--query", "cats", "--engine", "google")
	assert.Error(t, err)
}

func TestSearchCommandUnknownScraper(t *testing.T) {
	_, err := runSearch(t, "--query", "cats", "--scraper", "telnet")
	assert.Error(t, err)
}
