package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/bornholm/imagegrab/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDocument() *Document {
	return &Document{
		Query:     "cats",
		Offset:    1,
		Engine:    "bing",
		URL:       "https://cn.bing.com/images/search?first=1&q=cats",
		FetchedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Results: []search.Result{
			{Title: "Hello", URL: "http://x/img.jpg", Page: "http://x/page.html"},
			{Title: "", URL: "http://x/other.png"},
		},
	}
}

func TestWriteYAML(t *testing.T) {
	var buff bytes.Buffer

	err := Write(&buff, FormatYAML, newDocument())
	require.NoError(t, err)

	output := buff.String()

	assert.Contains(t, output, "query: cats")
	assert.Contains(t, output, "url: http://x/img.jpg")
	assert.Contains(t, output, "page: http://x/page.html")
	assert.Contains(t, output, "title: Hello")
}

func TestWriteJSONKeepsOrder(t *testing.T) {
	var buff bytes.Buffer

	err := Write(&buff, FormatJSON, newDocument())
	require.NoError(t, err)

	var raw struct {
		Results []map[string]string `json:"results"`
	}

	require.NoError(t, json.Unmarshal(buff.Bytes(), &raw))
	require.Len(t, raw.Results, 2)

	assert.Equal(t, "http://x/img.jpg", raw.Results[0]["url"])
	assert.Equal(t, "http://x/other.png", raw.Results[1]["url"])

	_, hasPage := raw.Results[1]["page"]
	assert.False(t, hasPage, "empty page should be omitted")
}

func TestWriteMarkdown(t *testing.T) {
	var buff bytes.Buffer

	err := Write(&buff, FormatMarkdown, newDocument())
	require.NoError(t, err)

	output := buff.String()

	assert.Contains(t, output, "# cats")
	assert.Contains(t, output, "[Hello](http://x/img.jpg)")
	assert.Contains(t, output, "[source](http://x/page.html)")
}

func TestWriteMarkdownWithoutResults(t *testing.T) {
	doc := newDocument()
	doc.Results = nil

	markdown, err := Markdown(doc)
	require.NoError(t, err)

	assert.Contains(t, markdown, "No results.")
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, format)
	assert.Equal(t, ".json", format.Extension())

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestSchema(t *testing.T) {
	schema := Schema()

	data, err := json.Marshal(schema)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"results"`)
	assert.Contains(t, string(data), `"fetched_at"`)
	assert.Contains(t, string(data), "Direct URL of the media")
}
