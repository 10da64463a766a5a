package output

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/pkg/errors"
	"go.yaml.in/yaml/v3"
)

type Format string

const (
	FormatYAML     Format = "yaml"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

var Formats = []Format{FormatYAML, FormatJSON, FormatMarkdown}

func ParseFormat(raw string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(strings.TrimSpace(raw)) {
			return f, nil
		}
	}

	return "", errors.Errorf("unknown output format '%s'", raw)
}

// Extension returns the file extension associated with the format.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatMarkdown:
		return ".md"
	default:
		return ".yaml"
	}
}

func Write(w io.Writer, format Format, doc *Document) error {
	switch format {
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)

		if err := encoder.Encode(doc); err != nil {
			return errors.Wrap(err, "could not encode yaml document")
		}

		return errors.WithStack(encoder.Close())

	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(doc); err != nil {
			return errors.Wrap(err, "could not encode json document")
		}

		return nil

	case FormatMarkdown:
		markdown, err := Markdown(doc)
		if err != nil {
			return errors.WithStack(err)
		}

		if _, err := io.WriteString(w, markdown+"\n"); err != nil {
			return errors.WithStack(err)
		}

		return nil

	default:
		return errors.Errorf("unknown output format '%s'", format)
	}
}

// Markdown renders the document as an ordered list of links. The list is
// built as HTML first so titles and urls are escaped by the converter.
func Markdown(doc *Document) (string, error) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("<h1>%s</h1>", html.EscapeString(doc.Query)))
	sb.WriteString(fmt.Sprintf("<p>Engine: %s, offset: %d, fetched at %s</p>",
		html.EscapeString(doc.Engine), doc.Offset, doc.FetchedAt.Format("2006-01-02 15:04:05")))

	if len(doc.Results) == 0 {
		sb.WriteString("<p>No results.</p>")
	} else {
		sb.WriteString("<ol>")

		for _, r := range doc.Results {
			title := r.Title
			if title == "" {
				title = r.URL
			}

			sb.WriteString(fmt.Sprintf(`<li><a href="%s">%s</a>`, html.EscapeString(r.URL), html.EscapeString(title)))

			if r.Page != "" {
				sb.WriteString(fmt.Sprintf(` (<a href="%s">source</a>)`, html.EscapeString(r.Page)))
			}

			sb.WriteString("</li>")
		}

		sb.WriteString("</ol>")
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)

	markdown, err := conv.ConvertString(sb.String())
	if err != nil {
		return "", errors.WithStack(err)
	}

	return strings.TrimSpace(markdown), nil
}
