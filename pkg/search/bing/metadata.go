package bing

import (
	"encoding/json"

	"github.com/bornholm/imagegrab/pkg/search"
	"github.com/pkg/errors"
)

// metadata is the JSON object Bing serializes into the "m" attribute of
// each result anchor. Absent keys decode to nil.
type metadata struct {
	MediaURL     *string `json:"murl"`
	Title        *string `json:"t"`
	PageURL      *string `json:"purl"`
	ThumbnailURL *string `json:"turl"`
}

func decodeMetadata(raw string) (*metadata, error) {
	var m metadata
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, errors.WithStack(err)
	}

	return &m, nil
}

func (m *metadata) Result() search.Result {
	return search.Result{
		Title:     deref(m.Title),
		URL:       deref(m.MediaURL),
		Page:      deref(m.PageURL),
		Thumbnail: deref(m.ThumbnailURL),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
