package bing

import (
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

const DefaultBaseURL = "https://cn.bing.com/images/search"

// SearchURL embeds the query terms and the 1-based offset of the first
// result into the image search endpoint.
func SearchURL(baseURL string, query string, offset int) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", errors.Wrapf(err, "could not parse base url '%s'", baseURL)
	}

	if !u.IsAbs() {
		return "", errors.Errorf("base url '%s' is not absolute", baseURL)
	}

	if offset < 1 {
		offset = 1
	}

	params := u.Query()
	params.Set("q", query)
	params.Set("first", strconv.Itoa(offset))
	u.RawQuery = params.Encode()

	return u.String(), nil
}
