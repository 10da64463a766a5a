package scraper

import "fmt"

// StatusError is returned when the remote server answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
	Body       []byte
}

func (e *StatusError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("unexpected response http status %d (%s) for '%s'", e.StatusCode, e.Status, e.URL)
	}

	return fmt.Sprintf("unexpected response http status %d (%s) for '%s':\n%s", e.StatusCode, e.Status, e.URL, e.Body)
}

func IsSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
