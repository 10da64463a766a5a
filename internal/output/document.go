package output

import (
	"time"

	"github.com/bornholm/imagegrab/pkg/search"
	"github.com/invopop/jsonschema"
)

// Document is what a search command run produces.
type Document struct {
	Query     string          `json:"query" yaml:"query" jsonschema:"required,description=Searched terms"`
	Offset    int             `json:"offset" yaml:"offset" jsonschema:"required,description=1-based position of the first result"`
	Engine    string          `json:"engine" yaml:"engine" jsonschema:"required,description=Search engine used"`
	URL       string          `json:"url,omitempty" yaml:"url,omitempty" jsonschema:"description=Fetched results page"`
	FetchedAt time.Time       `json:"fetched_at" yaml:"fetched_at" jsonschema:"required,description=Time the results were fetched"`
	Results   []search.Result `json:"results" yaml:"results" jsonschema:"required,description=Results in page order"`
}

func Schema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		DoNotReference: true,
	}

	return reflector.Reflect(&Document{})
}
