package schema

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func runSchema(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buff bytes.Buffer

	app := &cli.App{
		Name:     "imagegrab",
		Commands: []*cli.Command{Schema()},
		Writer:   &buff,
		ExitErrHandler: func(cCtx *cli.Context, err error) {
		},
	}

	err := app.Run(append([]string{"imagegrab", "schema"}, args...))

	return buff.String(), err
}

func TestSchemaCommand(t *testing.T) {
	out, err := runSchema(t)
	require.NoError(t, err)

	var schema struct {
		Type       string                     `json:"type"`
		Properties map[string]json.RawMessage `json:"properties"`
	}

	require.NoError(t, json.Unmarshal([]byte(out), &schema))

	assert.Equal(t, "object", schema.Type)

	for _, name := range []string{"query", "offset", "engine", "url", "fetched_at", "results"} {
		assert.Contains(t, schema.Properties, name)
	}

	var results struct {
		Type  string `json:"type"`
		Items struct {
			Properties map[string]json.RawMessage `json:"properties"`
		} `json:"items"`
	}

	require.NoError(t, json.Unmarshal(schema.Properties["results"], &results))

	assert.Equal(t, "array", results.Type)
	assert.Contains(t, results.Items.Properties, "title")
	assert.Contains(t, results.Items.Properties, "url")
}
