package schema

import (
	"encoding/json"

	"github.com/bornholm/imagegrab/internal/output"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Schema() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Print the JSON Schema of the search command output",
		Action: func(cliCtx *cli.Context) error {
			encoder := json.NewEncoder(cliCtx.App.Writer)
			encoder.SetIndent("", "  ")

			if err := encoder.Encode(output.Schema()); err != nil {
				return errors.Wrap(err, "could not encode schema")
			}

			return nil
		},
	}
}
