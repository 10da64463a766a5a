package main

import (
	"github.com/bornholm/imagegrab/internal/command"
	"github.com/bornholm/imagegrab/internal/command/check"
	"github.com/bornholm/imagegrab/internal/command/schema"
	"github.com/bornholm/imagegrab/internal/command/search"
)

var version = "dev"

func main() {
	command.Main(
		"imagegrab",
		version,
		"Extract image results from a search engine results page",
		search.Search(),
		check.Check(),
		schema.Schema(),
	)
}
