package main

import (
	"github.com/almanac-cloud/almanac/cmd"
	"github.com/almanac-cloud/almanac/pkg/env"
	"github.com/almanac-cloud/almanac/pkg/log"
)

func main() {
	if err := env.Process(); err != nil {
		log.Fatal("environment failure", "error", err)
	}

	if err := cmd.Execute(); err != nil {
		log.Fatal("almanac failure", "error", err)
	}
}
