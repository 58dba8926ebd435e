package env

import (
	"time"

	"github.com/almanac-cloud/almanac/pkg/log"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

var variables = new(Environment)

// Process the environment variables set for almanac.
func Process() error {
	if err := envconfig.Process("almanac", variables); err != nil {
		return errors.Wrap(err, "failed to process environment variables")
	}

	// set the log level
	if err := log.SetLevel(variables.LogLevel); err != nil {
		return errors.Wrap(err, "failed to set log level")
	}

	return nil
}

// Variables returns the processed environment variables.
func Variables() Environment {
	return *variables
}

// Environment defines the environment variables used
// by almanac.
type Environment struct {
	LogLevel        string        `default:"info"`
	Port            int           `default:"8080"`
	DatabaseType    string        `default:"sqlite"`
	DatabaseDSN     string        `default:"almanac.db"`
	CacheTTL        time.Duration `default:"30s"`
	EventBufferSize int           `default:"64"`
}
