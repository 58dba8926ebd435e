package api

import (
	"fmt"

	"github.com/almanac-cloud/almanac/api/gql"
	rest "github.com/almanac-cloud/almanac/api/rest/v1"
	"github.com/almanac-cloud/almanac/internal/event"
	"github.com/almanac-cloud/almanac/pkg/env"
	"github.com/labstack/echo-contrib/prometheus"
	"github.com/labstack/echo/v4"
)

// Start launches Almanac's API.
func Start(bus event.Bus) error {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// health
	e.GET("/health", Health)

	// metrics
	prometheus.NewPrometheus("almanac", nil).Use(e)

	// REST
	rest.Bind(e.Group("/v1"), bus)

	// GraphQL
	e.GET("/gql", gql.Handler())

	return e.Start(fmt.Sprintf(":%v", env.Variables().Port))
}
