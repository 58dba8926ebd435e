package rest

import (
	"github.com/almanac-cloud/almanac/api/rest/bind"
	"github.com/almanac-cloud/almanac/internal/event"
	"github.com/labstack/echo/v4"
)

// Bind the REST endpoints to the versioned endpoint group.
func Bind(group *echo.Group, bus event.Bus) {
	bind.All(group, bus)
}
