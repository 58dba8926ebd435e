package bind

import (
	"github.com/almanac-cloud/almanac/api/rest/controller/automation"
	"github.com/almanac-cloud/almanac/api/rest/controller/automation/run"
	"github.com/almanac-cloud/almanac/api/rest/controller/calendar"
	"github.com/almanac-cloud/almanac/api/rest/controller/definition"
	eventctrl "github.com/almanac-cloud/almanac/api/rest/controller/event"
	"github.com/almanac-cloud/almanac/api/rest/controller/stats"
	"github.com/almanac-cloud/almanac/internal/event"
	"github.com/labstack/echo/v4"
)

func All(g *echo.Group, bus event.Bus) {
	// automations
	{
		g.GET("/automations", automation.List)
		g.GET("/automations/:id", automation.Get)
		g.POST("/automations", automation.Post)
		g.PUT("/automations/:id", automation.Put)
		g.DELETE("/automations/:id", automation.Delete)
	}

	// audit runs
	{
		g.GET("/automations/:id/runs", run.List)
		g.GET("/automations/:id/runs/last", run.Last)
		g.POST("/automations/:id/runs", run.Post)
	}

	// definitions
	{
		g.POST("/definitions/apply", definition.Apply)
	}

	// aggregations
	{
		g.GET("/calendar", calendar.Get)
		g.GET("/stats", stats.Get)
	}

	// events
	if bus != nil {
		g.GET("/events", eventctrl.New(bus).Stream)
	}
}
