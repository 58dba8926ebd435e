package run

import (
	"net/http"
	"strconv"

	"github.com/almanac-cloud/almanac/api/rest/service/automation"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func List(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.ErrBadRequest.SetInternal(err)
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			return echo.ErrBadRequest.SetInternal(err)
		}
	}

	runs, err := automation.Service(c.Request().Context()).ListRuns(id, limit)
	if err != nil {
		return echo.ErrInternalServerError.SetInternal(err)
	}

	return c.JSON(http.StatusOK, runs)
}
