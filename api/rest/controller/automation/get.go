package automation

import (
	"net/http"

	"github.com/almanac-cloud/almanac/api/rest/service/automation"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.ErrBadRequest.SetInternal(err)
	}

	a, err := automation.Service(c.Request().Context()).Get(id)

	switch {
	case err != nil:
		return echo.ErrInternalServerError.SetInternal(err)
	case a == nil:
		return echo.ErrNotFound
	default:
		return c.JSON(http.StatusOK, a)
	}
}
