package stats

import (
	"net/http"

	"github.com/almanac-cloud/almanac/api/rest/service/stats"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Get returns aggregated automation statistics for one user.
func Get(c echo.Context) error {
	userID, err := uuid.Parse(c.QueryParam("user_id"))
	if err != nil {
		return echo.ErrBadRequest.SetInternal(err)
	}

	resp, err := stats.New(c.Request().Context()).Get(userID)
	if err != nil {
		return echo.ErrInternalServerError.SetInternal(err)
	}

	return c.JSON(http.StatusOK, resp)
}
