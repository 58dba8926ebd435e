package calendar

import (
	"net/http"
	"time"

	"github.com/almanac-cloud/almanac/api/rest/service/calendar"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func Get(c echo.Context) error {
	userID, err := uuid.Parse(c.QueryParam("user_id"))
	if err != nil {
		return echo.ErrBadRequest.SetInternal(err)
	}

	ref := time.Now().UTC()
	if raw := c.QueryParam("month"); raw != "" {
		if ref, err = time.Parse("2006-01", raw); err != nil {
			return echo.ErrBadRequest.SetInternal(err)
		}
	}

	resp, err := calendar.New(c.Request().Context()).Month(userID, ref)
	if err != nil {
		return echo.ErrInternalServerError.SetInternal(err)
	}

	return c.JSON(http.StatusOK, resp)
}
