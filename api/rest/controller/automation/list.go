package automation

import (
	"net/http"

	"github.com/almanac-cloud/almanac/api/rest/service/automation"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func List(c echo.Context) error {
	req, err := parseListRequest(c)
	if err != nil {
		return echo.ErrBadRequest.SetInternal(err)
	}

	automations, err := automation.Service(c.Request().Context()).List(req)
	if err != nil {
		if automation.IsValidation(err) {
			return echo.ErrBadRequest.SetInternal(err)
		}
		return echo.ErrInternalServerError.SetInternal(err)
	}

	return c.JSON(http.StatusOK, automations)
}

func parseListRequest(c echo.Context) (*automation.ListRequest, error) {
	req := &automation.ListRequest{
		Status: c.QueryParam("status"),
	}

	if user := c.QueryParam("user_id"); user != "" {
		id, err := uuid.Parse(user)
		if err != nil {
			return nil, err
		}
		req.UserID = id
	}

	return req, nil
}
