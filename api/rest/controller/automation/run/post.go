package run

import (
	"net/http"

	"github.com/almanac-cloud/almanac/api/rest/service/automation"
	"github.com/almanac-cloud/almanac/pkg/log"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func Post(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.ErrBadRequest.SetInternal(err)
	}

	var req automation.CreateRunRequest
	if err := c.Bind(&req); err != nil {
		return echo.ErrBadRequest.SetInternal(err)
	}
	req.AutomationID = id

	r, err := automation.Service(c.Request().Context()).CreateRun(&req)
	if err != nil {
		if automation.IsValidation(err) {
			return echo.ErrBadRequest.SetInternal(err)
		}
		log.Error("failed to record run", "automation_id", id, "error", err)
		return echo.ErrInternalServerError.SetInternal(err)
	}

	return c.JSON(http.StatusCreated, r)
}
