package automation

import (
	"errors"
	"net/http"

	"github.com/almanac-cloud/almanac/api/rest/service/automation"
	"github.com/almanac-cloud/almanac/pkg/log"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var errMissingUser = errors.New("user_id is required")

func Put(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.ErrBadRequest.SetInternal(err)
	}

	var req automation.UpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.ErrBadRequest.SetInternal(err)
	}

	a, err := automation.Service(c.Request().Context()).Update(id, &req)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return echo.ErrNotFound
	case automation.IsValidation(err):
		return echo.ErrBadRequest.SetInternal(err)
	case err != nil:
		log.Error("failed to update automation", "id", id, "error", err)
		return echo.ErrInternalServerError.SetInternal(err)
	}

	return c.JSON(http.StatusOK, a)
}
