package automation

import (
	"net/http"

	"github.com/almanac-cloud/almanac/api/rest/service/automation"
	"github.com/almanac-cloud/almanac/pkg/log"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type PostRequest struct {
	UserID uuid.UUID `json:"user_id"`
	automation.CreateRequest
}

func Post(c echo.Context) error {
	var req PostRequest

	if err := c.Bind(&req); err != nil {
		return echo.ErrBadRequest.SetInternal(err)
	}

	if req.UserID == uuid.Nil {
		return echo.ErrBadRequest.SetInternal(errMissingUser)
	}

	log.Info("creating automation",
		"user_id", req.UserID,
		"name", req.Name)

	a, err := automation.Service(c.Request().Context()).Create(req.UserID, &req.CreateRequest)
	if err != nil {
		if automation.IsValidation(err) {
			return echo.ErrBadRequest.SetInternal(err)
		}
		log.Error("failed to create automation", "error", err)
		return echo.ErrInternalServerError.SetInternal(err)
	}

	return c.JSON(http.StatusCreated, a)
}
