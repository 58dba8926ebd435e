package definition

import (
	"net/http"

	"github.com/almanac-cloud/almanac/internal/definition"
	"github.com/almanac-cloud/almanac/internal/models"
	schema "github.com/almanac-cloud/almanac/pkg/definition"
	"github.com/almanac-cloud/almanac/pkg/db"
	"github.com/almanac-cloud/almanac/pkg/log"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ApplyRequest carries automation definitions to reconcile for one user.
type ApplyRequest struct {
	UserID      uuid.UUID           `json:"user_id"`
	Definitions []schema.Definition `json:"definitions"`
}

// ApplyResponse reports the reconciled automations.
type ApplyResponse struct {
	Automations models.Automations `json:"automations"`
}

func Apply(c echo.Context) error {
	var req ApplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.ErrBadRequest.SetInternal(err)
	}
	if req.UserID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	importer := definition.NewImporter(db.Connection())
	resp := &ApplyResponse{Automations: make(models.Automations, 0, len(req.Definitions))}

	for i := range req.Definitions {
		def := &req.Definitions[i]
		am, err := importer.Apply(c.Request().Context(), req.UserID, def)
		if err != nil {
			log.Error("failed to apply definition", "name", def.Metadata.Name, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		resp.Automations = append(resp.Automations, am)
	}

	return c.JSON(http.StatusOK, resp)
}
