package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tagdemo/storefront/internal/core/domain"
	"github.com/tagdemo/storefront/internal/core/ports"
)

// DataLayerHandler exposes the event queue to the external tag.
type DataLayerHandler struct {
	events ports.EventQueue
}

func NewDataLayerHandler(events ports.EventQueue) *DataLayerHandler {
	return &DataLayerHandler{events: events}
}

// List returns queued events in push order. With drain=true the queue is
// emptied.
//
// @Summary      Read the data layer
// @Tags         datalayer
// @Produce      json
// @Param        drain  query     bool  false  "Remove returned events"
// @Success      200    {object}  dataLayerResponse
// @Failure      400    {object}  map[string]string
// @Router       /v1/datalayer [get]
func (h *DataLayerHandler) List(c echo.Context) error {
	drain := false
	if v := c.QueryParam("drain"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "drain must be a boolean")
		}
		drain = b
	}

	var events []domain.TagEvent
	if drain {
		events = h.events.Drain()
	} else {
		events = h.events.Snapshot()
	}
	return c.JSON(http.StatusOK, dataLayerResponse{Events: events, Count: len(events), Drained: drain})
}
