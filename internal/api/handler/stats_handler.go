package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/unmatched/taskboard/internal/core/ports"
)

// StatsHandler serves the team statistics view.
type StatsHandler struct {
	tasks ports.TaskService
}

func NewStatsHandler(tasks ports.TaskService) *StatsHandler {
	return &StatsHandler{tasks: tasks}
}

// Get handles GET /api/statistics.
//
// @Summary      Team and personal task statistics
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Statistics
// @Router       /api/statistics [get]
func (h *StatsHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	stats, err := h.tasks.Statistics(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
