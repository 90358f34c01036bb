package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/api/view"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/ports"
)

type DashboardHandler struct {
	dashboard ports.DashboardService
}

func NewDashboardHandler(dashboard ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Show handles GET /.
func (h *DashboardHandler) Show(c echo.Context) error {
	summary := h.dashboard.Summary(reqCtx(c), currentSession(c))
	return renderPage(c, http.StatusOK, "dashboard", view.Page{
		Title:  "Tableau de bord",
		Active: "dashboard",
		Data:   summary,
	})
}
