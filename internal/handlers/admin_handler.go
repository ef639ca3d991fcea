package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gripinvest/internal/services"
)

type AdminHandler struct {
	stats services.StatsService
}

func NewAdminHandler(stats services.StatsService) *AdminHandler {
	return &AdminHandler{stats: stats}
}

// @Summary      Platform statistics
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  services.PlatformStats
// @Failure      403  {object}  map[string]string
// @Router       /admin/platform-stats [get]
func (h *AdminHandler) PlatformStats(c *gin.Context) {
	stats, err := h.stats.PlatformStats()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
