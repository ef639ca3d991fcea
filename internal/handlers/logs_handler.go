package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gripinvest/internal/authz"
	"gripinvest/internal/services"
)

type LogsHandler struct {
	logs services.LogsService
}

func NewLogsHandler(logs services.LogsService) *LogsHandler {
	return &LogsHandler{logs: logs}
}

// @Summary      Transaction logs
// @Description  Admins see every account (optionally filtered by ?email=), users see their own. Failed requests get an AI summary.
// @Tags         Logs
// @Produce      json
// @Security     BearerAuth
// @Param        email  query     string  false  "Filter by account email (admin only)"
// @Success      200    {object}  services.LogsResult
// @Router       /transaction-logs [get]
func (h *LogsHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var (
		result *services.LogsResult
		err    error
	)
	if currentRole(c) == authz.RoleAdmin {
		result, err = h.logs.ForAdmin(c.Request.Context(), c.Query("email"))
	} else {
		result, err = h.logs.ForUser(c.Request.Context(), userID)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
