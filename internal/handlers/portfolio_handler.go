package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gripinvest/internal/services"
)

type PortfolioHandler struct {
	portfolio services.PortfolioService
}

func NewPortfolioHandler(portfolio services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio}
}

// @Summary      Portfolio insights
// @Description  Invested total, risk distribution and an AI-written summary
// @Tags         Portfolio
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  services.PortfolioInsights
// @Router       /portfolio/insights [get]
func (h *PortfolioHandler) Insights(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	insights, err := h.portfolio.Insights(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, insights)
}
