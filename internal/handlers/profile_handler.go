package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gripinvest/internal/services"
)

type ProfileHandler struct {
	users services.UserService
}

func NewProfileHandler(users services.UserService) *ProfileHandler {
	return &ProfileHandler{users: users}
}

type profileBody struct {
	RiskAppetite string `json:"risk_appetite"`
}

// @Summary      Update own profile
// @Description  Only the risk appetite is editable
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        profile  body      profileBody  true  "New risk appetite"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Router       /profile [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req profileBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.users.UpdateRiskAppetite(userID, req.RiskAppetite)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": user})
}
