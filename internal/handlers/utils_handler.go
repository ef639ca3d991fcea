package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gripinvest/internal/password"
)

// UtilsHandler serves the live password-strength check used by the signup form.
type UtilsHandler struct{}

func NewUtilsHandler() *UtilsHandler { return &UtilsHandler{} }

type strengthBody struct {
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// @Summary      Password strength check
// @Description  Returns advisory suggestions for the given password
// @Tags         Utils
// @Accept       json
// @Produce      json
// @Param        input  body      strengthBody  true  "Password and optional profile context"
// @Success      200    {object}  map[string]interface{}
// @Router       /utils/password-strength [post]
func (h *UtilsHandler) PasswordStrength(c *gin.Context) {
	var req strengthBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	suggestions := password.Evaluate(req.Password, password.Context{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if suggestions == nil {
		suggestions = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
