package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"gripinvest/internal/models"
	"gripinvest/internal/pdf"
	"gripinvest/internal/services"
)

type InvestmentHandler struct {
	investments services.InvestmentService
	users       services.UserService
	statements  pdf.Generator
}

func NewInvestmentHandler(investments services.InvestmentService, users services.UserService, statements pdf.Generator) *InvestmentHandler {
	return &InvestmentHandler{investments: investments, users: users, statements: statements}
}

type investBody struct {
	ProductID string  `json:"product_id"`
	Amount    float64 `json:"amount"`
}

// @Summary      Invest in a product
// @Description  Gated by the user's risk appetite; computes expected return and maturity
// @Tags         Investments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        investment  body      investBody  true  "Product id and amount"
// @Success      201         {object}  map[string]interface{}
// @Failure      400         {object}  map[string]string
// @Router       /investments [post]
func (h *InvestmentHandler) Invest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var req investBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	inv, err := h.investments.Invest(userID, req.ProductID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":         "Investment successful",
		"investmentId":    inv.ID,
		"expected_return": inv.ExpectedReturn,
		"maturity_date":   inv.MaturityDate,
	})
}

// @Summary      List own investments
// @Tags         Investments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.Investment
// @Router       /investments [get]
func (h *InvestmentHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	invs, err := h.investments.ListByUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if invs == nil {
		invs = []*models.Investment{}
	}
	c.JSON(http.StatusOK, invs)
}

// @Summary      Download investment statement
// @Description  PDF receipt for one of the caller's investments
// @Tags         Investments
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path  string  true  "Investment id"
// @Success      200
// @Failure      404  {object}  map[string]string
// @Router       /investments/{id}/statement [get]
func (h *InvestmentHandler) Statement(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	inv, err := h.investments.GetOwned(userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	user, err := h.users.GetUserByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	doc, err := h.statements.InvestmentStatement(user, inv)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=statement_%s.pdf", inv.ID))
	c.Data(http.StatusOK, "application/pdf", doc)
}
