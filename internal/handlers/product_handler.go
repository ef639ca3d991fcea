package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gripinvest/internal/models"
	"gripinvest/internal/services"
)

type ProductHandler struct {
	products services.ProductService
	users    services.UserService
}

func NewProductHandler(products services.ProductService, users services.UserService) *ProductHandler {
	return &ProductHandler{products: products, users: users}
}

// @Summary      List products
// @Tags         Products
// @Produce      json
// @Success      200  {array}  models.Product
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.List()
	if err != nil {
		respondError(c, err)
		return
	}
	if products == nil {
		products = []*models.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// @Summary      Recommended products
// @Description  Products matching the caller's risk appetite, highest yield first
// @Tags         Products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /products/recommended [get]
func (h *ProductHandler) Recommended(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	user, err := h.users.GetUserByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	recommended, err := h.products.Recommended(user)
	if err != nil {
		respondError(c, err)
		return
	}
	if recommended == nil {
		recommended = []*models.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recommended})
}

// @Summary      Create product
// @Tags         Products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        product  body      models.ProductInput  true  "Product fields"
// @Success      201      {object}  map[string]string
// @Failure      403      {object}  map[string]string
// @Router       /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	p, err := h.products.Create(&input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "productId": p.ID})
}

// @Summary      Update product
// @Tags         Products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string               true  "Product id"
// @Param        product  body      models.ProductInput  true  "Product fields"
// @Success      200      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if _, err := h.products.Update(c.Param("id"), &input); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

// @Summary      Delete product
// @Tags         Products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.products.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// @Summary      Generate product description
// @Description  Asks the text-generation service for product copy; degrades to a fixed fallback
// @Tags         Products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        product  body      models.ProductInput  true  "Product fields"
// @Success      200      {object}  map[string]string
// @Router       /products/generate-description [post]
func (h *ProductHandler) GenerateDescription(c *gin.Context) {
	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	description := h.products.GenerateDescription(c.Request.Context(), &input)
	c.JSON(http.StatusOK, gin.H{"description": description})
}
