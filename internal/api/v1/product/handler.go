package product

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tii-its/coffee-fund-app/internal/api/httperr"
	"github.com/tii-its/coffee-fund-app/internal/middleware"
	"github.com/tii-its/coffee-fund-app/internal/services"
	"github.com/tii-its/coffee-fund-app/internal/utils"
)

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid product ID"))
		return uuid.Nil, false
	}
	return id, true
}

// CreateProduct adds a catalog product. Admin only.
func CreateProduct(c *gin.Context) {
	actor, _ := middleware.ActingUser(c)

	var input CreateProductInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	p, err := services.CreateProduct(input.Name, input.PriceCents, actor.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Product created successfully", NewProductResponse(*p)))
}

// ListProducts returns the catalog, active products only by default.
func ListProducts(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	activeOnly := c.DefaultQuery("active_only", "true") == "true"

	products, total, err := services.FindProducts(activeOnly, skip, limit)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	items := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, NewProductResponse(p))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Products retrieved successfully", ProductListResponse{
		Products: items,
		Total:    total,
	}))
}

// GetProduct returns a single product.
func GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	p, err := services.GetProduct(id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Product retrieved successfully", NewProductResponse(*p)))
}

// UpdateProduct changes catalog data. Admin only. Price changes never
// touch historical consumption amounts.
func UpdateProduct(c *gin.Context) {
	actor, _ := middleware.ActingUser(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateProductInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	p, err := services.UpdateProduct(id, services.ProductUpdate{
		Name:       input.Name,
		PriceCents: input.PriceCents,
		IsActive:   input.IsActive,
	}, actor.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Product updated successfully", NewProductResponse(*p)))
}

// DeactivateProduct soft-deletes a product. Admin only.
func DeactivateProduct(c *gin.Context) {
	actor, _ := middleware.ActingUser(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := services.DeactivateProduct(id, actor.ID); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Product deactivated successfully", nil))
}
