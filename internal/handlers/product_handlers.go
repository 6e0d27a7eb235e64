package handlers

import (
	"net/http"

	"velodrive/internal/common"
	"velodrive/internal/models"
	"velodrive/internal/services"

	"github.com/labstack/echo/v4"
)

// ProductHandlers handles HTTP requests for products
type ProductHandlers struct {
	productService services.ProductService
}

// NewProductHandlers creates a new product handlers instance
func NewProductHandlers(productService services.ProductService) *ProductHandlers {
	return &ProductHandlers{
		productService: productService,
	}
}

type productListResponse struct {
	OK bool `json:"ok"`
	*models.ProductListResult
}

// ListProducts handles GET /products. Callers that may not filter get the
// default listing regardless of the query.
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	opts := &models.ProductListOptions{
		Page:           queryInt(c, "page"),
		PageSize:       queryInt(c, "pageSize"),
		Search:         queryString(c, "search"),
		CategoryID:     queryID(c, "categoryId"),
		SupplierID:     queryID(c, "supplierId"),
		ManufacturerID: queryID(c, "manufacturerId"),
		InStockOnly:    queryBool(c, "inStockOnly"),
		DiscountFrom:   queryInt(c, "discountFrom"),
		DiscountTo:     queryInt(c, "discountTo"),
		SortBy:         models.ProductSortBy(c.QueryParam("sortBy")),
		SortDir:        models.SortDir(c.QueryParam("sortDir")),
	}
	if !common.GetRoleFromContext(ctx).Can(models.CapFilterProducts) {
		opts = opts.DefaultsOnly()
	}

	result, err := h.productService.List(ctx, opts)
	if err != nil {
		return common.SendFailure(c, err)
	}
	return c.JSON(http.StatusOK, productListResponse{OK: true, ProductListResult: result})
}

// GetProduct handles GET /products/:article
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	item, err := h.productService.GetByArticle(c.Request().Context(), c.Param("article"))
	if err != nil {
		return common.SendFailure(c, err)
	}
	return sendItem(c, http.StatusOK, item)
}

// CreateProduct handles POST /products
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	var payload models.ProductPayload
	if err := c.Bind(&payload); err != nil {
		return common.SendValidationError(c, "", "Invalid request format")
	}

	item, err := h.productService.Create(c.Request().Context(), &payload)
	if err != nil {
		return common.SendFailure(c, err)
	}
	return sendItem(c, http.StatusCreated, item)
}

// UpdateProduct handles PUT /products/:article
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	var payload models.ProductPayload
	if err := c.Bind(&payload); err != nil {
		return common.SendValidationError(c, "", "Invalid request format")
	}

	item, err := h.productService.Update(c.Request().Context(), c.Param("article"), &payload)
	if err != nil {
		return common.SendFailure(c, err)
	}
	return sendItem(c, http.StatusOK, item)
}

// DeleteProduct handles DELETE /products/:article
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	if err := h.productService.Delete(c.Request().Context(), c.Param("article")); err != nil {
		return common.SendFailure(c, err)
	}
	return sendOK(c)
}
