// internal/handlers/product.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medolina/medolina-backend/internal/catalog"
	"github.com/medolina/medolina-backend/internal/i18n"
	"github.com/medolina/medolina-backend/internal/models"
	"github.com/medolina/medolina-backend/internal/services"
	"github.com/medolina/medolina-backend/internal/utils"
)

type ProductHandler struct {
	catalogService *services.CatalogService
}

func NewProductHandler(catalogService *services.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// GET /products
//
// Repeated query params select multiple values within one filter dimension:
// ?category=livadski-med&category=sumski-med matches either category.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	sortKey := models.SortKey(c.DefaultQuery("sort", string(models.SortDefault)))
	if !sortKey.Valid() {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyBadSortKey))
		return
	}

	pagination := utils.GetPaginationParams(c)
	query := services.CatalogQuery{
		Filter: parseFilterState(c),
		Search: c.Query("q"),
		Sort:   sortKey,
		Page:   pagination.Page,
		Limit:  pagination.Limit,
	}

	page := h.catalogService.List(query)
	utils.PaginatedResponse(c, gin.H{"products": page.Products},
		page.Page, page.Limit, page.Total, page.TotalPages)
}

// GET /products/autocomplete
func (h *ProductHandler) Autocomplete(c *gin.Context) {
	suggestions := h.catalogService.Autocomplete(c.Query("q"))
	utils.SuccessResponse(c, gin.H{"suggestions": suggestions})
}

// GET /products/:slug
func (h *ProductHandler) GetProduct(c *gin.Context) {
	detail, err := h.catalogService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c, i18n.KeyProductNotFound)
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, gin.H{"product": detail})
}

// GET /categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{"categories": h.catalogService.Categories()})
}

// GET /sellers/:id/products
func (h *ProductHandler) GetSellerProducts(c *gin.Context) {
	sellerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "")
		return
	}
	products := h.catalogService.SellerProducts(sellerID)
	if len(products) == 0 {
		utils.NotFoundResponse(c, i18n.KeySellerNotFound)
		return
	}
	utils.SuccessResponse(c, gin.H{"products": products})
}

func parseFilterState(c *gin.Context) catalog.FilterState {
	f := catalog.FilterState{
		Categories: c.QueryArray("category"),
		Additives:  c.QueryArray("additive"),
		Weights:    c.QueryArray("weight"),
		Locations:  c.QueryArray("location"),
	}

	for _, s := range c.QueryArray("season") {
		f.Seasons = append(f.Seasons, models.Season(s))
	}
	for _, b := range c.QueryArray("badge") {
		f.Badges = append(f.Badges, models.Badge(b))
	}

	if v, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
		f.MaxPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("minRating"), 64); err == nil {
		f.MinRating = &v
	}
	if v, err := strconv.ParseBool(c.Query("discount")); err == nil {
		f.OnDiscount = v
	}

	return f
}
