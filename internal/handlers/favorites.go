// internal/handlers/favorites.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medolina/medolina-backend/internal/i18n"
	"github.com/medolina/medolina-backend/internal/services"
	"github.com/medolina/medolina-backend/internal/store"
	"github.com/medolina/medolina-backend/internal/utils"
)

type FavoritesHandler struct {
	stores         *store.Manager
	catalogService *services.CatalogService
}

func NewFavoritesHandler(stores *store.Manager, catalogService *services.CatalogService) *FavoritesHandler {
	return &FavoritesHandler{stores: stores, catalogService: catalogService}
}

func (h *FavoritesHandler) favorites(c *gin.Context) (*store.FavoritesStore, bool) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return nil, false
	}
	return h.stores.Favorites("favorites:" + userID), true
}

// POST /favorites/:id/toggle
func (h *FavoritesHandler) Toggle(c *gin.Context) {
	favs, ok := h.favorites(c)
	if !ok {
		return
	}

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "")
		return
	}
	if _, exists := h.catalogService.ResolveProduct(productID); !exists {
		utils.NotFoundResponse(c, i18n.KeyProductNotFound)
		return
	}

	favorited, _ := favs.Toggle(productID)
	utils.SuccessResponse(c, gin.H{
		"favorited": favorited,
		"count":     favs.Count(),
	})
}

// DELETE /favorites/:id
func (h *FavoritesHandler) Remove(c *gin.Context) {
	favs, ok := h.favorites(c)
	if !ok {
		return
	}

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "")
		return
	}

	favs.Remove(productID)
	utils.SuccessResponse(c, gin.H{"count": favs.Count()})
}

// GET /favorites
func (h *FavoritesHandler) List(c *gin.Context) {
	favs, ok := h.favorites(c)
	if !ok {
		return
	}

	utils.SuccessResponse(c, gin.H{
		"products": h.catalogService.ResolveProducts(favs.IDs()),
		"count":    favs.Count(),
	})
}

// DELETE /favorites
func (h *FavoritesHandler) Clear(c *gin.Context) {
	favs, ok := h.favorites(c)
	if !ok {
		return
	}

	favs.Clear()
	utils.SuccessResponse(c, gin.H{"count": favs.Count()})
}
