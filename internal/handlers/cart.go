// internal/handlers/cart.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medolina/medolina-backend/internal/i18n"
	"github.com/medolina/medolina-backend/internal/services"
	"github.com/medolina/medolina-backend/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

type cartItemRequest struct {
	ProductID int    `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	Weight    string `json:"weight" validate:"required"`
}

type cartSetQuantityRequest struct {
	ProductID int    `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
	Weight    string `json:"weight" validate:"required"`
}

// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid))
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := h.cartService.Add(userID, req.ProductID, req.Quantity, req.Weight); err != nil {
		h.cartError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartItemAdded),
		"cart":    h.cartService.View(userID),
	})
}

// PUT /cart/items
func (h *CartHandler) UpdateItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req cartSetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid))
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := h.cartService.SetQuantity(userID, req.ProductID, req.Weight, req.Quantity); err != nil {
		h.cartError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"cart": h.cartService.View(userID)})
}

// DELETE /cart/items?product_id=&weight=
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	productID, err := strconv.Atoi(c.Query("product_id"))
	weight := c.Query("weight")
	if err != nil || weight == "" {
		utils.BadRequestResponse(c, "")
		return
	}

	h.cartService.Remove(userID, productID, weight)
	utils.SuccessResponse(c, gin.H{"cart": h.cartService.View(userID)})
}

// DELETE /cart
func (h *CartHandler) Clear(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	h.cartService.Clear(userID)
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartCleared),
		"cart":    h.cartService.View(userID),
	})
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	utils.SuccessResponse(c, gin.H{"cart": h.cartService.View(userID)})
}

func (h *CartHandler) cartError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		utils.NotFoundResponse(c, i18n.KeyProductNotFound)
	case errors.Is(err, services.ErrWeightUnavailable):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCartWeightUnavailable))
	default:
		utils.InternalErrorResponse(c, "")
	}
}
