package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mkamau/dinepos-api/internal/application/service"
	"github.com/mkamau/dinepos-api/internal/domain/enum"
	"github.com/mkamau/dinepos-api/internal/presentation/http/dto/request"
	"github.com/mkamau/dinepos-api/internal/presentation/http/dto/response"
)

// CartHandler handles cart-related HTTP requests
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Create handles opening a cart for a target
func (h *CartHandler) Create(c *gin.Context) {
	var req request.CreateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	orderType, err := enum.ParseOrderType(req.OrderType)
	if err != nil {
		response.BadRequest(c, "Invalid order type")
		return
	}

	cart, err := h.cartService.CreateCart(c.Request.Context(), &service.CreateCartInput{
		Target:    req.Target,
		OrderType: orderType,
		QRToken:   req.QRToken,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Cart ready", cart)
}

// Get handles getting a single cart with its totals
func (h *CartHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid cart ID")
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart retrieved successfully", cartWithTotals(cart))
}

// GetByTarget handles looking up the open cart for a table or order target
func (h *CartHandler) GetByTarget(c *gin.Context) {
	target := c.Query("target")
	if target == "" {
		response.BadRequest(c, "target query parameter is required")
		return
	}

	cart, err := h.cartService.GetOpenCartByTarget(c.Request.Context(), target)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart retrieved successfully", cartWithTotals(cart))
}

// AddItem handles adding a menu item to a cart
func (h *CartHandler) AddItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid cart ID")
		return
	}

	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	quantity := 1.0
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), id, &service.AddItemInput{
		ItemID:       req.ItemID,
		Quantity:     quantity,
		Instructions: req.SpecialInstructions,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added to cart", cartWithTotals(cart))
}

// UpdateLine handles updating a cart line's quantity or instructions
func (h *CartHandler) UpdateLine(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid cart ID")
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req request.UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.cartService.UpdateLine(c.Request.Context(), id, itemID, &service.UpdateLineInput{
		Quantity:     req.Quantity,
		Instructions: req.SpecialInstructions,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart updated", cartWithTotals(cart))
}

// RemoveItem handles removing a line from a cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid cart ID")
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed from cart", cartWithTotals(cart))
}

// Clear handles emptying a cart
func (h *CartHandler) Clear(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid cart ID")
		return
	}

	cart, err := h.cartService.ClearCart(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart cleared", cartWithTotals(cart))
}

// Submit handles submitting a cart to the order API
func (h *CartHandler) Submit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid cart ID")
		return
	}

	var req request.SubmitCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.cartService.SubmitCart(c.Request.Context(), id, req.CustomerName, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order submitted successfully", result)
}
