package handlers

import (
	"log"

	"kiosk/internal/middleware"
	"kiosk/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the shopping cart. Every route
// sits behind the authorization gate; the acting user always comes from
// the verified identity, never from the request body.
type CartHandler struct {
	cartService *services.CartService
	validate    *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	cartRoutes := router.Group("/cart", authRequired)
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/", h.HandleAddItem)
	cartRoutes.Delete("/clear", h.HandleClearCart)
	cartRoutes.Delete("/", h.HandleRemoveItem)
}

// HandleGetCart returns the cart with product details expanded.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	identity := middleware.IdentityFromCtx(c)
	cart, err := h.cartService.Get(identity.UserID)
	if err != nil {
		log.Printf("Error getting cart for user %s: %v", identity.UserID, err)
		return fail(c, err, "Could not retrieve cart")
	}
	return c.JSON(cart)
}

// AddItemRequest represents the request body for adding a cart item.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// HandleAddItem merges a product into the cart and returns the updated
// cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	identity := middleware.IdentityFromCtx(c)

	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-item request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	cart, err := h.cartService.AddItem(identity.UserID, req.ProductID, req.Quantity)
	if err != nil {
		log.Printf("Error adding item %s for user %s: %v", req.ProductID, identity.UserID, err)
		return fail(c, err, "Could not add item to cart")
	}
	return c.JSON(fiber.Map{
		"message": "Product added to cart",
		"cart":    cart,
	})
}

// RemoveItemRequest represents the request body for removing a cart item.
type RemoveItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// HandleRemoveItem drops a product line from the cart and returns the
// updated cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	identity := middleware.IdentityFromCtx(c)

	var req RemoveItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing remove-item request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return failValidation(c, err)
	}

	cart, err := h.cartService.RemoveItem(identity.UserID, req.ProductID)
	if err != nil {
		log.Printf("Error removing item %s for user %s: %v", req.ProductID, identity.UserID, err)
		return fail(c, err, "Could not remove item from cart")
	}
	return c.JSON(fiber.Map{
		"message": "Product removed from cart",
		"cart":    cart,
	})
}

// HandleClearCart empties the cart. Idempotent.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	identity := middleware.IdentityFromCtx(c)
	if err := h.cartService.Clear(identity.UserID); err != nil {
		log.Printf("Error clearing cart for user %s: %v", identity.UserID, err)
		return fail(c, err, "Could not clear cart")
	}
	return c.JSON(fiber.Map{"message": "Cart cleared successfully"})
}
