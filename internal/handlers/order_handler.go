package handlers

import (
	"log"

	"kiosk/internal/middleware"
	"kiosk/internal/models"
	"kiosk/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	orderService *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	router.Post("/order", authRequired, h.HandlePlaceOrder)
	router.Get("/orders", authRequired, h.HandleGetOrders)
}

// HandlePlaceOrder validates the shipping payload and cart snapshot and
// records an immutable order. Clearing the cart is the client's next,
// separate call: if that fails the order still stands.
func (h *OrderHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	identity := middleware.IdentityFromCtx(c)

	var req services.OrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.orderService.PlaceOrder(identity, req)
	if err != nil {
		log.Printf("Error placing order for user %s: %v", identity.UserID, err)
		return fail(c, err, "Could not place order")
	}

	return c.JSON(fiber.Map{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// HandleGetOrders returns the authenticated user's orders, newest first.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	identity := middleware.IdentityFromCtx(c)
	orders, err := h.orderService.GetOrdersForUser(identity.UserID)
	if err != nil {
		log.Printf("Error getting orders for user %s: %v", identity.UserID, err)
		return fail(c, err, "Could not retrieve orders")
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return c.JSON(orders)
}
