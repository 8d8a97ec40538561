package handlers

import (
	"log"

	"kiosk/internal/models"
	"kiosk/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// FeedbackHandler handles HTTP requests for product feedback and the
// contact form. Both surfaces are public.
type FeedbackHandler struct {
	feedbackService *services.FeedbackService
	validate        *validator.Validate
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedbackService *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		validate:        validator.New(),
	}
}

// RegisterRoutes registers the feedback and contact routes with the
// Fiber app.
func (h *FeedbackHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/feedback", h.HandleAddFeedback)
	router.Get("/feedback", h.HandleListFeedback)
	router.Post("/contact", h.HandleContact)
}

// HandleAddFeedback stores a product review.
func (h *FeedbackHandler) HandleAddFeedback(c *fiber.Ctx) error {
	var feedback models.Feedback
	if err := c.BodyParser(&feedback); err != nil {
		log.Printf("Error parsing feedback request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(feedback); err != nil {
		return failValidation(c, err)
	}

	if err := h.feedbackService.AddFeedback(&feedback); err != nil {
		log.Printf("Error adding feedback: %v", err)
		return fail(c, err, "Could not add feedback")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Feedback added",
		"feedback": feedback,
	})
}

// HandleListFeedback returns a product's reviews, newest first. The
// product is selected with the productId query parameter.
func (h *FeedbackHandler) HandleListFeedback(c *fiber.Ctx) error {
	productID := c.Query("productId")
	feedbacks, err := h.feedbackService.ListFeedback(productID)
	if err != nil {
		log.Printf("Error listing feedback for product %s: %v", productID, err)
		return fail(c, err, "Could not list feedback")
	}
	return c.JSON(feedbacks)
}

// HandleContact stores a contact form message.
func (h *FeedbackHandler) HandleContact(c *fiber.Ctx) error {
	var message models.ContactMessage
	if err := c.BodyParser(&message); err != nil {
		log.Printf("Error parsing contact request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(message); err != nil {
		return failValidation(c, err)
	}

	if err := h.feedbackService.SubmitContact(&message); err != nil {
		log.Printf("Error storing contact message: %v", err)
		return fail(c, err, "Could not save message")
	}
	return c.JSON(fiber.Map{"message": "Message saved successfully"})
}
