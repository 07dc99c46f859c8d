package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/travault/crm-service/internal/service"
)

// EmailsHandler serves browser previews of the notification emails.
// The links embedded in outgoing messages point here.
type EmailsHandler struct {
	service *service.NotificationService
}

// NewEmailsHandler constructs handler.
func NewEmailsHandler(notificationService *service.NotificationService) *EmailsHandler {
	return &EmailsHandler{service: notificationService}
}

// Preview GET /emails/:kind. Renders the composed message as plain
// text without sending anything.
func (h *EmailsHandler) Preview(c *fiber.Ctx) error {
	if _, err := requireActor(c); err != nil {
		return err
	}
	msg, err := h.service.Preview(c.Params("kind"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(fmt.Sprintf("Subject: %s\n\n%s", msg.Subject, msg.Body))
}
