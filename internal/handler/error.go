package handler

import (
	"time"

	"go-sweetshop/internal/apperr"
	"go-sweetshop/internal/model"

	"github.com/gofiber/fiber/v2"
)

// errorBody matches the error envelope of the REST API.
type errorBody struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
}

func writeError(c *fiber.Ctx, err error) error {
	status := 500
	title := "Internal Server Error"
	message := "An unexpected error occurred"

	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status, title, message = 400, "Bad Request", err.Error()
	case apperr.KindInsufficientStock:
		status, title, message = 400, "Bad Request", err.Error()
	case apperr.KindNotFound:
		status, title, message = 404, "Resource Not Found", err.Error()
	case apperr.KindUnauthorized:
		status, title, message = 401, "Authentication Failed", err.Error()
	case apperr.KindForbidden:
		status, title, message = 403, "Access Forbidden", err.Error()
	case apperr.KindInternal:
		status, title = 500, "Internal Server Error"
	}

	return c.Status(status).JSON(errorBody{
		Timestamp: time.Now(),
		Status:    status,
		Error:     title,
		Message:   message,
	})
}

// currentPrincipal reads the identity set by middleware.RequireAuth.
func currentPrincipal(c *fiber.Ctx) model.Principal {
	p := model.Principal{}
	if v, ok := c.Locals("user_id").(uint); ok {
		p.UserID = v
	}
	if v, ok := c.Locals("username").(string); ok {
		p.Username = v
	}
	if v, ok := c.Locals("user_role").(string); ok {
		p.Role = v
	}
	return p
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, apperr.Validation("ID must be a positive number")
	}
	return uint(id), nil
}
