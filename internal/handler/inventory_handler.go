package handler

import (
	"go-sweetshop/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// InventoryRequest carries the purchase/restock amount. Quantity is a
// pointer so an absent field is distinguishable from zero; both are
// rejected by the service.
type InventoryRequest struct {
	Quantity *int `json:"quantity"`
}

func (r *InventoryRequest) amount() int {
	if r.Quantity == nil {
		return 0
	}
	return *r.Quantity
}

// Purchase handles POST /api/sweets/:id/purchase
func (h *InventoryHandler) Purchase(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req InventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	view, err := h.service.Purchase(id, req.amount(), currentPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(view)
}

// Restock handles POST /api/sweets/:id/restock
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req InventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	view, err := h.service.Restock(id, req.amount(), currentPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(view)
}
