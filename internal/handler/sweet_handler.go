package handler

import (
	"strconv"

	"go-sweetshop/internal/apperr"
	"go-sweetshop/internal/model"
	"go-sweetshop/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SweetHandler struct {
	service service.SweetService
}

func NewSweetHandler(s service.SweetService) *SweetHandler {
	return &SweetHandler{service: s}
}

// CreateSweet handles POST /api/sweets
func (h *SweetHandler) CreateSweet(c *fiber.Ctx) error {
	var sweet model.Sweet
	if err := c.BodyParser(&sweet); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	sweet.ID = 0
	sweet.Version = 0

	if err := h.service.CreateSweet(&sweet, currentPrincipal(c)); err != nil {
		return writeError(c, err)
	}

	return c.Status(201).JSON(sweet)
}

// GetSweets handles GET /api/sweets. With page/size query params it returns
// one page; without them the full list, matching both shapes of the API.
func (h *SweetHandler) GetSweets(c *fiber.Ctx) error {
	if c.Query("page") != "" || c.Query("size") != "" {
		page := c.QueryInt("page", 0)
		size := c.QueryInt("size", 20)
		sortBy := c.Query("sort_by", "id")
		sortDir := c.Query("sort_direction", "asc")

		paged, err := h.service.GetSweetsPage(page, size, sortBy, sortDir)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(paged)
	}

	sweets, err := h.service.GetAllSweets()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sweets)
}

// GetSweet handles GET /api/sweets/:id
func (h *SweetHandler) GetSweet(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}

	sweet, err := h.service.GetSweetByID(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sweet)
}

// SearchSweets handles GET /api/sweets/search. Exactly one criterion is
// applied: name, then category, then price range; none means the full list.
func (h *SweetHandler) SearchSweets(c *fiber.Ctx) error {
	name := c.Query("name")
	category := c.Query("category")
	minPriceRaw := c.Query("min_price")
	maxPriceRaw := c.Query("max_price")

	var (
		sweets []model.Sweet
		err    error
	)

	switch {
	case name != "":
		sweets, err = h.service.SearchByName(name)
	case category != "":
		sweets, err = h.service.SearchByCategory(category)
	case minPriceRaw != "" && maxPriceRaw != "":
		var minPrice, maxPrice float64
		minPrice, err = strconv.ParseFloat(minPriceRaw, 64)
		if err != nil {
			return writeError(c, apperr.Validation("Minimum price must be a number"))
		}
		maxPrice, err = strconv.ParseFloat(maxPriceRaw, 64)
		if err != nil {
			return writeError(c, apperr.Validation("Maximum price must be a number"))
		}
		sweets, err = h.service.SearchByPriceRange(minPrice, maxPrice)
	default:
		sweets, err = h.service.GetAllSweets()
	}

	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sweets)
}

// UpdateSweet handles PUT /api/sweets/:id
func (h *SweetHandler) UpdateSweet(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}

	var sweet model.Sweet
	if err := c.BodyParser(&sweet); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateSweet(id, &sweet, currentPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(updated)
}

// DeleteSweet handles DELETE /api/sweets/:id
func (h *SweetHandler) DeleteSweet(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.service.DeleteSweet(id, currentPrincipal(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(204)
}
