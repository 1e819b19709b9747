package service

import (
	"errors"
	"fmt"
	"strings"

	"go-sweetshop/internal/apperr"
	"go-sweetshop/internal/authz"
	"go-sweetshop/internal/model"
	"go-sweetshop/internal/repository"
	"go-sweetshop/internal/ws"
	"go-sweetshop/pkg/validator"

	"gorm.io/gorm"
)

// PagedSweets mirrors one page of the catalog.
type PagedSweets struct {
	Content       []model.Sweet `json:"content"`
	Page          int           `json:"page"`
	Size          int           `json:"size"`
	TotalElements int64         `json:"total_elements"`
	TotalPages    int           `json:"total_pages"`
	HasNext       bool          `json:"has_next"`
	HasPrevious   bool          `json:"has_previous"`
}

type SweetService interface {
	CreateSweet(req *model.Sweet, principal model.Principal) error
	GetAllSweets() ([]model.Sweet, error)
	GetSweetsPage(page, size int, sortBy, sortDirection string) (*PagedSweets, error)
	GetSweetByID(id uint) (*model.Sweet, error)
	UpdateSweet(id uint, req *model.Sweet, principal model.Principal) (*model.Sweet, error)
	DeleteSweet(id uint, principal model.Principal) error
	SearchByName(name string) ([]model.Sweet, error)
	SearchByCategory(category string) ([]model.Sweet, error)
	SearchByPriceRange(minPrice, maxPrice float64) ([]model.Sweet, error)
}

type sweetService struct {
	sweetRepo repository.SweetRepository
	wsHub     *ws.Hub
}

func NewSweetService(sweetRepo repository.SweetRepository, hub *ws.Hub) SweetService {
	return &sweetService{
		sweetRepo: sweetRepo,
		wsHub:     hub,
	}
}

func validateSweet(req *model.Sweet) error {
	if req.Price <= 0 {
		return apperr.Validation("Price must be greater than 0")
	}
	if req.Quantity < 0 {
		return apperr.Validation("Quantity must be greater than or equal to 0")
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return apperr.Validation("Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	return nil
}

func (s *sweetService) CreateSweet(req *model.Sweet, principal model.Principal) error {
	if err := validateSweet(req); err != nil {
		return err
	}

	if err := s.sweetRepo.Create(req); err != nil {
		return err
	}

	s.wsHub.BroadcastStockEvent("sweet_created", req.ID, req.Name, req.Quantity, principal.Username)
	return nil
}

func (s *sweetService) GetAllSweets() ([]model.Sweet, error) {
	return s.sweetRepo.FindAll()
}

func (s *sweetService) GetSweetsPage(page, size int, sortBy, sortDirection string) (*PagedSweets, error) {
	if page < 0 {
		return nil, apperr.Validation("Page number must be 0 or greater")
	}
	if size < 1 {
		return nil, apperr.Validation("Page size must be at least 1")
	}
	if size > 100 {
		return nil, apperr.Validation("Page size cannot exceed 100")
	}

	sweets, total, err := s.sweetRepo.FindPage(page*size, size, buildOrderBy(sortBy, sortDirection))
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / size
	if int(total)%size != 0 {
		totalPages++
	}

	return &PagedSweets{
		Content:       sweets,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		HasNext:       page+1 < totalPages,
		HasPrevious:   page > 0,
	}, nil
}

// buildOrderBy whitelists the sort column; anything unexpected falls back to id.
func buildOrderBy(sortBy, sortDirection string) string {
	column := "id"
	switch strings.ToLower(sortBy) {
	case "price":
		column = "price"
	case "name":
		column = "name"
	}

	direction := "ASC"
	if strings.EqualFold(sortDirection, "desc") {
		direction = "DESC"
	}
	return fmt.Sprintf("%s %s", column, direction)
}

func (s *sweetService) GetSweetByID(id uint) (*model.Sweet, error) {
	sweet, err := s.sweetRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(sweetResourceName, id)
		}
		return nil, err
	}
	return sweet, nil
}

func (s *sweetService) UpdateSweet(id uint, req *model.Sweet, principal model.Principal) (*model.Sweet, error) {
	if err := validateSweet(req); err != nil {
		return nil, err
	}

	existing, err := s.GetSweetByID(id)
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Category = req.Category
	existing.Price = req.Price
	existing.Quantity = req.Quantity
	existing.Version++

	if err := s.sweetRepo.Update(existing); err != nil {
		return nil, err
	}

	s.wsHub.BroadcastStockEvent("sweet_updated", existing.ID, existing.Name, existing.Quantity, principal.Username)
	return existing, nil
}

func (s *sweetService) DeleteSweet(id uint, principal model.Principal) error {
	if !authz.Allow(principal.Role, authz.CapabilityManage) {
		return apperr.Forbidden("Only ADMIN users can delete sweets")
	}

	existing, err := s.GetSweetByID(id)
	if err != nil {
		return err
	}

	if err := s.sweetRepo.Delete(id); err != nil {
		return err
	}

	s.wsHub.BroadcastStockEvent("sweet_deleted", existing.ID, existing.Name, 0, principal.Username)
	return nil
}

func (s *sweetService) SearchByName(name string) ([]model.Sweet, error) {
	return s.sweetRepo.SearchByName(name)
}

func (s *sweetService) SearchByCategory(category string) ([]model.Sweet, error) {
	return s.sweetRepo.SearchByCategory(category)
}

func (s *sweetService) SearchByPriceRange(minPrice, maxPrice float64) ([]model.Sweet, error) {
	if minPrice <= 0 {
		return nil, apperr.Validation("Minimum price must be greater than 0")
	}
	if maxPrice <= 0 {
		return nil, apperr.Validation("Maximum price must be greater than 0")
	}
	if minPrice > maxPrice {
		return nil, apperr.Validation("Minimum price cannot be greater than maximum price")
	}
	return s.sweetRepo.SearchByPriceRange(minPrice, maxPrice)
}
