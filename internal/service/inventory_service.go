package service

import (
	"log"

	"go-sweetshop/internal/apperr"
	"go-sweetshop/internal/authz"
	"go-sweetshop/internal/model"
	"go-sweetshop/internal/repository"
	"go-sweetshop/internal/ws"
)

const sweetResourceName = "Sweet"

// InventoryService is the consistency engine for the two opposing stock
// mutations. Both run as: gate check, input validation, locked read,
// conditional write, all inside one store transaction. The quantity
// invariant (never negative, no lost updates) is enforced by the row lock
// and re-checked by the conditional write.
type InventoryService interface {
	Purchase(sweetID uint, quantity int, principal model.Principal) (*model.StockView, error)
	Restock(sweetID uint, quantity int, principal model.Principal) (*model.StockView, error)
}

type inventoryService struct {
	invRepo repository.InventoryRepository
	wsHub   *ws.Hub
}

func NewInventoryService(invRepo repository.InventoryRepository, hub *ws.Hub) InventoryService {
	return &inventoryService{
		invRepo: invRepo,
		wsHub:   hub,
	}
}

func validateQuantity(quantity int, operation string) error {
	if quantity <= 0 {
		return apperr.Validation("%s quantity must be greater than zero", operation)
	}
	return nil
}

func (s *inventoryService) Purchase(sweetID uint, quantity int, principal model.Principal) (*model.StockView, error) {
	if err := validateQuantity(quantity, "Purchase"); err != nil {
		return nil, err
	}

	var view model.StockView
	err := s.invRepo.Transaction(func(store repository.InventoryStore) error {
		sweet, err := store.FindByIDForUpdate(sweetID)
		if err != nil {
			return err
		}
		if sweet == nil {
			return apperr.NotFound(sweetResourceName, sweetID)
		}

		// The lock is held, so this read is authoritative: an accurate
		// "available vs requested" message can be built from it.
		if quantity > sweet.Quantity {
			return apperr.InsufficientStock(sweet.Quantity, quantity)
		}

		rows, err := store.DecreaseQuantity(sweetID, quantity)
		if err != nil {
			return err
		}
		if rows == 0 {
			// The held lock validated the precondition; a zero-row
			// conditional decrement means the store broke its contract.
			// Fail closed, never downgrade to a business error.
			log.Printf("inventory: conditional decrement affected 0 rows under lock (sweet=%d, quantity=%d)", sweetID, quantity)
			return apperr.Internal("Purchase failed. Stock update was not applied.")
		}

		sweet.Quantity -= quantity
		view = sweet.ToStockView()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.BroadcastStockEvent("purchase", view.SweetID, view.SweetName, view.Quantity, principal.Username)
	return &view, nil
}

func (s *inventoryService) Restock(sweetID uint, quantity int, principal model.Principal) (*model.StockView, error) {
	// Checked before any store access so an unauthorized caller learns
	// nothing about the record, not even whether it exists.
	if !authz.Allow(principal.Role, authz.CapabilityRestock) {
		return nil, apperr.Forbidden("Only ADMIN users can restock inventory")
	}
	if err := validateQuantity(quantity, "Restock"); err != nil {
		return nil, err
	}

	var view model.StockView
	err := s.invRepo.Transaction(func(store repository.InventoryStore) error {
		sweet, err := store.FindByIDForUpdate(sweetID)
		if err != nil {
			return err
		}
		if sweet == nil {
			return apperr.NotFound(sweetResourceName, sweetID)
		}

		rows, err := store.IncreaseQuantity(sweetID, quantity)
		if err != nil {
			return err
		}
		if rows == 0 {
			// Cannot happen while the lock is held, but the store's answer
			// is reported faithfully rather than assumed.
			return apperr.NotFound(sweetResourceName, sweetID)
		}

		sweet.Quantity += quantity
		view = sweet.ToStockView()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.BroadcastStockEvent("restock", view.SweetID, view.SweetName, view.Quantity, principal.Username)
	return &view, nil
}
