package repository

import (
	"errors"

	"go-sweetshop/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryStore is the record-store contract the stock service depends on.
// All three operations run inside the transaction opened by
// InventoryRepository.Transaction; the lock taken by FindByIDForUpdate is
// held until that transaction commits or rolls back.
type InventoryStore interface {
	// FindByIDForUpdate acquires an exclusive row lock and returns the
	// current record, or (nil, nil) when no record exists.
	FindByIDForUpdate(id uint) (*model.Sweet, error)

	// DecreaseQuantity applies quantity -= amount only if quantity >= amount,
	// returning the number of rows affected (0 or 1).
	DecreaseQuantity(id uint, amount int) (int64, error)

	// IncreaseQuantity applies quantity += amount unconditionally, returning
	// the number of rows affected (0 when the record no longer exists).
	IncreaseQuantity(id uint, amount int) (int64, error)
}

type InventoryRepository interface {
	// Transaction runs fn inside one atomic transaction. Any error returned
	// by fn rolls the whole transaction back; no partial mutation stays
	// visible.
	Transaction(fn func(store InventoryStore) error) error
}

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db}
}

func (r *inventoryRepo) Transaction(fn func(store InventoryStore) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&inventoryStore{tx: tx})
	})
}

type inventoryStore struct {
	tx *gorm.DB
}

func (s *inventoryStore) FindByIDForUpdate(id uint) (*model.Sweet, error) {
	var sweet model.Sweet
	// SELECT ... FOR UPDATE; concurrent callers on the same id serialize here
	err := s.tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&sweet, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sweet, nil
}

func (s *inventoryStore) DecreaseQuantity(id uint, amount int) (int64, error) {
	res := s.tx.Model(&model.Sweet{}).
		Where("id = ? AND quantity >= ?", id, amount).
		Updates(map[string]interface{}{
			"quantity": gorm.Expr("quantity - ?", amount),
			"version":  gorm.Expr("version + 1"),
		})
	return res.RowsAffected, res.Error
}

func (s *inventoryStore) IncreaseQuantity(id uint, amount int) (int64, error) {
	res := s.tx.Model(&model.Sweet{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", amount),
			"version":  gorm.Expr("version + 1"),
		})
	return res.RowsAffected, res.Error
}
