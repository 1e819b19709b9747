package repository

import (
	"go-sweetshop/internal/model"

	"gorm.io/gorm"
)

type SweetRepository interface {
	Create(sweet *model.Sweet) error
	FindAll() ([]model.Sweet, error)
	FindPage(offset, limit int, orderBy string) ([]model.Sweet, int64, error)
	FindByID(id uint) (*model.Sweet, error)
	SearchByName(name string) ([]model.Sweet, error)
	SearchByCategory(category string) ([]model.Sweet, error)
	SearchByPriceRange(minPrice, maxPrice float64) ([]model.Sweet, error)
	Update(sweet *model.Sweet) error
	Delete(id uint) error
}

type sweetRepo struct {
	db *gorm.DB
}

func NewSweetRepo(db *gorm.DB) SweetRepository {
	return &sweetRepo{db}
}

func (r *sweetRepo) Create(sweet *model.Sweet) error {
	return r.db.Create(sweet).Error
}

func (r *sweetRepo) FindAll() ([]model.Sweet, error) {
	var sweets []model.Sweet
	err := r.db.Order("id ASC").Find(&sweets).Error
	return sweets, err
}

// FindPage expects orderBy to be pre-validated by the service (whitelisted
// column plus direction), never raw client input.
func (r *sweetRepo) FindPage(offset, limit int, orderBy string) ([]model.Sweet, int64, error) {
	var total int64
	if err := r.db.Model(&model.Sweet{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sweets []model.Sweet
	err := r.db.Order(orderBy).Offset(offset).Limit(limit).Find(&sweets).Error
	return sweets, total, err
}

func (r *sweetRepo) FindByID(id uint) (*model.Sweet, error) {
	var sweet model.Sweet
	err := r.db.First(&sweet, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sweet, nil
}

func (r *sweetRepo) SearchByName(name string) ([]model.Sweet, error) {
	var sweets []model.Sweet
	err := r.db.Where("name ILIKE ?", "%"+name+"%").Order("id ASC").Find(&sweets).Error
	return sweets, err
}

func (r *sweetRepo) SearchByCategory(category string) ([]model.Sweet, error) {
	var sweets []model.Sweet
	err := r.db.Where("LOWER(category) = LOWER(?)", category).Order("id ASC").Find(&sweets).Error
	return sweets, err
}

func (r *sweetRepo) SearchByPriceRange(minPrice, maxPrice float64) ([]model.Sweet, error) {
	var sweets []model.Sweet
	err := r.db.Where("price BETWEEN ? AND ?", minPrice, maxPrice).Order("id ASC").Find(&sweets).Error
	return sweets, err
}

func (r *sweetRepo) Update(sweet *model.Sweet) error {
	return r.db.Save(sweet).Error
}

func (r *sweetRepo) Delete(id uint) error {
	return r.db.Delete(&model.Sweet{}, "id = ?", id).Error
}
