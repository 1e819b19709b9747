package model

import "time"

type Sweet struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category string  `gorm:"type:varchar(100);not null" json:"category" validate:"required"`
	Price    float64 `gorm:"type:numeric(19,2);not null" json:"price" validate:"required,gt=0"`
	Quantity int     `gorm:"not null;default:0" json:"quantity" validate:"gte=0"`

	// Version increments on every successful mutation. Under the FOR UPDATE
	// locking used by the inventory layer it serves as an audit counter for
	// detecting writes that bypassed the service.
	Version int64 `gorm:"not null;default:0" json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StockView is the response shape for purchase/restock operations.
type StockView struct {
	SweetID   uint   `json:"sweet_id"`
	SweetName string `json:"sweet_name"`
	Quantity  int    `json:"quantity"`
}

func (s *Sweet) ToStockView() StockView {
	return StockView{
		SweetID:   s.ID,
		SweetName: s.Name,
		Quantity:  s.Quantity,
	}
}
