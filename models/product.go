package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product.Amount is the authoritative stock quantity: decremented by order
// product lines, incremented by import lines, never recomputed at read time.
// IsTemp marks a provisional catalog line without confirmed pricing; temp
// rows are excluded from warehouse valuations.
type Product struct {
	Id           uint            `json:"id" gorm:"primaryKey"`
	Code         string          `json:"code" gorm:"size:20;not null"`
	Name         string          `json:"name" gorm:"not null"`
	Amount       float64         `json:"amount" gorm:"default:0"`
	Unit         string          `json:"unit" gorm:"size:50"`
	ArrivalPrice decimal.Decimal `json:"arrival_price" gorm:"type:decimal(15,2)"`
	SellPrice    decimal.Decimal `json:"sell_price" gorm:"type:decimal(15,2)"`
	MinAmount    float64         `json:"min_amount" gorm:"default:0"`
	MaxDiscount  int             `json:"max_discount" gorm:"default:0"`
	IsTemp       bool            `json:"is_temp" gorm:"default:false;index"`
	SupplierId   uint            `json:"supplier_id" gorm:"not null"`
	Supplier     Supplier        `json:"-" gorm:"foreignKey:SupplierId;references:Id"`
	BranchId     uint            `json:"branch_id" gorm:"not null;index"`
	Branch       Branch          `json:"-" gorm:"foreignKey:BranchId;references:Id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type Service struct {
	Id       uint            `json:"id" gorm:"primaryKey"`
	Name     string          `json:"name" gorm:"size:50;not null"`
	Price    decimal.Decimal `json:"price" gorm:"type:decimal(15,2);not null"`
	BranchId uint            `json:"branch_id" gorm:"not null;index"`
	Branch   Branch          `json:"-" gorm:"foreignKey:BranchId;references:Id"`
}
