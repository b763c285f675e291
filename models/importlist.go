package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentCash     = "cash"
	PaymentTransfer = "transfer"
	PaymentNone     = "none"
)

// ImportList is a stock purchase from a supplier. Debt = Total - Paid; when
// the list is not initial stock and was not paid cash-in-hand, the unpaid
// remainder moves onto the supplier debt and the paid part leaves the wallet.
type ImportList struct {
	Id          uint            `json:"id" gorm:"primaryKey"`
	Total       decimal.Decimal `json:"total" gorm:"type:decimal(15,2);default:0"`
	Paid        decimal.Decimal `json:"paid" gorm:"type:decimal(15,2);default:0"`
	Debt        decimal.Decimal `json:"debt" gorm:"type:decimal(15,2);default:0"`
	PaymentType string          `json:"payment_type" gorm:"size:10;default:cash"`
	IsInitialStock bool         `json:"is_initial_stock" gorm:"default:false"`
	Description string          `json:"description"`

	SupplierId uint            `json:"supplier_id" gorm:"not null;index"`
	Supplier   Supplier        `json:"supplier" gorm:"foreignKey:SupplierId;references:Id"`
	Products   []ImportProduct `json:"products" gorm:"foreignKey:ImportListId;constraint:OnDelete:CASCADE"`

	BranchId  uint      `json:"branch_id" gorm:"not null;index"`
	Branch    Branch    `json:"-" gorm:"foreignKey:BranchId;references:Id"`
	CreatedAt time.Time `json:"created_at"`
}

type ImportProduct struct {
	Id           uint            `json:"id" gorm:"primaryKey"`
	ImportListId uint            `json:"import_list_id" gorm:"not null;index"`
	ProductId    uint            `json:"product_id" gorm:"not null"`
	Product      Product         `json:"product" gorm:"foreignKey:ProductId;references:Id"`
	Amount       float64         `json:"amount" gorm:"default:1"`
	ArrivalPrice decimal.Decimal `json:"arrival_price" gorm:"type:decimal(15,2)"`
	SellPrice    decimal.Decimal `json:"sell_price" gorm:"type:decimal(15,2)"`
	TotalSumm    decimal.Decimal `json:"total_summ" gorm:"type:decimal(15,2)"`

	// Branch warehouse valuation at the moment of import, for point-in-time
	// reporting. Covers non-temp products with positive stock.
	RemainderSellValue    decimal.Decimal `json:"remainder_sell_value" gorm:"type:decimal(15,2);default:0"`
	RemainderArrivalValue decimal.Decimal `json:"remainder_arrival_value" gorm:"type:decimal(15,2);default:0"`
}
