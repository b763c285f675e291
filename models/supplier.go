package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier.Debt is the amount the branch owes the supplier. It is mutated
// only by the debt and import ledger events.
type Supplier struct {
	Id        uint            `json:"id" gorm:"primaryKey"`
	FirstName string          `json:"first_name" gorm:"not null"`
	LastName  string          `json:"last_name" gorm:"not null"`
	Phone     string          `json:"phone" gorm:"size:13;not null"`
	Address   string          `json:"address"`
	Debt      decimal.Decimal `json:"debt" gorm:"type:decimal(15,2);default:0"`
	BranchId  uint            `json:"branch_id" gorm:"not null;index"`
	Branch    Branch          `json:"-" gorm:"foreignKey:BranchId;references:Id"`
	CreatedAt time.Time       `json:"created_at"`
}
