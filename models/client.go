package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client.Lending is the amount the client owes the branch (the inverse of
// Supplier.Debt). Mutated only by the lending and order ledger events.
type Client struct {
	Id         uint            `json:"id" gorm:"primaryKey"`
	FirstName  string          `json:"first_name" gorm:"not null"`
	LastName   string          `json:"last_name" gorm:"not null"`
	Phone      string          `json:"phone" gorm:"size:13;not null"`
	ExtraPhone string          `json:"extra_phone" gorm:"size:13"`
	Address    string          `json:"address"`
	Lending    decimal.Decimal `json:"lending" gorm:"type:decimal(15,2);default:0"`
	BranchId   uint            `json:"branch_id" gorm:"not null;index"`
	Branch     Branch          `json:"-" gorm:"foreignKey:BranchId;references:Id"`
	CreatedAt  time.Time       `json:"created_at"`
}
