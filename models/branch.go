package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Branch struct {
	Id          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"not null"`
	Address     string          `json:"address"`
	PhoneNumber string          `json:"phone_number" gorm:"size:13"`
	Balance     decimal.Decimal `json:"balance" gorm:"type:decimal(15,2);default:0"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Wallet is the company-wide cash account. Exactly one row may exist;
// ledger.CreateWallet enforces that and every reader loads it by WalletName.
type Wallet struct {
	Id      uint            `json:"id" gorm:"primaryKey"`
	Name    string          `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Balance decimal.Decimal `json:"balance" gorm:"type:decimal(15,2);default:0"`
}

// WalletName is the constant key of the single wallet row.
const WalletName = "main"
