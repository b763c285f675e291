package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Debt is a supplier debt movement. IsDebt=true means the branch borrowed
// more from the supplier, false means the branch paid debt down. CurrentDebt
// snapshots the supplier debt right after the event.
type Debt struct {
	Id          uint            `json:"id" gorm:"primaryKey"`
	SupplierId  uint            `json:"supplier_id" gorm:"not null;index"`
	Supplier    Supplier        `json:"supplier" gorm:"foreignKey:SupplierId;references:Id"`
	DebtAmount  decimal.Decimal `json:"debt_amount" gorm:"type:decimal(15,2);not null"`
	IsDebt      bool            `json:"is_debt" gorm:"default:false"`
	CurrentDebt decimal.Decimal `json:"current_debt" gorm:"type:decimal(15,2)"`
	BranchId    uint            `json:"branch_id" gorm:"not null;index"`
	Branch      Branch          `json:"-" gorm:"foreignKey:BranchId;references:Id"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Lending is the client-side mirror of Debt: IsLending=true extends credit
// to the client, false records a repayment.
type Lending struct {
	Id             uint            `json:"id" gorm:"primaryKey"`
	ClientId       uint            `json:"client_id" gorm:"not null;index"`
	Client         Client          `json:"client" gorm:"foreignKey:ClientId;references:Id"`
	LendingAmount  decimal.Decimal `json:"lending_amount" gorm:"type:decimal(15,2);not null"`
	IsLending      bool            `json:"is_lending" gorm:"default:false"`
	CurrentLending decimal.Decimal `json:"current_lending" gorm:"type:decimal(15,2)"`
	BranchId       uint            `json:"branch_id" gorm:"not null;index"`
	Branch         Branch          `json:"-" gorm:"foreignKey:BranchId;references:Id"`
	CreatedAt      time.Time       `json:"created_at"`
}

type ExpenseType struct {
	Id       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"size:50;not null"`
	BranchId uint   `json:"branch_id" gorm:"not null;index"`
	Branch   Branch `json:"-" gorm:"foreignKey:BranchId;references:Id"`
}

type Expense struct {
	Id          uint            `json:"id" gorm:"primaryKey"`
	Description string          `json:"description" gorm:"not null"`
	TypeId      uint            `json:"type_id" gorm:"not null"`
	Type        ExpenseType     `json:"type" gorm:"foreignKey:TypeId;references:Id"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(15,2);not null"`
	FromUserId  string          `json:"from_user_id" gorm:"not null"`
	FromUser    User            `json:"-" gorm:"foreignKey:FromUserId;references:Id"`
	BranchId    uint            `json:"branch_id" gorm:"not null;index"`
	Branch      Branch          `json:"-" gorm:"foreignKey:BranchId;references:Id"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Salary struct {
	Id          uint            `json:"id" gorm:"primaryKey"`
	EmployeeId  uint            `json:"employee_id" gorm:"not null;index"`
	Employee    Employee        `json:"employee" gorm:"foreignKey:EmployeeId;references:Id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(15,2);not null"`
	FromUserId  string          `json:"from_user_id" gorm:"not null"`
	FromUser    User            `json:"-" gorm:"foreignKey:FromUserId;references:Id"`
	BranchId    uint            `json:"branch_id" gorm:"not null;index"`
	Branch      Branch          `json:"-" gorm:"foreignKey:BranchId;references:Id"`
	CreatedAt   time.Time       `json:"created_at"`
}

// BranchFundTransfer records an end-of-day sweep of the branch cash into the
// wallet. Amount is the balance that was swept, not a caller-chosen figure.
type BranchFundTransfer struct {
	Id          uint            `json:"id" gorm:"primaryKey"`
	Description string          `json:"description" gorm:"size:255"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(15,2);not null"`
	UserId      string          `json:"user_id" gorm:"not null"`
	User        User            `json:"-" gorm:"foreignKey:UserId;references:Id"`
	BranchId    *uint           `json:"branch_id" gorm:"index"`
	Branch      *Branch         `json:"-" gorm:"foreignKey:BranchId;references:Id"`
	CreatedAt   time.Time       `json:"created_at"`
}
