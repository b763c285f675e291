package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PositionManager  = "manager"
	PositionMechanic = "mechanic"
	PositionOther    = "other"
)

// Employee.Balance is commission/KPI accrued but not yet paid out. Managers
// earn CommissionPer percent of product sales, mechanics earn KPI per labor
// part, "other" employees accrue Salary monthly.
type Employee struct {
	Id            uint            `json:"id" gorm:"primaryKey"`
	FirstName     string          `json:"first_name" gorm:"not null"`
	LastName      string          `json:"last_name" gorm:"not null"`
	Phone         string          `json:"phone" gorm:"size:13;not null"`
	Address       string          `json:"address"`
	Position      string          `json:"position" gorm:"size:15;not null"`
	Balance       decimal.Decimal `json:"balance" gorm:"type:decimal(15,2);default:0"`
	CommissionPer int             `json:"commission_per" gorm:"default:2"`
	KPI           int             `json:"kpi"`
	Salary        int             `json:"salary"`
	BranchId      uint            `json:"branch_id" gorm:"not null;index"`
	Branch        Branch          `json:"-" gorm:"foreignKey:BranchId;references:Id"`
	CreatedAt     time.Time       `json:"created_at"`
}
