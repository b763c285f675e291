package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	DiscountPercent = "%"
	DiscountMoney   = "$"
)

// Order is the current/live state of a service order. Total, OverallTotal,
// Landing and the split totals are running sums maintained by the order
// ledger events; Landing = Total - Paid is the client debt this order added.
type Order struct {
	Id          uint    `json:"id" gorm:"primaryKey"`
	CarId       uint    `json:"car_id" gorm:"not null;index"`
	Car         Car     `json:"car" gorm:"foreignKey:CarId;references:Id"`
	ClientId    uint    `json:"client_id" gorm:"index"`
	Client      Client  `json:"client" gorm:"foreignKey:ClientId;references:Id"`
	Description string  `json:"description"`
	ManagerId   *uint   `json:"manager_id"`
	Manager     *Employee `json:"manager" gorm:"foreignKey:ManagerId;references:Id"`

	OverallTotal decimal.Decimal `json:"overall_total" gorm:"type:decimal(15,2);default:0"`
	Total        decimal.Decimal `json:"total" gorm:"type:decimal(15,2);default:0"`
	Paid         decimal.Decimal `json:"paid" gorm:"type:decimal(15,2);default:0"`
	Landing      decimal.Decimal `json:"landing" gorm:"type:decimal(15,2);default:0"`
	ProductTotal decimal.Decimal `json:"product_total" gorm:"type:decimal(15,2);default:0"`
	ServiceTotal decimal.Decimal `json:"service_total" gorm:"type:decimal(15,2);default:0"`

	// Mileage snapshot at the time of the order.
	OdoMileage float64 `json:"odo_mileage"`
	HevMileage float64 `json:"hev_mileage"`
	EvMileage  float64 `json:"ev_mileage"`

	StartDate *datatypes.Date `json:"start_date"`
	EndDate   *datatypes.Date `json:"end_date"`
	PlanDate  *datatypes.Date `json:"plan_date"`

	Services []OrderService `json:"services" gorm:"foreignKey:OrderId;constraint:OnDelete:CASCADE"`
	Products []OrderProduct `json:"products" gorm:"foreignKey:OrderId;constraint:OnDelete:CASCADE"`

	BranchId  uint      `json:"branch_id" gorm:"not null;index"`
	Branch    Branch    `json:"-" gorm:"foreignKey:BranchId;references:Id"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderService carries the figures that were applied when the line was
// recorded. Price and KpiAccrued are frozen at sale time; reversals read
// them instead of the current catalog price or the mechanic's current rate.
type OrderService struct {
	Id           uint            `json:"id" gorm:"primaryKey"`
	OrderId      uint            `json:"order_id" gorm:"not null;index"`
	ServiceId    uint            `json:"service_id" gorm:"not null"`
	Service      Service         `json:"service" gorm:"foreignKey:ServiceId;references:Id"`
	Part         float64         `json:"part"`
	MechanicId   *uint           `json:"mechanic_id"`
	Mechanic     *Employee       `json:"mechanic" gorm:"foreignKey:MechanicId;references:Id"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(15,2);default:0"`
	KpiAccrued   decimal.Decimal `json:"kpi_accrued" gorm:"type:decimal(15,2);default:0"`
	DiscountType string          `json:"discount_type" gorm:"size:1;default:%"`
	Discount     decimal.Decimal `json:"discount" gorm:"type:decimal(15,2);default:0"`
	Total        decimal.Decimal `json:"total" gorm:"type:decimal(15,2)"`
	Description  string          `json:"description"`
}

// OrderProduct freezes SellPrice and the accrued Commission at sale time so
// a later catalog reprice cannot change what a reversal backs out.
type OrderProduct struct {
	Id           uint            `json:"id" gorm:"primaryKey"`
	OrderId      uint            `json:"order_id" gorm:"not null;index"`
	ProductId    uint            `json:"product_id" gorm:"not null"`
	Product      Product         `json:"product" gorm:"foreignKey:ProductId;references:Id"`
	Amount       float64         `json:"amount" gorm:"default:1"`
	SellPrice    decimal.Decimal `json:"sell_price" gorm:"type:decimal(15,2);default:0"`
	Commission   decimal.Decimal `json:"commission" gorm:"type:decimal(15,2);default:0"`
	DiscountType string          `json:"discount_type" gorm:"size:1;default:%"`
	Discount     decimal.Decimal `json:"discount" gorm:"type:decimal(15,2);default:0"`
	Total        decimal.Decimal `json:"total" gorm:"type:decimal(15,2)"`
	Description  string          `json:"description"`

	// Sell-price valuation of the branch warehouse at the moment of sale.
	WarehouseRemainder decimal.Decimal `json:"warehouse_remainder" gorm:"type:decimal(15,2);default:0"`
}
