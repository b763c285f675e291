package models

import "time"

type Car struct {
	Id          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"not null"`
	Brand       string  `json:"brand" gorm:"not null"`
	Color       string  `json:"color" gorm:"size:20"`
	StateNumber string  `json:"state_number" gorm:"size:10"`
	VinCode     string  `json:"vin_code" gorm:"size:30"`
	IsSold      bool    `json:"is_sold" gorm:"default:false"`
	OdoMileage  float64 `json:"odo_mileage" gorm:"default:0"`
	HevMileage  float64 `json:"hev_mileage" gorm:"default:0"`
	EvMileage   float64 `json:"ev_mileage" gorm:"default:0"`

	ClientId  uint      `json:"client_id" gorm:"not null;index"`
	Client    Client    `json:"client" gorm:"foreignKey:ClientId;references:Id"`
	BranchId  uint      `json:"branch_id" gorm:"not null;index"`
	Branch    Branch    `json:"-" gorm:"foreignKey:BranchId;references:Id"`
	CreatedAt time.Time `json:"created_at"`
}
