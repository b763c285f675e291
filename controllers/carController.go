package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"autoshop-backend/middlewares"
	"autoshop-backend/models"
	"autoshop-backend/utils"
)

type CarCreateDTO struct {
	Name        string  `json:"name" validate:"required,min=1"`
	Brand       string  `json:"brand" validate:"required,min=1"`
	Color       string  `json:"color" validate:"omitempty,max=20"`
	StateNumber string  `json:"state_number" validate:"omitempty,max=10"`
	VinCode     string  `json:"vin_code" validate:"omitempty,max=30"`
	OdoMileage  float64 `json:"odo_mileage" validate:"omitempty,min=0"`
	HevMileage  float64 `json:"hev_mileage" validate:"omitempty,min=0"`
	EvMileage   float64 `json:"ev_mileage" validate:"omitempty,min=0"`
	ClientId    uint    `json:"client_id" validate:"required"`
	BranchId    uint    `json:"branch_id"`
}

type CarUpdateDTO struct {
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Brand       *string  `json:"brand" validate:"omitempty,min=1"`
	Color       *string  `json:"color" validate:"omitempty,max=20"`
	StateNumber *string  `json:"state_number" validate:"omitempty,max=10"`
	VinCode     *string  `json:"vin_code" validate:"omitempty,max=30"`
	IsSold      *bool    `json:"is_sold"`
	OdoMileage  *float64 `json:"odo_mileage" validate:"omitempty,min=0"`
	HevMileage  *float64 `json:"hev_mileage" validate:"omitempty,min=0"`
	EvMileage   *float64 `json:"ev_mileage" validate:"omitempty,min=0"`
	ClientId    *uint    `json:"client_id"`
}

// POST /api/car
func CreateCar(c *fiber.Ctx) error {
	var in CarCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	branchId, err := actingBranch(c, in.BranchId)
	if err != nil {
		return err
	}

	db := middlewares.GetTx(c)
	var client models.Client
	if err := db.First(&client, "id = ?", in.ClientId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "client not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	car := models.Car{
		Name:        strings.TrimSpace(in.Name),
		Brand:       strings.TrimSpace(in.Brand),
		Color:       strings.TrimSpace(in.Color),
		StateNumber: strings.TrimSpace(in.StateNumber),
		VinCode:     strings.TrimSpace(in.VinCode),
		OdoMileage:  in.OdoMileage,
		HevMileage:  in.HevMileage,
		EvMileage:   in.EvMileage,
		ClientId:    client.Id,
		BranchId:    branchId,
	}
	if err := db.Create(&car).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create car")
	}
	return c.Status(fiber.StatusCreated).JSON(car)
}

// GET /api/cars
func GetCars(c *fiber.Ctx) error {
	branchId, err := actingBranch(c, 0)
	if err != nil {
		return err
	}
	q := middlewares.GetTx(c).Where("branch_id = ?", branchId)
	if clientId := c.QueryInt("client_id"); clientId > 0 {
		q = q.Where("client_id = ?", clientId)
	}
	var cars []models.Car
	if err := q.Preload("Client").Order("id desc").Find(&cars).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(cars)
}

// GET /api/car/:id
func GetCar(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var car models.Car
	if err := middlewares.GetTx(c).Preload("Client").First(&car, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "car not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(car)
}

// PUT /api/car/:id
func UpdateCar(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var in CarUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	db := middlewares.GetTx(c)
	var existing models.Car
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "car not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in)
	if len(updates) > 0 {
		if err := db.Model(&models.Car{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update car")
		}
	}

	var out models.Car
	if err := db.Preload("Client").First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload car")
	}
	return c.JSON(out)
}

// DELETE /api/car/:id
func DeleteCar(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	db := middlewares.GetTx(c)
	var count int64
	if err := db.Model(&models.Order{}).Where("car_id = ?", id).Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if count > 0 {
		return fiber.NewError(fiber.StatusConflict, "car has recorded orders")
	}
	res := db.Delete(&models.Car{}, "id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not delete car")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "car not found")
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}
