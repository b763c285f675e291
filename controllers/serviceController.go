package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"autoshop-backend/middlewares"
	"autoshop-backend/models"
)

type ServiceCreateDTO struct {
	Name     string          `json:"name" validate:"required,min=1,max=50"`
	Price    decimal.Decimal `json:"price" validate:"required"`
	BranchId uint            `json:"branch_id"`
}

type ServiceUpdateDTO struct {
	Name  *string          `json:"name" validate:"omitempty,min=1,max=50"`
	Price *decimal.Decimal `json:"price"`
}

// POST /api/service
func CreateService(c *fiber.Ctx) error {
	var in ServiceCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	if in.Price.Sign() <= 0 {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "price must be positive")
	}
	branchId, err := actingBranch(c, in.BranchId)
	if err != nil {
		return err
	}

	service := models.Service{
		Name:     strings.TrimSpace(in.Name),
		Price:    in.Price,
		BranchId: branchId,
	}
	if err := middlewares.GetTx(c).Create(&service).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create service")
	}
	return c.Status(fiber.StatusCreated).JSON(service)
}

// GET /api/services
func GetServices(c *fiber.Ctx) error {
	branchId, err := actingBranch(c, 0)
	if err != nil {
		return err
	}
	var services []models.Service
	if err := middlewares.GetTx(c).
		Where("branch_id = ?", branchId).
		Order("name").
		Find(&services).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(services)
}

// PUT /api/service/:id
func UpdateService(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var in ServiceUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db := middlewares.GetTx(c)
	var existing models.Service
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "service not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Price != nil {
		if in.Price.Sign() <= 0 {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "price must be positive")
		}
		updates["price"] = *in.Price
	}
	if len(updates) > 0 {
		if err := db.Model(&models.Service{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update service")
		}
	}

	var out models.Service
	if err := db.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload service")
	}
	return c.JSON(out)
}

// DELETE /api/service/:id
func DeleteService(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	db := middlewares.GetTx(c)
	var count int64
	if err := db.Model(&models.OrderService{}).Where("service_id = ?", id).Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if count > 0 {
		return fiber.NewError(fiber.StatusConflict, "service is referenced by orders")
	}
	res := db.Delete(&models.Service{}, "id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not delete service")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "service not found")
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}
