package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"autoshop-backend/ledger"
	"autoshop-backend/middlewares"
	"autoshop-backend/models"
	"autoshop-backend/utils"
)

type ProductCreateDTO struct {
	Code         string          `json:"code" validate:"omitempty,max=20"`
	Name         string          `json:"name" validate:"required,min=1"`
	Unit         string          `json:"unit" validate:"omitempty,max=50"`
	ArrivalPrice decimal.Decimal `json:"arrival_price"`
	SellPrice    decimal.Decimal `json:"sell_price"`
	MinAmount    float64         `json:"min_amount" validate:"omitempty,min=0"`
	MaxDiscount  int             `json:"max_discount" validate:"omitempty,min=0,max=100"`
	IsTemp       bool            `json:"is_temp"`
	SupplierId   uint            `json:"supplier_id" validate:"required"`
	BranchId     uint            `json:"branch_id"`
}

type ProductUpdateDTO struct {
	Code        *string  `json:"code" validate:"omitempty,max=20"`
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Unit        *string  `json:"unit" validate:"omitempty,max=50"`
	MinAmount   *float64 `json:"min_amount" validate:"omitempty,min=0"`
	MaxDiscount *int     `json:"max_discount" validate:"omitempty,min=0,max=100"`
}

// POST /api/product
// Catalog entry only: stock arrives through imports. Temp rows reserve a name
// ahead of confirmed pricing, so a duplicate temp name is a conflict.
func CreateProduct(c *fiber.Ctx) error {
	var in ProductCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	branchId, err := actingBranch(c, in.BranchId)
	if err != nil {
		return err
	}

	db := middlewares.GetTx(c)
	name := strings.TrimSpace(in.Name)
	if in.IsTemp {
		var count int64
		if err := db.Model(&models.Product{}).
			Where("name = ? AND branch_id = ? AND is_temp = ?", name, branchId, true).
			Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "db error")
		}
		if count > 0 {
			return ledger.Conflict("a provisional product named %q already exists", name)
		}
	}

	product := models.Product{
		Code:         strings.TrimSpace(in.Code),
		Name:         name,
		Unit:         strings.TrimSpace(in.Unit),
		ArrivalPrice: in.ArrivalPrice,
		SellPrice:    in.SellPrice,
		MinAmount:    in.MinAmount,
		MaxDiscount:  in.MaxDiscount,
		IsTemp:       in.IsTemp,
		SupplierId:   in.SupplierId,
		BranchId:     branchId,
	}
	if err := db.Create(&product).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// GET /api/products
func GetProducts(c *fiber.Ctx) error {
	branchId, err := actingBranch(c, 0)
	if err != nil {
		return err
	}
	q := middlewares.GetTx(c).Where("branch_id = ?", branchId)
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q = q.Where("name ILIKE ? OR code ILIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if c.QueryBool("low_stock") {
		q = q.Where("amount <= min_amount")
	}
	var products []models.Product
	if err := q.Order("id desc").Find(&products).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(products)
}

// GET /api/product/:id
func GetProduct(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var product models.Product
	if err := middlewares.GetTx(c).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(product)
}

// PUT /api/product/:id
// Prices and stock are ledger-owned; only catalog fields are editable here.
func UpdateProduct(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var in ProductUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	db := middlewares.GetTx(c)
	var existing models.Product
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in)
	if len(updates) > 0 {
		if err := db.Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update product")
		}
	}

	var out models.Product
	if err := db.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload product")
	}
	return c.JSON(out)
}

// DELETE /api/product/:id
func DeleteProduct(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	db := middlewares.GetTx(c)
	var product models.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if product.Amount > 0 {
		return fiber.NewError(fiber.StatusConflict, "product still has stock")
	}
	if err := db.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not delete product")
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

// GET /api/warehouse/value
func GetWarehouseValue(c *fiber.Ctx) error {
	branchId, err := actingBranch(c, 0)
	if err != nil {
		return err
	}
	sell, arrival, err := ledger.WarehouseValue(middlewares.GetTx(c), branchId)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"branch_id":     branchId,
		"sell_value":    sell,
		"arrival_value": arrival,
	})
}
