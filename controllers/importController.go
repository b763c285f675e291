package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"autoshop-backend/ledger"
	"autoshop-backend/middlewares"
	"autoshop-backend/models"
)

// POST /api/import
func CreateImport(c *fiber.Ctx) error {
	var in ledger.ImportInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	branchId, err := actingBranch(c, in.BranchId)
	if err != nil {
		return err
	}
	in.BranchId = branchId

	list, err := ledger.ImportStock(middlewares.GetTx(c), &in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(list)
}

// GET /api/imports
func GetImports(c *fiber.Ctx) error {
	branchId, err := actingBranch(c, 0)
	if err != nil {
		return err
	}
	q := middlewares.GetTx(c).Where("branch_id = ?", branchId)
	if supplierId := c.QueryInt("supplier_id"); supplierId > 0 {
		q = q.Where("supplier_id = ?", supplierId)
	}
	var lists []models.ImportList
	if err := q.Preload("Supplier").Order("id desc").Find(&lists).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(lists)
}

// GET /api/import/:id
func GetImport(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var list models.ImportList
	if err := middlewares.GetTx(c).
		Preload("Supplier").Preload("Products").Preload("Products.Product").
		First(&list, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "import list not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(list)
}

// PUT /api/import-product/:id
func UpdateImportProduct(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var in ledger.ImportProductInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	line, err := ledger.UpdateImportProduct(middlewares.GetTx(c), id, &in)
	if err != nil {
		return err
	}
	return c.JSON(line)
}

// DELETE /api/import-product/:id
func DeleteImportProduct(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	if err := ledger.DeleteImportProduct(middlewares.GetTx(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

// DELETE /api/import/:id
func DeleteImport(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	if err := ledger.DeleteImportList(middlewares.GetTx(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}
