package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"autoshop-backend/ledger"
	"autoshop-backend/middlewares"
	"autoshop-backend/models"
)

// POST /api/debt/get
func GetDebtFromSupplier(c *fiber.Ctx) error {
	var in ledger.DebtInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	branchId, err := actingBranch(c, in.BranchId)
	if err != nil {
		return err
	}
	in.BranchId = branchId

	debt, err := ledger.GetDebt(middlewares.GetTx(c), &in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(debt)
}

// POST /api/debt/pay
func PayDebtToSupplier(c *fiber.Ctx) error {
	var in ledger.DebtInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	branchId, err := actingBranch(c, in.BranchId)
	if err != nil {
		return err
	}
	in.BranchId = branchId

	debt, err := ledger.PayDebt(middlewares.GetTx(c), &in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(debt)
}

// GET /api/debts
func GetDebts(c *fiber.Ctx) error {
	branchId, err := actingBranch(c, 0)
	if err != nil {
		return err
	}
	q := middlewares.GetTx(c).Where("branch_id = ?", branchId)
	if supplierId := c.QueryInt("supplier_id"); supplierId > 0 {
		q = q.Where("supplier_id = ?", supplierId)
	}
	var debts []models.Debt
	if err := q.Preload("Supplier").Order("id desc").Find(&debts).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(debts)
}

// GET /api/debt/:id
func GetDebt(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var debt models.Debt
	if err := middlewares.GetTx(c).Preload("Supplier").First(&debt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "debt not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(debt)
}

type AmountDTO struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

// PUT /api/debt/:id
func UpdateDebt(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var in AmountDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	debt, err := ledger.UpdateDebt(middlewares.GetTx(c), id, in.Amount)
	if err != nil {
		return err
	}
	return c.JSON(debt)
}

// DELETE /api/debt/:id
func DeleteDebt(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	if err := ledger.DeleteDebt(middlewares.GetTx(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}
