package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"autoshop-backend/ledger"
	"autoshop-backend/middlewares"
	"autoshop-backend/models"
)

type ExpenseTypeDTO struct {
	Name     string `json:"name" validate:"required,min=1,max=50"`
	BranchId uint   `json:"branch_id"`
}

// POST /api/expense-type
func CreateExpenseType(c *fiber.Ctx) error {
	var in ExpenseTypeDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	branchId, err := actingBranch(c, in.BranchId)
	if err != nil {
		return err
	}
	expenseType := models.ExpenseType{
		Name:     strings.TrimSpace(in.Name),
		BranchId: branchId,
	}
	if err := middlewares.GetTx(c).Create(&expenseType).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create expense type")
	}
	return c.Status(fiber.StatusCreated).JSON(expenseType)
}

// GET /api/expense-types
func GetExpenseTypes(c *fiber.Ctx) error {
	branchId, err := actingBranch(c, 0)
	if err != nil {
		return err
	}
	var types []models.ExpenseType
	if err := middlewares.GetTx(c).
		Where("branch_id = ?", branchId).
		Order("name").
		Find(&types).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(types)
}

// POST /api/expense
func CreateExpense(c *fiber.Ctx) error {
	var in ledger.ExpenseInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	branchId, err := actingBranch(c, in.BranchId)
	if err != nil {
		return err
	}
	in.BranchId = branchId
	in.FromUserId = currentUserId(c)

	expense, err := ledger.RecordExpense(middlewares.GetTx(c), &in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(expense)
}

// GET /api/expenses
func GetExpenses(c *fiber.Ctx) error {
	branchId, err := actingBranch(c, 0)
	if err != nil {
		return err
	}
	q := middlewares.GetTx(c).Where("branch_id = ?", branchId)
	if typeId := c.QueryInt("type_id"); typeId > 0 {
		q = q.Where("type_id = ?", typeId)
	}
	var expenses []models.Expense
	if err := q.Preload("Type").Order("id desc").Find(&expenses).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(expenses)
}

// GET /api/expense/:id
func GetExpense(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var expense models.Expense
	if err := middlewares.GetTx(c).Preload("Type").First(&expense, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "expense not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(expense)
}

// PUT /api/expense/:id
func UpdateExpense(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var in ledger.ExpenseInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	expense, err := ledger.UpdateExpense(middlewares.GetTx(c), id, &in)
	if err != nil {
		return err
	}
	return c.JSON(expense)
}

// DELETE /api/expense/:id
func DeleteExpense(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	if err := ledger.DeleteExpense(middlewares.GetTx(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}
