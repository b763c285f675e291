package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"autoshop-backend/ledger"
	"autoshop-backend/middlewares"
	"autoshop-backend/models"
)

// POST /api/salary
func CreateSalary(c *fiber.Ctx) error {
	var in ledger.SalaryInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	branchId, err := actingBranch(c, in.BranchId)
	if err != nil {
		return err
	}
	in.BranchId = branchId
	in.FromUserId = currentUserId(c)

	salary, err := ledger.PaySalary(middlewares.GetTx(c), &in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(salary)
}

// GET /api/salaries
func GetSalaries(c *fiber.Ctx) error {
	branchId, err := actingBranch(c, 0)
	if err != nil {
		return err
	}
	q := middlewares.GetTx(c).Where("branch_id = ?", branchId)
	if employeeId := c.QueryInt("employee_id"); employeeId > 0 {
		q = q.Where("employee_id = ?", employeeId)
	}
	var salaries []models.Salary
	if err := q.Preload("Employee").Order("id desc").Find(&salaries).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(salaries)
}

// GET /api/salary/:id
func GetSalary(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var salary models.Salary
	if err := middlewares.GetTx(c).Preload("Employee").First(&salary, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "salary not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(salary)
}

// PUT /api/salary/:id
func UpdateSalary(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var in AmountDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	salary, err := ledger.UpdateSalary(middlewares.GetTx(c), id, in.Amount)
	if err != nil {
		return err
	}
	return c.JSON(salary)
}

// DELETE /api/salary/:id
func DeleteSalary(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	if err := ledger.DeleteSalary(middlewares.GetTx(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

// POST /api/salaries/accrue (admin only)
// One-shot monthly accrual, normally run by the scheduler.
func AccrueSalaries(c *fiber.Ctx) error {
	count, err := ledger.AccrueMonthlySalaries(middlewares.GetTx(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"accrued": count})
}
