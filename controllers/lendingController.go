package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"autoshop-backend/ledger"
	"autoshop-backend/middlewares"
	"autoshop-backend/models"
)

// POST /api/lending/give
func GiveLending(c *fiber.Ctx) error {
	var in ledger.LendingInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	branchId, err := actingBranch(c, in.BranchId)
	if err != nil {
		return err
	}
	in.BranchId = branchId

	lending, err := ledger.GiveLending(middlewares.GetTx(c), &in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(lending)
}

// POST /api/lending/pay
func PayLending(c *fiber.Ctx) error {
	var in ledger.LendingInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	branchId, err := actingBranch(c, in.BranchId)
	if err != nil {
		return err
	}
	in.BranchId = branchId

	lending, err := ledger.PayLending(middlewares.GetTx(c), &in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(lending)
}

// GET /api/lendings
func GetLendings(c *fiber.Ctx) error {
	branchId, err := actingBranch(c, 0)
	if err != nil {
		return err
	}
	q := middlewares.GetTx(c).Where("branch_id = ?", branchId)
	if clientId := c.QueryInt("client_id"); clientId > 0 {
		q = q.Where("client_id = ?", clientId)
	}
	var lendings []models.Lending
	if err := q.Preload("Client").Order("id desc").Find(&lendings).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(lendings)
}

// GET /api/lending/:id
func GetLending(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var lending models.Lending
	if err := middlewares.GetTx(c).Preload("Client").First(&lending, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "lending not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(lending)
}

// PUT /api/lending/:id
func UpdateLending(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var in AmountDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	lending, err := ledger.UpdateLending(middlewares.GetTx(c), id, in.Amount)
	if err != nil {
		return err
	}
	return c.JSON(lending)
}

// DELETE /api/lending/:id
func DeleteLending(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	if err := ledger.DeleteLending(middlewares.GetTx(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}
