package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"autoshop-backend/ledger"
	"autoshop-backend/middlewares"
	"autoshop-backend/models"
)

type SweepDTO struct {
	BranchId    uint   `json:"branch_id"`
	Description string `json:"description"`
}

// POST /api/transfer
// Sweeps the whole branch cash into the wallet.
func SweepBranchFunds(c *fiber.Ctx) error {
	var in SweepDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	branchId, err := actingBranch(c, in.BranchId)
	if err != nil {
		return err
	}
	transfer, err := ledger.SweepBranchFunds(middlewares.GetTx(c), branchId,
		currentUserId(c), strings.TrimSpace(in.Description))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(transfer)
}

// GET /api/transfers
func GetTransfers(c *fiber.Ctx) error {
	branchId, err := actingBranch(c, 0)
	if err != nil {
		return err
	}
	var transfers []models.BranchFundTransfer
	if err := middlewares.GetTx(c).
		Where("branch_id = ?", branchId).
		Order("id desc").
		Find(&transfers).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(transfers)
}

// DELETE /api/transfer/:id
func DeleteTransfer(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	if err := ledger.DeleteBranchFundTransfer(middlewares.GetTx(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}
