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

type BranchCreateDTO struct {
	Name        string `json:"name" validate:"required,min=1"`
	Address     string `json:"address" validate:"omitempty"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=13"`
}

type BranchUpdateDTO struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Address     *string `json:"address" validate:"omitempty"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=13"`
}

// POST /api/branch (admin only)
func CreateBranch(c *fiber.Ctx) error {
	var in BranchCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	branch := models.Branch{
		Name:        strings.TrimSpace(in.Name),
		Address:     strings.TrimSpace(in.Address),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
	}
	if err := middlewares.GetTx(c).Create(&branch).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create branch")
	}
	return c.Status(fiber.StatusCreated).JSON(branch)
}

// GET /api/branches
func GetBranches(c *fiber.Ctx) error {
	var branches []models.Branch
	if err := middlewares.GetTx(c).Order("id").Find(&branches).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(branches)
}

// GET /api/branch/:id
func GetBranch(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var branch models.Branch
	if err := middlewares.GetTx(c).First(&branch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "branch not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(branch)
}

// PUT /api/branch/:id (admin only)
func UpdateBranch(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var in BranchUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	db := middlewares.GetTx(c)
	updates := utils.UpdatesFromPtrDTO(&in)
	if len(updates) > 0 {
		res := db.Model(&models.Branch{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update branch")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "branch not found")
		}
	}
	var out models.Branch
	if err := db.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload branch")
	}
	return c.JSON(out)
}

// GET /api/branch/:id/balance
func GetBranchBalance(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var branch models.Branch
	if err := middlewares.GetTx(c).First(&branch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "branch not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(fiber.Map{"branch_id": branch.Id, "balance": branch.Balance})
}

type WalletCreateDTO struct {
	Balance decimal.Decimal `json:"balance"`
}

// POST /api/wallet (admin only)
func CreateWallet(c *fiber.Ctx) error {
	var in WalletCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	wallet, err := ledger.CreateWallet(middlewares.GetTx(c), in.Balance)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(wallet)
}

// GET /api/wallet
func GetWallet(c *fiber.Ctx) error {
	balance, err := ledger.WalletBalance(middlewares.GetTx(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"name": models.WalletName, "balance": balance})
}
