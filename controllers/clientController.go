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

type ClientCreateDTO struct {
	FirstName  string `json:"first_name" validate:"required,min=1"`
	LastName   string `json:"last_name" validate:"required,min=1"`
	Phone      string `json:"phone" validate:"required,max=13"`
	ExtraPhone string `json:"extra_phone" validate:"omitempty,max=13"`
	Address    string `json:"address" validate:"omitempty"`
	BranchId   uint   `json:"branch_id"`
}

type ClientUpdateDTO struct {
	FirstName  *string `json:"first_name" validate:"omitempty,min=1"`
	LastName   *string `json:"last_name" validate:"omitempty,min=1"`
	Phone      *string `json:"phone" validate:"omitempty,max=13"`
	ExtraPhone *string `json:"extra_phone" validate:"omitempty,max=13"`
	Address    *string `json:"address" validate:"omitempty"`
}

// POST /api/client
func CreateClient(c *fiber.Ctx) error {
	var in ClientCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	branchId, err := actingBranch(c, in.BranchId)
	if err != nil {
		return err
	}

	client := models.Client{
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		Phone:      strings.TrimSpace(in.Phone),
		ExtraPhone: strings.TrimSpace(in.ExtraPhone),
		Address:    strings.TrimSpace(in.Address),
		BranchId:   branchId,
	}
	if err := middlewares.GetTx(c).Create(&client).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create client")
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// GET /api/clients
func GetClients(c *fiber.Ctx) error {
	branchId, err := actingBranch(c, 0)
	if err != nil {
		return err
	}
	var clients []models.Client
	if err := middlewares.GetTx(c).
		Where("branch_id = ?", branchId).
		Order("id desc").
		Find(&clients).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(clients)
}

// GET /api/client/:id
func GetClient(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var client models.Client
	if err := middlewares.GetTx(c).First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "client not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(client)
}

// PUT /api/client/:id
func UpdateClient(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var in ClientUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	db := middlewares.GetTx(c)
	var existing models.Client
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "client not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in)
	if len(updates) > 0 {
		if err := db.Model(&models.Client{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update client")
		}
	}

	var out models.Client
	if err := db.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload client")
	}
	return c.JSON(out)
}

// DELETE /api/client/:id
func DeleteClient(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	db := middlewares.GetTx(c)
	var client models.Client
	if err := db.First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "client not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if !client.Lending.IsZero() {
		return fiber.NewError(fiber.StatusConflict, "client still carries debt")
	}
	if err := db.Delete(&models.Client{}, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not delete client")
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}
