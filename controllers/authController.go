package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"autoshop-backend/database"
	"autoshop-backend/middlewares"
	"autoshop-backend/models"
)

type RegisterDTO struct {
	FirstName       string `json:"first_name" validate:"required,min=1"`
	LastName        string `json:"last_name" validate:"required,min=1"`
	Phone           string `json:"phone" validate:"omitempty,max=13"`
	Username        string `json:"username" validate:"required,min=3"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
	Role            string `json:"role" validate:"omitempty,oneof=admin staff"`
	BranchId        *uint  `json:"branch_id"`
}

// POST /api/register (admin only)
func Register(c *fiber.Ctx) error {
	var in RegisterDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	if in.Password != in.PasswordConfirm {
		return fiber.NewError(fiber.StatusBadRequest, "passwords do not match")
	}

	username := strings.TrimSpace(in.Username)
	var exists models.User
	err := database.DB.Where("username = ?", username).First(&exists).Error
	if err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "username already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	role := in.Role
	if role == "" {
		role = models.RoleStaff
	}
	if role == models.RoleStaff && in.BranchId == nil {
		return fiber.NewError(fiber.StatusBadRequest, "staff users need a branch")
	}

	user := models.User{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     strings.TrimSpace(in.Phone),
		Username:  username,
		Role:      role,
		BranchId:  in.BranchId,
	}
	user.SetPassword(in.Password)
	if err := database.DB.Create(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create user")
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

type LoginDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// POST /api/login
func Login(c *fiber.Ctx) error {
	var in LoginDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	var user models.User
	if err := database.DB.Where("username = ?", strings.TrimSpace(in.Username)).First(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid credentials")
	}
	if err := user.ComparePassword(in.Password); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid credentials")
	}

	token, err := middlewares.GenerateJWT(user.Id, user.Role, user.BranchId)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not sign token")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":        user.Id,
			"name":      user.FirstName + " " + user.LastName,
			"username":  user.Username,
			"role":      user.Role,
			"branch_id": user.BranchId,
		},
	})
}

// GET /api/me
func Me(c *fiber.Ctx) error {
	var user models.User
	if err := database.DB.First(&user, "id = ?", currentUserId(c)).Error; err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "user not found")
	}
	return c.JSON(user)
}
