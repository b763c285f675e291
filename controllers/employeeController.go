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

type EmployeeCreateDTO struct {
	FirstName     string `json:"first_name" validate:"required,min=1"`
	LastName      string `json:"last_name" validate:"required,min=1"`
	Phone         string `json:"phone" validate:"required,max=13"`
	Address       string `json:"address" validate:"omitempty"`
	Position      string `json:"position" validate:"required,oneof=manager mechanic other"`
	CommissionPer int    `json:"commission_per" validate:"omitempty,min=0,max=100"`
	KPI           int    `json:"kpi" validate:"omitempty,min=0"`
	Salary        int    `json:"salary" validate:"omitempty,min=0"`
	BranchId      uint   `json:"branch_id"`
}

type EmployeeUpdateDTO struct {
	FirstName     *string `json:"first_name" validate:"omitempty,min=1"`
	LastName      *string `json:"last_name" validate:"omitempty,min=1"`
	Phone         *string `json:"phone" validate:"omitempty,max=13"`
	Address       *string `json:"address" validate:"omitempty"`
	Position      *string `json:"position" validate:"omitempty,oneof=manager mechanic other"`
	CommissionPer *int    `json:"commission_per" validate:"omitempty,min=0,max=100"`
	KPI           *int    `json:"kpi" validate:"omitempty,min=0"`
	Salary        *int    `json:"salary" validate:"omitempty,min=0"`
}

// POST /api/employee
func CreateEmployee(c *fiber.Ctx) error {
	var in EmployeeCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	branchId, err := actingBranch(c, in.BranchId)
	if err != nil {
		return err
	}

	employee := models.Employee{
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		Phone:         strings.TrimSpace(in.Phone),
		Address:       strings.TrimSpace(in.Address),
		Position:      in.Position,
		CommissionPer: in.CommissionPer,
		KPI:           in.KPI,
		Salary:        in.Salary,
		BranchId:      branchId,
	}
	if employee.CommissionPer == 0 {
		employee.CommissionPer = 2
	}
	if err := middlewares.GetTx(c).Create(&employee).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create employee")
	}
	return c.Status(fiber.StatusCreated).JSON(employee)
}

// GET /api/employees
func GetEmployees(c *fiber.Ctx) error {
	branchId, err := actingBranch(c, 0)
	if err != nil {
		return err
	}
	q := middlewares.GetTx(c).Where("branch_id = ?", branchId)
	if position := strings.TrimSpace(c.Query("position")); position != "" {
		q = q.Where("position = ?", position)
	}
	var employees []models.Employee
	if err := q.Order("id desc").Find(&employees).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(employees)
}

// GET /api/employee/:id
func GetEmployee(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var employee models.Employee
	if err := middlewares.GetTx(c).First(&employee, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "employee not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(employee)
}

// PUT /api/employee/:id
func UpdateEmployee(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var in EmployeeUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	db := middlewares.GetTx(c)
	var existing models.Employee
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "employee not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in)
	if len(updates) > 0 {
		if err := db.Model(&models.Employee{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update employee")
		}
	}

	var out models.Employee
	if err := db.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload employee")
	}
	return c.JSON(out)
}

// DELETE /api/employee/:id
func DeleteEmployee(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	db := middlewares.GetTx(c)
	var employee models.Employee
	if err := db.First(&employee, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "employee not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if !employee.Balance.IsZero() {
		return fiber.NewError(fiber.StatusConflict, "employee still has an unpaid balance")
	}
	if err := db.Delete(&models.Employee{}, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not delete employee")
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}
