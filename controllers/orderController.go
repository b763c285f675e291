package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"autoshop-backend/ledger"
	"autoshop-backend/middlewares"
	"autoshop-backend/models"
)

// POST /api/order
func CreateOrder(c *fiber.Ctx) error {
	var in ledger.OrderInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	order, err := ledger.RecordOrder(middlewares.GetTx(c), &in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// GET /api/orders
func GetOrders(c *fiber.Ctx) error {
	branchId, err := actingBranch(c, 0)
	if err != nil {
		return err
	}
	q := middlewares.GetTx(c).Where("branch_id = ?", branchId)
	if clientId := c.QueryInt("client_id"); clientId > 0 {
		q = q.Where("client_id = ?", clientId)
	}
	var orders []models.Order
	if err := q.Preload("Client").Preload("Car").
		Order("id desc").Find(&orders).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(orders)
}

// GET /api/order/:id
func GetOrder(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var order models.Order
	if err := middlewares.GetTx(c).
		Preload("Client").Preload("Car").Preload("Manager").
		Preload("Services").Preload("Services.Service").Preload("Services.Mechanic").
		Preload("Products").Preload("Products.Product").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(order)
}

// PUT /api/order/:id
func UpdateOrder(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var in ledger.OrderInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	order, err := ledger.UpdateOrder(middlewares.GetTx(c), id, &in)
	if err != nil {
		return err
	}
	return c.JSON(order)
}

// DELETE /api/order/:id
func DeleteOrder(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	if err := ledger.DeleteOrder(middlewares.GetTx(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

// POST /api/order/:id/service
func AddOrderService(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var in ledger.OrderServiceInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	line, err := ledger.AddOrderService(middlewares.GetTx(c), id, &in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(line)
}

// PUT /api/order-service/:id
func UpdateOrderService(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var in ledger.OrderServiceInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	line, err := ledger.UpdateOrderService(middlewares.GetTx(c), id, &in)
	if err != nil {
		return err
	}
	return c.JSON(line)
}

// DELETE /api/order-service/:id
func DeleteOrderService(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	if err := ledger.DeleteOrderService(middlewares.GetTx(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

// POST /api/order/:id/product
func AddOrderProduct(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var in ledger.OrderProductInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	line, err := ledger.AddOrderProduct(middlewares.GetTx(c), id, &in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(line)
}

// PUT /api/order-product/:id
func UpdateOrderProduct(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	var in ledger.OrderProductInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	line, err := ledger.UpdateOrderProduct(middlewares.GetTx(c), id, &in)
	if err != nil {
		return err
	}
	return c.JSON(line)
}

// DELETE /api/order-product/:id
func DeleteOrderProduct(c *fiber.Ctx) error {
	id, err := parseId(c)
	if err != nil {
		return err
	}
	if err := ledger.DeleteOrderProduct(middlewares.GetTx(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}
