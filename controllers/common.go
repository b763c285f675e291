package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func parseId(c *fiber.Ctx) (uint, error) {
	raw := strings.TrimSpace(c.Params("id"))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id in path")
	}
	return uint(id), nil
}

// actingBranch resolves the branch a request acts on. Staff tokens are pinned
// to their branch; admins select one via ?branch_id= or the body field.
func actingBranch(c *fiber.Ctx, bodyBranch uint) (uint, error) {
	if b, ok := c.Locals("branchID").(uint); ok && b != 0 {
		return b, nil
	}
	if bodyBranch != 0 {
		return bodyBranch, nil
	}
	if q := c.QueryInt("branch_id"); q > 0 {
		return uint(q), nil
	}
	return 0, fiber.NewError(fiber.StatusBadRequest, "branch_id is required")
}

func currentUserId(c *fiber.Ctx) string {
	userID, _ := c.Locals("userID").(string)
	return userID
}
