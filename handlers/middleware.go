package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/objetivatech/convergencia-empreendedora-sub000/models"
)

const localsUserID = "userID"

// RequireUser resolves the X-User-ID header to an existing account and stores
// the id in request locals. Checkout never runs for anonymous callers.
func RequireUser(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("X-User-ID")
		id, err := strconv.ParseUint(header, 10, 32)
		if header == "" || err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing or invalid X-User-ID"})
		}

		var user models.User
		if err := db.First(&user, uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unknown account"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to resolve account"})
		}

		c.Locals(localsUserID, user.ID)
		return c.Next()
	}
}

func userIDFromLocals(c *fiber.Ctx) uint {
	if id, ok := c.Locals(localsUserID).(uint); ok {
		return id
	}
	return 0
}
