// transactions_handler.go contains GET handlers for the local ledger and the
// plan catalog.
package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/objetivatech/convergencia-empreendedora-sub000/models"
)

type TransactionsHandler struct {
	DB *gorm.DB
}

func NewTransactionsHandler(db *gorm.DB) *TransactionsHandler {
	return &TransactionsHandler{DB: db}
}

type txFilters struct {
	UserID     string
	Status     string
	Kind       string
	Instrument string
}

func applyTxFilters(f txFilters) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.UserID != "" {
			db = db.Where("user_id = ?", f.UserID)
		}
		if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
		if f.Kind != "" {
			db = db.Where("kind = ?", f.Kind)
		}
		if f.Instrument != "" {
			db = db.Where("instrument = ?", f.Instrument)
		}
		return db
	}
}

func parseLimitOffset(limitStr, offsetStr string) (int, int) {
	limit, offset := 50, 0
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}
	if offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}
	return limit, offset
}

func (h *TransactionsHandler) ListTransactions(c *fiber.Ctx) error {
	f := txFilters{
		UserID:     c.Query("user_id"),
		Status:     c.Query("status"),
		Kind:       c.Query("kind"),
		Instrument: c.Query("instrument"),
	}
	limit, offset := parseLimitOffset(c.Query("limit"), c.Query("offset"))

	var totalCount int64
	if err := h.DB.Model(&models.Transaction{}).
		Scopes(applyTxFilters(f)).
		Count(&totalCount).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count transactions: " + err.Error()})
	}

	// data (fresh query so Count leaves no side effects behind)
	var transactions []models.Transaction
	if err := h.DB.Model(&models.Transaction{}).
		Scopes(applyTxFilters(f)).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&transactions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve transactions: " + err.Error()})
	}

	return c.JSON(fiber.Map{
		"transactions": transactions,
		"pagination": fiber.Map{
			"total":  totalCount,
			"limit":  limit,
			"offset": offset,
		},
	})
}

func (h *TransactionsHandler) GetTransaction(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id is required"})
	}

	var tx models.Transaction
	// If numeric, treat as internal PK; else treat as gateway charge id
	if n, err := strconv.ParseUint(id, 10, 64); err == nil {
		err = h.DB.Preload("User").First(&tx, uint(n)).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve transaction: " + err.Error()})
		}
		if err == nil {
			return c.JSON(tx)
		}
	}

	if err := h.DB.Preload("User").Where("gateway_charge_id = ?", id).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve transaction: " + err.Error()})
	}
	return c.JSON(tx)
}

// ListPlans returns the active plan catalog the wizard renders.
func (h *TransactionsHandler) ListPlans(c *fiber.Ctx) error {
	var plans []models.Plan
	if err := h.DB.Where("active = ?", true).Order("monthly_price ASC").Find(&plans).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve plans: " + err.Error()})
	}
	return c.JSON(fiber.Map{"plans": plans})
}
