package handler

import (
	"errors"

	"go-stores-admin/internal/apperr"
	"go-stores-admin/internal/model"
	"go-stores-admin/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// Helpers to pull user info from JWT context (set by auth middleware)
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system" // Fallback (shouldn't happen in protected routes)
	}
	return userID.(string)
}

func getUserName(c *fiber.Ctx) string {
	userName := c.Locals("user_name")
	if userName == nil {
		return "Unknown"
	}
	return userName.(string)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// fail maps domain errors onto HTTP statuses. Anything outside the domain
// taxonomy is a 500.
func fail(c *fiber.Ctx, err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		body := fiber.Map{"error": ae.Message}
		if len(ae.Records) > 0 {
			body["records"] = ae.Records
		}
		return c.Status(ae.HTTPStatus()).JSON(body)
	}
	return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
}

func (h *InventoryHandler) GetCategories(c *fiber.Ctx) error {
	return c.JSON(h.service.ListCategories())
}

func (h *InventoryHandler) GetItemsByCategory(c *fiber.Ctx) error {
	items, err := h.service.ListByCategory(c.Params("name"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(items)
}

func (h *InventoryHandler) SearchItems(c *fiber.Ctx) error {
	return c.JSON(h.service.SearchItems(c.Query("q")))
}

func (h *InventoryHandler) GetLowStock(c *fiber.Ctx) error {
	return c.JSON(h.service.LowStockReport())
}

func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	item, err := h.service.GetItem(c.Params("code"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(item)
}

func (h *InventoryHandler) GetItemMovements(c *fiber.Ctx) error {
	movements, err := h.service.ItemMovements(c.Params("code"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(movements)
}

func (h *InventoryHandler) GetReconciliation(c *fiber.Ctx) error {
	result, err := h.service.Reconcile(c.Params("code"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var item model.InventoryItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateItem(&item, getUserName(c)); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Item created", "data": item})
}

func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	var req service.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateItemDetails(c.Params("code"), &req, getUserName(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item updated", "data": updated})
}

func (h *InventoryHandler) DeactivateItem(c *fiber.Ctx) error {
	if err := h.service.DeactivateItem(c.Params("code"), getUserName(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item deactivated"})
}

type adjustStockRequest struct {
	Delta     int    `json:"delta"`
	Reason    string `json:"reason"`
	Reference string `json:"reference"`
}

func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var req adjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	mv, err := h.service.AdjustStock(c.Params("code"), req.Delta, req.Reason, req.Reference, getUserName(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Stock adjusted", "data": mv})
}

type correctStockRequest struct {
	CountedQuantity int    `json:"counted_quantity"`
	Reason          string `json:"reason"`
}

func (h *InventoryHandler) CorrectStock(c *fiber.Ctx) error {
	var req correctStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	mv, err := h.service.CorrectStock(c.Params("code"), req.CountedQuantity, req.Reason, getUserName(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Stock corrected", "data": mv})
}
