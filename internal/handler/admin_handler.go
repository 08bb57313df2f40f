package handler

import (
	"go-stores-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	reload service.ReloadService
}

func NewAdminHandler(reload service.ReloadService) *AdminHandler {
	return &AdminHandler{reload: reload}
}

// Reload refreshes the in-memory tables from the backing database. Tables
// that fail validation keep their previous snapshot; the report says which.
func (h *AdminHandler) Reload(c *fiber.Ctx) error {
	report, err := h.reload.Reload()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	status := 200
	if len(report.Errors) > 0 {
		// Partial failure: some tables kept their previous data.
		status = 400
	}
	return c.Status(status).JSON(fiber.Map{
		"message": "Reload complete",
		"tables":  report.Tables,
		"errors":  report.Errors,
	})
}
