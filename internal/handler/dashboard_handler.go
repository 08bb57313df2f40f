package handler

import (
	"strconv"
	"time"

	"go-stores-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	return c.JSON(h.service.GetStats(time.Now()))
}

func (h *DashboardHandler) GetCategoryRollups(c *fiber.Ctx) error {
	return c.JSON(h.service.CategoryRollups())
}

func (h *DashboardHandler) GetStockMovement(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "7"))
	if err != nil || days <= 0 {
		days = 7
	}
	return c.JSON(h.service.GetStockMovement(days, time.Now()))
}

func (h *DashboardHandler) GetExpiringContracts(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "90"))
	if err != nil || days <= 0 {
		days = 90
	}
	within := time.Duration(days) * 24 * time.Hour
	return c.JSON(h.service.ExpiringContracts(within, time.Now()))
}
