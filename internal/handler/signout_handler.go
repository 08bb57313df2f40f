package handler

import (
	"time"

	"go-stores-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SignOutHandler struct {
	service service.SignOutService
}

func NewSignOutHandler(s service.SignOutService) *SignOutHandler {
	return &SignOutHandler{service: s}
}

func (h *SignOutHandler) GetEquipment(c *fiber.Ctx) error {
	return c.JSON(h.service.ListEquipment())
}

func (h *SignOutHandler) CheckOut(c *fiber.Ctx) error {
	var req service.CheckOutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	txn, err := h.service.CheckOut(&req, getUserName(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Equipment checked out", "data": txn})
}

func (h *SignOutHandler) CheckIn(c *fiber.Ctx) error {
	txn, err := h.service.CheckIn(c.Params("code"), getUserName(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Equipment checked in", "data": txn})
}

type forceCheckInRequest struct {
	Reason string `json:"reason"`
}

func (h *SignOutHandler) ForceCheckIn(c *fiber.Ctx) error {
	var req forceCheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	txn, err := h.service.ForceCheckIn(c.Params("code"), req.Reason, getUserName(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Equipment force checked in", "data": txn})
}

func (h *SignOutHandler) MarkMaintenance(c *fiber.Ctx) error {
	eq, err := h.service.MarkMaintenance(c.Params("code"), getUserName(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Equipment sent to maintenance", "data": eq})
}

func (h *SignOutHandler) MarkAvailable(c *fiber.Ctx) error {
	eq, err := h.service.MarkAvailable(c.Params("code"), getUserName(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Equipment back in service", "data": eq})
}

func (h *SignOutHandler) GetOutstanding(c *fiber.Ctx) error {
	return c.JSON(h.service.Outstanding(time.Now()))
}

func (h *SignOutHandler) GetByHolder(c *fiber.Ctx) error {
	return c.JSON(h.service.ByHolder(c.Params("employeeNo"), time.Now()))
}

func (h *SignOutHandler) GetEquipmentHistory(c *fiber.Ctx) error {
	history, err := h.service.EquipmentHistory(c.Params("code"), time.Now())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(history)
}
