package handler

import (
	"go-stores-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DirectoryHandler struct {
	service service.DirectoryService
}

func NewDirectoryHandler(s service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: s}
}

func (h *DirectoryHandler) GetSuppliers(c *fiber.Ctx) error {
	return c.JSON(h.service.ListSuppliers())
}

func (h *DirectoryHandler) GetSupplier(c *fiber.Ctx) error {
	sp, err := h.service.GetSupplier(c.Params("name"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sp)
}

func (h *DirectoryHandler) GetEmployees(c *fiber.Ctx) error {
	return c.JSON(h.service.ListEmployees())
}

func (h *DirectoryHandler) GetEmployee(c *fiber.Ctx) error {
	e, err := h.service.GetEmployee(c.Params("employeeNo"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(e)
}
