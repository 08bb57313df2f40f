package handler

import (
	"time"

	"go-stores-admin/internal/model"
	"go-stores-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type MedicalHandler struct {
	service service.MedicalService
}

func NewMedicalHandler(s service.MedicalService) *MedicalHandler {
	return &MedicalHandler{service: s}
}

func (h *MedicalHandler) ReportIncident(c *fiber.Ctx) error {
	var incident model.MedicalIncident
	if err := c.BodyParser(&incident); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	created, err := h.service.ReportIncident(&incident, getUserName(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Incident reported", "data": created})
}

func (h *MedicalHandler) GetIncidents(c *fiber.Ctx) error {
	filter := service.IncidentFilter{
		Status:   model.IncidentStatus(c.Query("status")),
		Severity: model.IncidentSeverity(c.Query("severity")),
	}
	return c.JSON(h.service.ListIncidents(filter))
}

func (h *MedicalHandler) GetIncident(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid incident ID"})
	}

	incident, err := h.service.GetIncident(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(incident)
}

func (h *MedicalHandler) GetSummary(c *fiber.Ctx) error {
	return c.JSON(h.service.Summary())
}

type updateIncidentStatusRequest struct {
	Status model.IncidentStatus `json:"status"`
}

func (h *MedicalHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid incident ID"})
	}

	var req updateIncidentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateStatus(id, req.Status, getUserName(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Incident status updated", "data": updated})
}

type recordTreatmentRequest struct {
	Treatment    string     `json:"treatment"`
	FollowUpDate *time.Time `json:"follow_up_date"`
}

func (h *MedicalHandler) RecordTreatment(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid incident ID"})
	}

	var req recordTreatmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.RecordTreatment(id, req.Treatment, req.FollowUpDate, getUserName(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Treatment recorded", "data": updated})
}
