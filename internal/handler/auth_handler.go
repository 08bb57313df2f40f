package handler

import (
	"strings"

	"go-stores-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email and password are required"})
	}

	resp, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		switch err {
		case service.ErrUserInactive:
			return c.Status(403).JSON(fiber.Map{"error": "Account is inactive"})
		default:
			return c.Status(401).JSON(fiber.Map{"error": "Invalid email or password"})
		}
	}
	return c.JSON(resp)
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if len(req.NewPassword) < 6 {
		return c.Status(400).JSON(fiber.Map{"error": "New password must be at least 6 characters"})
	}

	if err := h.service.ResetPassword(req.Email, req.OldPassword, req.NewPassword); err != nil {
		switch err {
		case service.ErrUserNotFound:
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		case service.ErrWrongPassword:
			return c.Status(401).JSON(fiber.Map{"error": "Current password is incorrect"})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to reset password"})
		}
	}
	return c.JSON(fiber.Map{"message": "Password updated"})
}

// Me validates the presented token and returns the current user, used by the
// frontend to restore sessions after a refresh.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 {
		return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
	}

	resp, err := h.service.ValidateToken(parts[1])
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
	}
	return c.JSON(resp)
}

func (h *AuthHandler) Heartbeat(c *fiber.Ctx) error {
	id, err := parseUUID(getUserID(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}
	if err := h.service.Heartbeat(id); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record heartbeat"})
	}
	return c.JSON(fiber.Map{"message": "ok"})
}
