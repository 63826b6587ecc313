package dispatch

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/henokhm/ride-hailing-bot/internal/utils"
)

// AuthHandler logs the dispatch operator in against the credentials
// configured in the environment and hands out a bearer token.
type AuthHandler struct {
	JWTSecret    string
	Expires      int
	Username     string
	PasswordHash string
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid body",
		})
	}

	username := strings.TrimSpace(req.Username)
	if username != h.Username || !utils.CheckPassword(h.PasswordHash, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "invalid credentials",
		})
	}

	token, err := utils.SignJWT(h.JWTSecret, username, h.Expires)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "failed to create token",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"token": token},
	})
}
