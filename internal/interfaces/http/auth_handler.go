package http

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/invorya/inventario-scan/internal/application/dto"
	"github.com/invorya/inventario-scan/pkg/config"
	"github.com/invorya/inventario-scan/pkg/jwt"
)

// AuthHandler maneja el login contra la credencial configurada.
// La gestión de usuarios queda fuera de este servicio: hay un único operador
// definido por AUTH_USUARIO / AUTH_PASSWORD_HASH.
type AuthHandler struct {
	cfg config.AuthConfig
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// Login valida usuario y password (bcrypt) y emite un JWT.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Usuario == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "usuario y password son requeridos"})
	}
	if in.Usuario != h.cfg.Usuario ||
		bcrypt.CompareHashAndPassword([]byte(h.cfg.PasswordHash), []byte(in.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	}
	token, err := jwt.Generate(h.cfg.JWTSecret, in.Usuario, "bodeguero", h.cfg.Issuer, h.cfg.ExpMinutes)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.LoginResponse{Token: token})
}
