package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/inventario-scan/internal/application/capture"
	"github.com/invorya/inventario-scan/internal/application/dto"
)

// ScanHandler expone el puente de captura por HTTP: las páginas que decodifican
// con cámara o widget publican el código con POST y la pantalla de registro lo
// recoge con polling, igual que los puentes de eventos JS originales.
type ScanHandler struct {
	puente *capture.Puente
}

// NewScanHandler construye el handler sobre el puente compartido.
func NewScanHandler(puente *capture.Puente) *ScanHandler {
	return &ScanHandler{puente: puente}
}

// Push encola un código decodificado.
func (h *ScanHandler) Push(c *fiber.Ctx) error {
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Codigo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "codigo es requerido"})
	}
	if !h.puente.Push(in.Codigo) {
		// Buffer lleno: el decodificador reintenta mientras el código siga en cámara
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "BUFFER_FULL", Message: "hay un escaneo pendiente sin consumir"})
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// Siguiente devuelve el próximo código pendiente, o 204 si no hay ninguno.
func (h *ScanHandler) Siguiente(c *fiber.Ctx) error {
	codigo, ok := h.puente.Poll()
	if !ok {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(dto.ScanResponse{Codigo: codigo})
}
