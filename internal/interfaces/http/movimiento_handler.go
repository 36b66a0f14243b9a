package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/invorya/inventario-scan/internal/application/dto"
	"github.com/invorya/inventario-scan/internal/application/inventory"
	"github.com/invorya/inventario-scan/internal/domain"
)

// MovimientoHandler maneja la consulta de productos y el registro de
// movimientos de inventario (protegido).
type MovimientoHandler struct {
	uc *inventory.RegistrarMovimientoUseCase
}

// NewMovimientoHandler construye el handler.
func NewMovimientoHandler(uc *inventory.RegistrarMovimientoUseCase) *MovimientoHandler {
	return &MovimientoHandler{uc: uc}
}

// BuscarProducto resuelve un código de barras contra el catálogo.
// El código llega como parámetro de ruta sin normalizar: la comparación es
// exacta, igual que el flujo de escaneo.
func (h *MovimientoHandler) BuscarProducto(c *fiber.Ctx) error {
	codigo := c.Params("codigo")
	producto, err := h.uc.BuscarProducto(c.Context(), codigo)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "código no encontrado en el catálogo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PERSISTENCIA", Message: err.Error()})
	}
	return c.JSON(dto.ProductoResponse{
		CodigoBarras:  producto.CodigoBarras,
		Detalle:       producto.Detalle,
		Precio:        producto.Precio,
		Inventariable: producto.Inventariable,
	})
}

// Registrar ejecuta el motor de movimientos. Si el body no trae usuario, se
// toma el del token.
func (h *MovimientoHandler) Registrar(c *fiber.Ctx) error {
	var in dto.RegistrarMovimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Usuario == "" {
		in.Usuario = GetUsuario(c)
	}

	resultado, err := h.uc.Registrar(c.Context(), inventory.MovimientoInput{
		CodigoBarras:  in.CodigoBarras,
		Tipo:          in.Tipo,
		Cantidad:      in.Cantidad,
		Terminado:     in.Terminado,
		Usuario:       in.Usuario,
		Observaciones: in.Observaciones,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "código no encontrado en el catálogo"})
		}
		// Fallo de persistencia: el movimiento no se reporta como exitoso
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PERSISTENCIA", Message: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MovimientoResponse{
		CodigoBarras:  resultado.Registro.CodigoBarras,
		Detalle:       resultado.Detalle,
		Bodega:        resultado.Registro.Bodega,
		Tipo:          resultado.Registro.Tipo,
		Cantidad:      resultado.Registro.Cantidad,
		CantidadNueva: resultado.CantidadNueva,
		Creado:        resultado.Creado,
		FechaHora:     resultado.Registro.FechaHoraTexto(),
	})
}
