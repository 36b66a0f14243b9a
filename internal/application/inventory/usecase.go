package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/invorya/inventario-scan/internal/domain"
	"github.com/invorya/inventario-scan/internal/domain/entity"
	"github.com/invorya/inventario-scan/internal/domain/repository"
	"github.com/invorya/inventario-scan/pkg/logger"
)

// RegistrarMovimientoUseCase es el motor de movimientos: resuelve el código
// escaneado contra el catálogo, aplica la aritmética de stock sobre el
// inventario de la bodega elegida por la política y anexa el registro al log.
//
// Persistencia en dos pasos sin transacción entre ambos: primero el inventario
// (estado completo de la bodega), después el log (todos los registros previos
// más el nuevo). Si falla el log después de escribir el inventario, el error se
// propaga y el movimiento no se reporta como exitoso.
type RegistrarMovimientoUseCase struct {
	catalogo repository.CatalogoSource
	ledger   repository.LedgerStore
	log      repository.LogStore
	politica PoliticaBodega
	now      func() time.Time
	lg       *logger.Logger
}

// NewRegistrarMovimientoUseCase construye el motor. politica nil usa la regla
// por defecto (terminado -> Bodega 2).
func NewRegistrarMovimientoUseCase(
	catalogo repository.CatalogoSource,
	ledger repository.LedgerStore,
	log repository.LogStore,
	politica PoliticaBodega,
	lg *logger.Logger,
) *RegistrarMovimientoUseCase {
	if politica == nil {
		politica = PoliticaPorDefecto
	}
	if lg == nil {
		lg = logger.Nop()
	}
	return &RegistrarMovimientoUseCase{
		catalogo: catalogo,
		ledger:   ledger,
		log:      log,
		politica: politica,
		now:      time.Now,
		lg:       lg,
	}
}

// MovimientoInput entrada para registrar un movimiento.
type MovimientoInput struct {
	CodigoBarras  string
	Tipo          string // Entrada | Salida
	Cantidad      int    // >= 1
	Terminado     bool   // producto terminado (decide bodega vía política)
	Usuario       string
	Observaciones string
}

// MovimientoResultado resultado de un movimiento aceptado.
type MovimientoResultado struct {
	CantidadNueva int
	Creado        bool   // la fila de inventario se creó con este movimiento
	Detalle       string // detalle del producto resuelto en el catálogo
	Registro      entity.Movimiento
}

// BuscarProducto resuelve un código de barras contra el catálogo.
// Comparación exacta de strings, sin normalización: mayúsculas, espacios y
// ceros a la izquierda son significativos. Si el catálogo tuviera el código
// duplicado gana la primera fila (orden de carga del backend).
func (uc *RegistrarMovimientoUseCase) BuscarProducto(ctx context.Context, codigo string) (*entity.Producto, error) {
	productos, err := uc.catalogo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: cargar catálogo: %v", domain.ErrPersistencia, err)
	}
	for i := range productos {
		if productos[i].CodigoBarras == codigo {
			return &productos[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// Registrar procesa un movimiento completo: validación, búsqueda en catálogo,
// aritmética de stock, reescritura del inventario y anexo al log.
// Ningún estado se muta si el código no existe o la entrada es inválida.
func (uc *RegistrarMovimientoUseCase) Registrar(ctx context.Context, in MovimientoInput) (*MovimientoResultado, error) {
	if err := validar(in); err != nil {
		return nil, err
	}

	producto, err := uc.BuscarProducto(ctx, in.CodigoBarras)
	if err != nil {
		return nil, err
	}

	bodega := uc.politica(in.Terminado)

	filas, err := uc.ledger.LoadAll(ctx, bodega)
	if err != nil {
		return nil, fmt.Errorf("%w: cargar inventario %s: %v", domain.ErrPersistencia, bodega, err)
	}

	idx := -1
	for i := range filas {
		if filas[i].CodigoBarras == in.CodigoBarras {
			idx = i
			break
		}
	}

	var cantidadNueva int
	creado := idx < 0
	if creado {
		// Fila nueva: una Salida sobre stock inexistente arranca en cero.
		if in.Tipo == entity.MovimientoEntrada {
			cantidadNueva = in.Cantidad
		}
		filas = append(filas, entity.Existencia{
			CodigoBarras: in.CodigoBarras,
			Detalle:      producto.Detalle,
			Cantidad:     cantidadNueva,
		})
	} else {
		if in.Tipo == entity.MovimientoEntrada {
			cantidadNueva = filas[idx].Cantidad + in.Cantidad
		} else {
			// Salida mayor al stock disponible: se trunca en cero, no se rechaza.
			cantidadNueva = filas[idx].Cantidad - in.Cantidad
			if cantidadNueva < 0 {
				cantidadNueva = 0
			}
		}
		filas[idx].Cantidad = cantidadNueva
	}

	if err := uc.ledger.SaveAll(ctx, bodega, filas); err != nil {
		return nil, fmt.Errorf("%w: guardar inventario %s: %v", domain.ErrPersistencia, bodega, err)
	}

	registro := entity.Movimiento{
		ID:            uuid.New().String(),
		FechaHora:     uc.now(),
		CodigoBarras:  in.CodigoBarras,
		Tipo:          in.Tipo,
		Cantidad:      in.Cantidad,
		Bodega:        bodega,
		Usuario:       in.Usuario,
		Observaciones: in.Observaciones,
	}

	registros, err := uc.log.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: cargar log de movimientos: %v", domain.ErrPersistencia, err)
	}
	registros = append(registros, registro)
	if err := uc.log.SaveAll(ctx, registros); err != nil {
		return nil, fmt.Errorf("%w: guardar log de movimientos: %v", domain.ErrPersistencia, err)
	}

	uc.lg.Info().
		Str("codigo", in.CodigoBarras).
		Str("tipo", in.Tipo).
		Str("bodega", bodega).
		Int("cantidad", in.Cantidad).
		Int("cantidad_nueva", cantidadNueva).
		Bool("creado", creado).
		Msg("movimiento registrado")

	return &MovimientoResultado{
		CantidadNueva: cantidadNueva,
		Creado:        creado,
		Detalle:       producto.Detalle,
		Registro:      registro,
	}, nil
}

// validar aplica las precondiciones del motor: no se confía en que la capa de
// captura haya rechazado cantidades no positivas ni usuario vacío.
func validar(in MovimientoInput) error {
	if in.CodigoBarras == "" {
		return fmt.Errorf("%w: código de barras vacío", domain.ErrInvalidInput)
	}
	if in.Cantidad < 1 {
		return fmt.Errorf("%w: cantidad debe ser >= 1", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Usuario) == "" {
		return fmt.Errorf("%w: usuario responsable requerido", domain.ErrInvalidInput)
	}
	if in.Tipo != entity.MovimientoEntrada && in.Tipo != entity.MovimientoSalida {
		return fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, in.Tipo)
	}
	return nil
}
