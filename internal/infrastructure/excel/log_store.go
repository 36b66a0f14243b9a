package excel

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/invorya/inventario-scan/internal/domain/entity"
	"github.com/invorya/inventario-scan/internal/domain/repository"
)

var _ repository.LogStore = (*LogStore)(nil)

// LogStore persiste el log de movimientos en la hoja movimientos.
// El contrato de SaveAll exige recibir todos los registros previos intactos y
// en orden; esta capa solo reescribe lo que el motor le entrega.
type LogStore struct {
	wb *Workbook
}

// NewLogStore construye el adaptador sobre el workbook.
func NewLogStore(wb *Workbook) *LogStore {
	return &LogStore{wb: wb}
}

// LoadAll devuelve el log completo en el orden de la hoja.
func (s *LogStore) LoadAll(ctx context.Context) ([]entity.Movimiento, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	filas, err := s.wb.leerFilas(HojaMovimientos)
	if err != nil {
		return nil, err
	}
	registros := make([]entity.Movimiento, 0, len(filas))
	for i, fila := range filas {
		fecha, err := time.ParseInLocation(entity.FormatoFechaHora, strings.TrimSpace(celda(fila, 0)), time.Local)
		if err != nil {
			return nil, fmt.Errorf("hoja %s fila %d: fecha %q: %w", HojaMovimientos, i+2, celda(fila, 0), err)
		}
		cantidad, err := strconv.Atoi(strings.TrimSpace(celda(fila, 3)))
		if err != nil {
			return nil, fmt.Errorf("hoja %s fila %d: cantidad %q no es un entero", HojaMovimientos, i+2, celda(fila, 3))
		}
		registros = append(registros, entity.Movimiento{
			FechaHora:     fecha,
			CodigoBarras:  celda(fila, 1),
			Tipo:          celda(fila, 2),
			Cantidad:      cantidad,
			Bodega:        celda(fila, 4),
			Usuario:       celda(fila, 5),
			Observaciones: celda(fila, 6),
		})
	}
	return registros, nil
}

// SaveAll reescribe la hoja completa del log.
func (s *LogStore) SaveAll(ctx context.Context, registros []entity.Movimiento) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	datos := make([][]interface{}, 0, len(registros))
	for _, m := range registros {
		datos = append(datos, []interface{}{
			m.FechaHoraTexto(),
			m.CodigoBarras,
			m.Tipo,
			m.Cantidad,
			m.Bodega,
			m.Usuario,
			m.Observaciones,
		})
	}
	return s.wb.reescribirHoja(HojaMovimientos, encabezadoMovimientos, datos)
}
