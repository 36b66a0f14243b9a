package excel

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/invorya/inventario-scan/internal/domain/entity"
	"github.com/invorya/inventario-scan/internal/domain/repository"
)

var _ repository.LedgerStore = (*LedgerStore)(nil)

// HojasPorBodega es el mapeo por defecto de bodega a hoja del workbook.
func HojasPorBodega() map[string]string {
	return map[string]string{
		entity.Bodega1: HojaBodega1,
		entity.Bodega2: HojaBodega2,
	}
}

// LedgerStore persiste el inventario por bodega, una hoja por bodega.
// SaveAll reescribe la hoja completa (encabezado + filas).
type LedgerStore struct {
	wb    *Workbook
	hojas map[string]string
}

// NewLedgerStore construye el adaptador. hojas nil usa el mapeo por defecto;
// una topología distinta de bodegas se expresa pasando otro mapeo.
func NewLedgerStore(wb *Workbook, hojas map[string]string) *LedgerStore {
	if hojas == nil {
		hojas = HojasPorBodega()
	}
	return &LedgerStore{wb: wb, hojas: hojas}
}

// LoadAll devuelve el inventario de la bodega en el orden de la hoja.
func (s *LedgerStore) LoadAll(ctx context.Context, bodega string) ([]entity.Existencia, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hoja, err := s.hoja(bodega)
	if err != nil {
		return nil, err
	}
	filas, err := s.wb.leerFilas(hoja)
	if err != nil {
		return nil, err
	}
	existencias := make([]entity.Existencia, 0, len(filas))
	for i, fila := range filas {
		cantidad, err := strconv.Atoi(strings.TrimSpace(celda(fila, 2)))
		if err != nil {
			return nil, fmt.Errorf("hoja %s fila %d: cantidad %q no es un entero", hoja, i+2, celda(fila, 2))
		}
		existencias = append(existencias, entity.Existencia{
			CodigoBarras: celda(fila, 0),
			Detalle:      celda(fila, 1),
			Cantidad:     cantidad,
		})
	}
	return existencias, nil
}

// SaveAll reemplaza el contenido completo del inventario de la bodega.
func (s *LedgerStore) SaveAll(ctx context.Context, bodega string, filas []entity.Existencia) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	hoja, err := s.hoja(bodega)
	if err != nil {
		return err
	}
	datos := make([][]interface{}, 0, len(filas))
	for _, e := range filas {
		datos = append(datos, []interface{}{e.CodigoBarras, e.Detalle, e.Cantidad})
	}
	return s.wb.reescribirHoja(hoja, encabezadoInventario, datos)
}

func (s *LedgerStore) hoja(bodega string) (string, error) {
	hoja, ok := s.hojas[bodega]
	if !ok {
		return "", fmt.Errorf("bodega desconocida: %q", bodega)
	}
	return hoja, nil
}
