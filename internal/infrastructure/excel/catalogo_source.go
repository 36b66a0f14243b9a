package excel

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/invorya/inventario-scan/internal/domain/entity"
	"github.com/invorya/inventario-scan/internal/domain/repository"
)

var _ repository.CatalogoSource = (*CatalogoSource)(nil)

// CatalogoSource lee el catálogo desde la hoja productos. Solo lectura:
// el catálogo lo mantiene un proceso externo sobre el mismo workbook.
type CatalogoSource struct {
	wb *Workbook
}

// NewCatalogoSource construye el adaptador sobre el workbook.
func NewCatalogoSource(wb *Workbook) *CatalogoSource {
	return &CatalogoSource{wb: wb}
}

// LoadAll devuelve todos los productos en el orden de la hoja.
func (s *CatalogoSource) LoadAll(ctx context.Context) ([]entity.Producto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	filas, err := s.wb.leerFilas(HojaProductos)
	if err != nil {
		return nil, err
	}
	productos := make([]entity.Producto, 0, len(filas))
	for _, fila := range filas {
		precio := decimal.Zero
		if t := strings.TrimSpace(celda(fila, 2)); t != "" {
			if p, err := decimal.NewFromString(t); err == nil {
				precio = p
			}
			// Precio ilegible se trata como ausente: no condiciona los movimientos.
		}
		productos = append(productos, entity.Producto{
			CodigoBarras:  celda(fila, 0),
			Detalle:       celda(fila, 1),
			Precio:        precio,
			Inventariable: parseInventariable(celda(fila, 3)),
		})
	}
	return productos, nil
}

// parseInventariable acepta las variantes que aparecen en las hojas reales.
func parseInventariable(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sí", "si", "true", "verdadero", "1", "x":
		return true
	}
	return false
}
