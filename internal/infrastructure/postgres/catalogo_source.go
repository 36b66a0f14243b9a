package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invorya/inventario-scan/internal/domain/entity"
	"github.com/invorya/inventario-scan/internal/domain/repository"
)

var _ repository.CatalogoSource = (*CatalogoSource)(nil)

// CatalogoSource lee el catálogo desde la tabla productos. Solo lectura:
// las filas las administra el proceso externo de gestión de catálogo.
type CatalogoSource struct {
	pool *pgxpool.Pool
}

// NewCatalogoSource construye el adaptador con el pool.
func NewCatalogoSource(pool *pgxpool.Pool) *CatalogoSource {
	return &CatalogoSource{pool: pool}
}

// LoadAll devuelve todos los productos en el orden de carga original.
func (s *CatalogoSource) LoadAll(ctx context.Context) ([]entity.Producto, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT codigo_barras, detalle, precio, es_inventariable
		FROM productos ORDER BY orden, codigo_barras`)
	if err != nil {
		return nil, fmt.Errorf("cargar productos: %w", err)
	}
	defer rows.Close()

	var productos []entity.Producto
	for rows.Next() {
		var p entity.Producto
		if err := rows.Scan(&p.CodigoBarras, &p.Detalle, &p.Precio, &p.Inventariable); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		productos = append(productos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar productos: %w", err)
	}
	return productos, nil
}
