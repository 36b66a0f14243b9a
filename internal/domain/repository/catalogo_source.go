package repository

import (
	"context"

	"github.com/invorya/inventario-scan/internal/domain/entity"
)

// CatalogoSource define el puerto de lectura del catálogo de productos.
// El backend real lee la tabla completa (semántica de hoja de cálculo);
// la búsqueda por código se hace en memoria sobre el resultado.
type CatalogoSource interface {
	LoadAll(ctx context.Context) ([]entity.Producto, error)
}
