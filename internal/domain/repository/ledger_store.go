package repository

import (
	"context"

	"github.com/invorya/inventario-scan/internal/domain/entity"
)

// LedgerStore define el puerto de persistencia del inventario por bodega.
// SaveAll reemplaza el contenido completo del inventario de la bodega: el motor
// produce el estado final deseado, no un delta. Esto aísla al motor del costo
// físico del replace-on-write del backend y permite cambiar después a un store
// de actualización por fila (o con control optimista) sin tocar la lógica.
type LedgerStore interface {
	LoadAll(ctx context.Context, bodega string) ([]entity.Existencia, error)
	SaveAll(ctx context.Context, bodega string, filas []entity.Existencia) error
}
