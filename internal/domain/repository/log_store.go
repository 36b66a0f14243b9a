package repository

import (
	"context"

	"github.com/invorya/inventario-scan/internal/domain/entity"
)

// LogStore define el puerto de persistencia del log de movimientos.
// SaveAll reemplaza el log completo; quien llama debe pasar todos los registros
// previos sin alterar, en su orden original, con el nuevo registro al final.
type LogStore interface {
	LoadAll(ctx context.Context) ([]entity.Movimiento, error)
	SaveAll(ctx context.Context, registros []entity.Movimiento) error
}
