package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invorya/inventario-scan/internal/domain/entity"
	"github.com/invorya/inventario-scan/internal/domain/repository"
)

var _ repository.LogStore = (*LogStore)(nil)

// LogStore persiste el log de movimientos. Mantiene la semántica de reemplazo
// total del puerto (el motor entrega siempre el log completo); la columna
// orden conserva la cronología original.
type LogStore struct {
	pool *pgxpool.Pool
}

// NewLogStore construye el adaptador con el pool.
func NewLogStore(pool *pgxpool.Pool) *LogStore {
	return &LogStore{pool: pool}
}

// LoadAll devuelve el log completo en orden cronológico de inserción.
func (s *LogStore) LoadAll(ctx context.Context) ([]entity.Movimiento, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, fecha_hora, codigo_barras, movimiento, cantidad, bodega, usuario, observaciones
		FROM movimientos ORDER BY orden`)
	if err != nil {
		return nil, fmt.Errorf("cargar movimientos: %w", err)
	}
	defer rows.Close()

	var registros []entity.Movimiento
	for rows.Next() {
		var m entity.Movimiento
		if err := rows.Scan(&m.ID, &m.FechaHora, &m.CodigoBarras, &m.Tipo,
			&m.Cantidad, &m.Bodega, &m.Usuario, &m.Observaciones); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		registros = append(registros, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar movimientos: %w", err)
	}
	return registros, nil
}

// SaveAll reemplaza el log completo en una transacción.
func (s *LogStore) SaveAll(ctx context.Context, registros []entity.Movimiento) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM movimientos`); err != nil {
		return fmt.Errorf("limpiar movimientos: %w", err)
	}

	batch := &pgx.Batch{}
	for i, m := range registros {
		id := m.ID
		if id == "" {
			// Registros que vienen del backend de hojas no traen ID.
			id = uuid.New().String()
		}
		batch.Queue(`
			INSERT INTO movimientos (id, fecha_hora, codigo_barras, movimiento, cantidad, bodega, usuario, observaciones, orden)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			id, m.FechaHora, m.CodigoBarras, m.Tipo, m.Cantidad, m.Bodega, m.Usuario, m.Observaciones, i)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insertar movimientos: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
