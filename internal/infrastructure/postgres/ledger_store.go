package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invorya/inventario-scan/internal/domain/entity"
	"github.com/invorya/inventario-scan/internal/domain/repository"
)

var _ repository.LedgerStore = (*LedgerStore)(nil)

// LedgerStore persiste el inventario por bodega con semántica de reemplazo
// total: cada SaveAll borra las filas de la bodega e inserta el estado nuevo
// en una sola transacción.
type LedgerStore struct {
	pool *pgxpool.Pool
}

// NewLedgerStore construye el adaptador con el pool.
func NewLedgerStore(pool *pgxpool.Pool) *LedgerStore {
	return &LedgerStore{pool: pool}
}

// LoadAll devuelve el inventario de la bodega en el orden persistido.
func (s *LedgerStore) LoadAll(ctx context.Context, bodega string) ([]entity.Existencia, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT codigo_barras, detalle, cantidad
		FROM inventario WHERE bodega = $1 ORDER BY orden, codigo_barras`, bodega)
	if err != nil {
		return nil, fmt.Errorf("cargar inventario %s: %w", bodega, err)
	}
	defer rows.Close()

	var filas []entity.Existencia
	for rows.Next() {
		var e entity.Existencia
		if err := rows.Scan(&e.CodigoBarras, &e.Detalle, &e.Cantidad); err != nil {
			return nil, fmt.Errorf("scan existencia: %w", err)
		}
		filas = append(filas, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar inventario: %w", err)
	}
	return filas, nil
}

// SaveAll reemplaza el inventario completo de la bodega en una transacción.
func (s *LedgerStore) SaveAll(ctx context.Context, bodega string, filas []entity.Existencia) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM inventario WHERE bodega = $1`, bodega); err != nil {
		return fmt.Errorf("limpiar inventario %s: %w", bodega, err)
	}

	batch := &pgx.Batch{}
	for i, e := range filas {
		batch.Queue(`
			INSERT INTO inventario (bodega, codigo_barras, detalle, cantidad, orden)
			VALUES ($1, $2, $3, $4, $5)`,
			bodega, e.CodigoBarras, e.Detalle, e.Cantidad, i)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insertar inventario %s: %w", bodega, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
