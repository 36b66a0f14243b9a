// Package postgres implementa los puertos de persistencia sobre PostgreSQL
// conservando la semántica bulk del dominio: cada SaveAll reemplaza la tabla
// (o la porción de la bodega) dentro de una transacción.
package postgres

import (
	"context"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invorya/inventario-scan/pkg/config"
)

// NewPool crea un pool de conexiones PostgreSQL usando la configuración de la app.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// Registrar codec para NUMERIC/DECIMAL -> shopspring/decimal (todas las conexiones del pool).
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// EnsureSchema crea las tablas si no existen. La columna orden preserva el
// orden de inserción que exige el contrato bulk de los puertos.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS productos (
			codigo_barras    TEXT PRIMARY KEY,
			detalle          TEXT NOT NULL DEFAULT '',
			precio           NUMERIC NOT NULL DEFAULT 0,
			es_inventariable BOOLEAN NOT NULL DEFAULT FALSE,
			orden            INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS inventario (
			bodega        TEXT NOT NULL,
			codigo_barras TEXT NOT NULL,
			detalle       TEXT NOT NULL DEFAULT '',
			cantidad      INT NOT NULL CHECK (cantidad >= 0),
			orden         INT NOT NULL DEFAULT 0,
			PRIMARY KEY (bodega, codigo_barras)
		)`,
		`CREATE TABLE IF NOT EXISTS movimientos (
			id            UUID PRIMARY KEY,
			fecha_hora    TIMESTAMPTZ NOT NULL,
			codigo_barras TEXT NOT NULL,
			movimiento    TEXT NOT NULL,
			cantidad      INT NOT NULL CHECK (cantidad >= 1),
			bodega        TEXT NOT NULL,
			usuario       TEXT NOT NULL,
			observaciones TEXT NOT NULL DEFAULT '',
			orden         INT NOT NULL DEFAULT 0
		)`,
	}
	for _, stmt := range ddl {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("crear schema: %w", err)
		}
	}
	return nil
}
