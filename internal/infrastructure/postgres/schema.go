package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema DDL del modelo: catálogo, libro mayor y tabla de saldos derivada.
// product_balances lleva unique(product_id, location_id); las filas en cero
// no se borran nunca (acumulador idempotente).
const schema = `
CREATE TABLE IF NOT EXISTS products (
	id          VARCHAR(50) PRIMARY KEY,
	name        VARCHAR(100) NOT NULL,
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS locations (
	id          VARCHAR(50) PRIMARY KEY,
	name        VARCHAR(100) NOT NULL,
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS product_movements (
	id            VARCHAR(50) PRIMARY KEY,
	product_id    VARCHAR(50) NOT NULL REFERENCES products(id),
	from_location VARCHAR(50) REFERENCES locations(id),
	to_location   VARCHAR(50) REFERENCES locations(id),
	qty           BIGINT NOT NULL CHECK (qty > 0),
	ts            TIMESTAMPTZ NOT NULL DEFAULT now(),
	CHECK (from_location IS NOT NULL OR to_location IS NOT NULL)
);

CREATE INDEX IF NOT EXISTS idx_movements_product ON product_movements (product_id);
CREATE INDEX IF NOT EXISTS idx_movements_from    ON product_movements (from_location);
CREATE INDEX IF NOT EXISTS idx_movements_to      ON product_movements (to_location);

CREATE TABLE IF NOT EXISTS product_balances (
	product_id   VARCHAR(50) NOT NULL REFERENCES products(id),
	location_id  VARCHAR(50) NOT NULL REFERENCES locations(id),
	balance      BIGINT NOT NULL,
	last_updated TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (product_id, location_id)
);
`

// Migrate crea las tablas si no existen (equivalente al create_all del
// arranque; para cambios de esquema posteriores se usan migraciones SQL).
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("crear esquema: %w", err)
	}
	return nil
}
