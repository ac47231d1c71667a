package postgres

import (
	"context"
	"fmt"
)

// schema crea las tablas si no existen. Es idempotente y se ejecuta al arrancar.
const schema = `
CREATE TABLE IF NOT EXISTS stores (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	location   TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL CHECK (role IN ('admin', 'manager', 'supplier')),
	store_id      UUID REFERENCES stores(id),
	supplier_name TEXT NOT NULL DEFAULT '',
	contact_email TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS products (
	id          UUID PRIMARY KEY,
	name        TEXT NOT NULL,
	sku         TEXT NOT NULL UNIQUE,
	category    TEXT NOT NULL DEFAULT '',
	size        TEXT NOT NULL DEFAULT '',
	color       TEXT NOT NULL DEFAULT '',
	price       NUMERIC(12,2),
	cost_price  NUMERIC(12,2),
	image_url   TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS inventory (
	id                  UUID PRIMARY KEY,
	store_id            UUID NOT NULL REFERENCES stores(id),
	product_id          UUID NOT NULL REFERENCES products(id),
	quantity            INT NOT NULL DEFAULT 0 CHECK (quantity >= 0),
	low_stock_threshold INT NOT NULL DEFAULT 10 CHECK (low_stock_threshold >= 0),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (store_id, product_id)
);

CREATE TABLE IF NOT EXISTS sales (
	id           UUID PRIMARY KEY,
	inventory_id UUID NOT NULL REFERENCES inventory(id),
	store_id     UUID NOT NULL REFERENCES stores(id),
	product_id   UUID NOT NULL REFERENCES products(id),
	quantity     INT NOT NULL CHECK (quantity > 0),
	unit_price   NUMERIC(12,2) NOT NULL,
	total_amount NUMERIC(14,2) NOT NULL,
	sold_by      UUID,
	sold_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_sales_sold_at ON sales (sold_at);

CREATE TABLE IF NOT EXISTS restock_requests (
	id                 UUID PRIMARY KEY,
	inventory_id       UUID NOT NULL REFERENCES inventory(id),
	store_id           UUID NOT NULL REFERENCES stores(id),
	product_id         UUID NOT NULL REFERENCES products(id),
	quantity_requested INT NOT NULL CHECK (quantity_requested > 0),
	status             TEXT NOT NULL DEFAULT 'pending'
	                   CHECK (status IN ('pending', 'approved', 'rejected', 'shipped')),
	manager_id         UUID NOT NULL,
	supplier_id        UUID,
	notes              TEXT NOT NULL DEFAULT '',
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_restock_store  ON restock_requests (store_id);
CREATE INDEX IF NOT EXISTS idx_restock_status ON restock_requests (status);

CREATE TABLE IF NOT EXISTS shipments (
	id                 UUID PRIMARY KEY,
	restock_request_id UUID NOT NULL UNIQUE REFERENCES restock_requests(id),
	status             TEXT NOT NULL DEFAULT 'preparing',
	tracking_info      TEXT NOT NULL DEFAULT '',
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Migrate aplica el esquema.
func Migrate(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
