package postgres

import (
	"context"
	"fmt"
)

// DDL idempotente de las dos tablas del modelo AR. No es un sistema de
// migraciones: el esquema es fijo y la carga reconstruye los datos.
// La FK de invoices es diferida: la carga borra y reinserta customers dentro
// de la misma transacción, y la integridad se valida recién en el commit.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS customers (
	id            INTEGER PRIMARY KEY,
	name          TEXT NOT NULL UNIQUE,
	contact_name  TEXT,
	contact_phone TEXT,
	contact_email TEXT
);

CREATE TABLE IF NOT EXISTS invoices (
	id                 SERIAL PRIMARY KEY,
	invoice_number     TEXT NOT NULL UNIQUE,
	customer_id        INTEGER NOT NULL REFERENCES customers(id) DEFERRABLE INITIALLY DEFERRED,
	invoice_date       DATE NOT NULL,
	due_date           DATE NOT NULL,
	customer_po_number TEXT,
	bill_total         NUMERIC(18,2) NOT NULL,
	applied            NUMERIC(18,2) NOT NULL,
	status             TEXT,
	currency           TEXT,
	customer_terms     TEXT,
	terms_days         INTEGER,
	CONSTRAINT ck_invoices_bill_total_nonneg CHECK (bill_total >= 0),
	CONSTRAINT ck_invoices_applied_nonneg    CHECK (applied >= 0)
);`

// EnsureSchema crea las tablas si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("crear esquema: %w", err)
	}
	return nil
}
