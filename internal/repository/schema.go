package repository

import (
	"context"
	"database/sql"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS orders (
		id             text PRIMARY KEY,
		total          bigint NOT NULL,
		status         text NOT NULL DEFAULT 'pending',
		payment_status text NOT NULL DEFAULT 'pending',
		customer       jsonb NOT NULL DEFAULT '{}'::jsonb,
		payment_id     text,
		created_at     timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id         bigserial PRIMARY KEY,
		order_id   text NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id text NOT NULL,
		title      text NOT NULL,
		price      bigint NOT NULL,
		qty        integer NOT NULL,
		seller_id  text NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id                      uuid PRIMARY KEY,
		full_name               text,
		email                   text,
		phone                   text,
		city                    text,
		role                    text NOT NULL DEFAULT 'buyer',
		is_verified             boolean NOT NULL DEFAULT false,
		verification_code       text,
		verification_expires_at timestamptz,
		created_at              timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_idx
		ON users (lower(email)) WHERE email IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_phone_idx
		ON users (phone) WHERE phone IS NOT NULL`,
	`CREATE TABLE IF NOT EXISTS sellers (
		id           uuid PRIMARY KEY,
		name         text NOT NULL,
		contact_name text,
		email        text,
		phone        text,
		city         text,
		description  text,
		instagram    text,
		website      text,
		status       text NOT NULL DEFAULT 'pending',
		created_at   timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS orders_created_at_idx ON orders (created_at DESC)`,
}

// EnsureSchema creates the tables and indexes the service relies on.
// Concurrent order creation leans on the orders primary key and the
// partial unique indexes on users; they must exist before serving.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
