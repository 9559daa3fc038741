package database

import (
	"context"
	"database/sql"
)

// EnsureSchema creates the tables if they do not exist. Idempotent, ran
// once at startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS users (
	id            BIGSERIAL PRIMARY KEY,
	first_name    TEXT NOT NULL,
	last_name     TEXT NOT NULL,
	email         TEXT NOT NULL,
	username      TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	phone_number  TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT 'SELLER_BUYER',
	city          TEXT,
	address       TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (lower(email));
CREATE UNIQUE INDEX IF NOT EXISTS users_username_key ON users (lower(username));

CREATE TABLE IF NOT EXISTS books (
	id          BIGSERIAL PRIMARY KEY,
	title       TEXT NOT NULL,
	author      TEXT NOT NULL,
	description TEXT,
	category    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS listings (
	id               BIGSERIAL PRIMARY KEY,
	book_id          BIGINT NOT NULL REFERENCES books(id),
	seller_id        BIGINT NOT NULL REFERENCES users(id),
	price            NUMERIC(8,2) NOT NULL CHECK (price >= 0),
	condition        TEXT CHECK (condition IN ('NEW','LIKE_NEW','GOOD','FAIR','POOR')),
	transaction_type TEXT NOT NULL CHECK (transaction_type IN ('SALE','TRADE')),
	payment_method   TEXT CHECK (payment_method IN ('CASH','CARD','PAYPAL','BANK_TRANSFER')),
	is_available     BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS approval_sales (
	id           BIGSERIAL PRIMARY KEY,
	listing_id   BIGINT NOT NULL REFERENCES listings(id),
	buyer_id     BIGINT NOT NULL REFERENCES users(id),
	submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
-- one live purchase request per listing
CREATE UNIQUE INDEX IF NOT EXISTS approval_sales_listing_key ON approval_sales (listing_id);

CREATE TABLE IF NOT EXISTS trading_books (
	id               BIGSERIAL PRIMARY KEY,
	listing_id       BIGINT NOT NULL REFERENCES listings(id),
	book_id          BIGINT NOT NULL REFERENCES books(id),
	title            TEXT NOT NULL,
	author           TEXT NOT NULL,
	description      TEXT,
	category         TEXT NOT NULL,
	price            NUMERIC(8,2) NOT NULL,
	condition        TEXT,
	transaction_type TEXT NOT NULL,
	payment_method   TEXT,
	buyer_id         BIGINT NOT NULL REFERENCES users(id),
	seller_id        BIGINT NOT NULL REFERENCES users(id)
);
CREATE UNIQUE INDEX IF NOT EXISTS trading_books_listing_key ON trading_books (listing_id);

CREATE TABLE IF NOT EXISTS sales (
	id               BIGSERIAL PRIMARY KEY,
	book_id          BIGINT NOT NULL REFERENCES books(id),
	seller_id        BIGINT NOT NULL REFERENCES users(id),
	buyer_id         BIGINT NOT NULL REFERENCES users(id),
	price            NUMERIC(8,2) NOT NULL,
	condition        TEXT,
	transaction_type TEXT NOT NULL,
	payment_method   TEXT,
	sold_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`
	_, err := db.ExecContext(ctx, ddl)
	return err
}
