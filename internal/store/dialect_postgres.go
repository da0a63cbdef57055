package store

import (
	"fmt"
	"strings"
)

// PostgresDialect implements Dialect for PostgreSQL via pgx/stdlib.
type PostgresDialect struct{}

func (d *PostgresDialect) Name() string       { return "postgres" }
func (d *PostgresDialect) DriverName() string { return "pgx" }

func (d *PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index)
}

func (d *PostgresDialect) NewParamBuilder() ParamBuilder {
	return &pgParamBuilder{}
}

func (d *PostgresDialect) NowExpr() string { return "NOW()" }

func (d *PostgresDialect) NeedsBoolFix() bool { return false }

func (d *PostgresDialect) SchemaSQL() string {
	return pgSchemaSQL
}

func (d *PostgresDialect) MapError(err error) error {
	if err == nil {
		return nil
	}
	// With pgx/stdlib, the underlying error message includes the PG code
	errStr := err.Error()
	if strings.Contains(errStr, "23505") || strings.Contains(errStr, "unique constraint") || strings.Contains(errStr, "duplicate key") {
		return fmt.Errorf("%w: %w", ErrUniqueViolation, err)
	}
	return err
}

// --- PostgreSQL DDL ---
//
// Content row ids are TEXT rather than UUID: editors submit placeholder ids
// for new child rows and the upsert path must be able to probe for them
// without a cast error.

const pgSchemaSQL = `
CREATE TABLE IF NOT EXISTS hero_content (
    id               TEXT PRIMARY KEY,
    tagline          TEXT NOT NULL DEFAULT '',
    title            TEXT NOT NULL DEFAULT '',
    subtitle         TEXT NOT NULL DEFAULT '',
    button_text      TEXT NOT NULL DEFAULT '',
    background_image TEXT,
    stats            JSONB,
    updated_at       TIMESTAMPTZ DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS about_content (
    id             TEXT PRIMARY KEY,
    badge          TEXT NOT NULL DEFAULT '',
    title          TEXT NOT NULL DEFAULT '',
    description    TEXT NOT NULL DEFAULT '',
    paragraph1     TEXT NOT NULL DEFAULT '',
    paragraph2     TEXT NOT NULL DEFAULT '',
    features       JSONB DEFAULT '[]',
    stats          JSONB DEFAULT '{}',
    certifications JSONB DEFAULT '{}',
    image          TEXT,
    updated_at     TIMESTAMPTZ DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS services_content (
    id         TEXT PRIMARY KEY,
    badge      TEXT NOT NULL DEFAULT '',
    title      TEXT NOT NULL DEFAULT '',
    subtitle   TEXT NOT NULL DEFAULT '',
    updated_at TIMESTAMPTZ DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS services (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    icon        TEXT,
    "order"     INT NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_services_order ON services ("order");

CREATE TABLE IF NOT EXISTS testimonials_content (
    id         TEXT PRIMARY KEY,
    badge      TEXT NOT NULL DEFAULT '',
    title      TEXT NOT NULL DEFAULT '',
    subtitle   TEXT NOT NULL DEFAULT '',
    updated_at TIMESTAMPTZ DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS testimonials (
    id      TEXT PRIMARY KEY,
    name    TEXT NOT NULL DEFAULT '',
    result  TEXT NOT NULL DEFAULT '',
    quote   TEXT NOT NULL DEFAULT '',
    rating  INT NOT NULL DEFAULT 5,
    "order" INT NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_testimonials_order ON testimonials ("order");

CREATE TABLE IF NOT EXISTS theme_settings (
    id              TEXT PRIMARY KEY,
    primary_color   TEXT NOT NULL DEFAULT '',
    secondary_color TEXT,
    font_family     TEXT NOT NULL DEFAULT '',
    heading_font    TEXT,
    updated_at      TIMESTAMPTZ DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS inquiries (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    email      TEXT NOT NULL,
    goal       TEXT,
    message    TEXT,
    "read"     BOOLEAN NOT NULL DEFAULT false,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_inquiries_created ON inquiries (created_at DESC);

CREATE TABLE IF NOT EXISTS _users (
    id            TEXT PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    active        BOOLEAN DEFAULT true,
    created_at    TIMESTAMPTZ DEFAULT NOW(),
    updated_at    TIMESTAMPTZ DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS _refresh_tokens (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL REFERENCES _users(id) ON DELETE CASCADE,
    token      TEXT NOT NULL UNIQUE,
    expires_at TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_refresh_tokens_token ON _refresh_tokens(token);
CREATE INDEX IF NOT EXISTS idx_refresh_tokens_expires ON _refresh_tokens(expires_at);
`

// Compile-time check
var _ Dialect = (*PostgresDialect)(nil)
