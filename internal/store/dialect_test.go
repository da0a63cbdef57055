package store

import (
	"errors"
	"testing"
)

func TestNewDialect(t *testing.T) {
	if d := NewDialect("sqlite"); d.Name() != "sqlite" || d.DriverName() != "sqlite" {
		t.Errorf("unexpected sqlite dialect: %s/%s", d.Name(), d.DriverName())
	}
	if d := NewDialect("postgres"); d.Name() != "postgres" || d.DriverName() != "pgx" {
		t.Errorf("unexpected postgres dialect: %s/%s", d.Name(), d.DriverName())
	}
	// Unknown drivers default to postgres.
	if d := NewDialect(""); d.Name() != "postgres" {
		t.Errorf("expected postgres default, got %s", d.Name())
	}
}

func TestParamBuilders(t *testing.T) {
	pg := NewDialect("postgres").NewParamBuilder()
	if p := pg.Add("a"); p != "$1" {
		t.Errorf("expected $1, got %s", p)
	}
	if p := pg.Add("b"); p != "$2" {
		t.Errorf("expected $2, got %s", p)
	}
	if pg.Count() != 2 || len(pg.Params()) != 2 {
		t.Errorf("expected 2 params, got %d/%d", pg.Count(), len(pg.Params()))
	}

	sq := NewDialect("sqlite").NewParamBuilder()
	if p := sq.Add("a"); p != "?1" {
		t.Errorf("expected ?1, got %s", p)
	}
	if p := sq.Add("b"); p != "?2" {
		t.Errorf("expected ?2, got %s", p)
	}
}

func TestPlaceholder(t *testing.T) {
	if p := NewDialect("postgres").Placeholder(3); p != "$3" {
		t.Errorf("expected $3, got %s", p)
	}
	if p := NewDialect("sqlite").Placeholder(3); p != "?3" {
		t.Errorf("expected ?3, got %s", p)
	}
}

func TestMapError_SQLiteUniqueViolation(t *testing.T) {
	d := NewDialect("sqlite")

	err := d.MapError(errors.New("constraint failed: UNIQUE constraint failed: inquiries.id (1555)"))
	if !errors.Is(err, ErrUniqueViolation) {
		t.Errorf("expected unique violation sentinel, got %v", err)
	}

	plain := errors.New("no such table: missing")
	if got := d.MapError(plain); !errors.Is(got, plain) {
		t.Errorf("unrelated errors should pass through, got %v", got)
	}
	if d.MapError(nil) != nil {
		t.Error("nil should map to nil")
	}
}

func TestMapError_PostgresUniqueViolation(t *testing.T) {
	d := NewDialect("postgres")

	err := d.MapError(errors.New(`ERROR: duplicate key value violates unique constraint "inquiries_pkey" (SQLSTATE 23505)`))
	if !errors.Is(err, ErrUniqueViolation) {
		t.Errorf("expected unique violation sentinel, got %v", err)
	}
}
