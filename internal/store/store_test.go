package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"onepercent-backend/internal/config"
)

func memoryStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(context.Background(), config.DatabaseConfig{Driver: "sqlite", Name: ":memory:"})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestBootstrap_SeedsOnce(t *testing.T) {
	s := memoryStore(t)
	ctx := context.Background()

	if err := s.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	// A second run must not duplicate seed rows.
	if err := s.Bootstrap(ctx); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}

	for table, want := range map[string]int{
		"hero_content":         1,
		"about_content":        1,
		"services_content":     1,
		"services":             3,
		"testimonials_content": 1,
		"testimonials":         2,
		"theme_settings":       1,
		"_users":               1,
	} {
		var n int
		if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != want {
			t.Errorf("%s: expected %d rows, got %d", table, want, n)
		}
	}
}

func TestQueryHelpers(t *testing.T) {
	s := memoryStore(t)
	ctx := context.Background()
	if err := s.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	rows, err := QueryRows(ctx, s.DB, `SELECT id, title, "order" FROM services ORDER BY "order"`)
	if err != nil {
		t.Fatalf("query rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if _, ok := rows[0]["title"].(string); !ok {
		t.Errorf("expected string title, got %T", rows[0]["title"])
	}
	if _, ok := rows[0]["order"].(int64); !ok {
		t.Errorf("expected int64 order, got %T", rows[0]["order"])
	}

	row, err := QueryRow(ctx, s.DB, "SELECT * FROM hero_content LIMIT 1")
	if err != nil {
		t.Fatalf("query row: %v", err)
	}
	if _, ok := row["updated_at"].(time.Time); !ok {
		t.Errorf("expected timestamp normalized to time.Time, got %T", row["updated_at"])
	}

	_, err = QueryRow(ctx, s.DB, "SELECT * FROM inquiries")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on empty result, got %v", err)
	}

	pb := s.Dialect.NewParamBuilder()
	n, err := Exec(ctx, s.DB, "DELETE FROM services WHERE id = "+pb.Add("nope"), pb.Params()...)
	if err != nil {
		t.Fatalf("exec: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 rows affected, got %d", n)
	}
}

func TestQueryRows_TimestampTextPreservedInFreeText(t *testing.T) {
	s := memoryStore(t)
	ctx := context.Background()
	if err := s.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	pb := s.Dialect.NewParamBuilder()
	sqlStr := "INSERT INTO inquiries (id, name, email, message) VALUES (" +
		pb.Add("inq-1") + ", " + pb.Add("Jordan") + ", " + pb.Add("jordan@example.com") + ", " +
		pb.Add("2026-01-01 10:00:00") + ")"
	if _, err := Exec(ctx, s.DB, sqlStr, pb.Params()...); err != nil {
		t.Fatalf("insert: %v", err)
	}

	row, err := QueryRow(ctx, s.DB, "SELECT * FROM inquiries")
	if err != nil {
		t.Fatalf("query row: %v", err)
	}
	// Date-shaped free text must round-trip verbatim.
	if row["message"] != "2026-01-01 10:00:00" {
		t.Errorf("message mangled: %v (%T)", row["message"], row["message"])
	}
	if _, ok := row["created_at"].(time.Time); !ok {
		t.Errorf("created_at should still parse, got %T", row["created_at"])
	}
}

func TestNormalizeBooleans(t *testing.T) {
	rows := []map[string]any{
		{"read": int64(1), "name": "a"},
		{"read": int64(0), "name": "b"},
		{"read": true, "name": "c"},
	}
	NormalizeBooleans(rows, []string{"read"})

	if rows[0]["read"] != true || rows[1]["read"] != false {
		t.Errorf("integers not normalized: %v", rows)
	}
	if rows[2]["read"] != true {
		t.Errorf("existing bool mangled: %v", rows[2])
	}
	if rows[0]["name"] != "a" {
		t.Errorf("unlisted field touched: %v", rows[0])
	}
}

func TestJSONFieldCodec(t *testing.T) {
	row := map[string]any{
		"stats":    `{"clients": "50+"}`,
		"features": `[{"title": "A"}]`,
		"badge":    "About",
		"empty":    "",
	}
	DecodeJSONFields(row, []string{"stats", "features", "empty", "missing"})

	stats, ok := row["stats"].(map[string]any)
	if !ok || stats["clients"] != "50+" {
		t.Fatalf("stats not decoded: %v", row["stats"])
	}
	if _, ok := row["features"].([]any); !ok {
		t.Fatalf("features not decoded: %v", row["features"])
	}
	if row["badge"] != "About" {
		t.Errorf("unlisted field touched: %v", row["badge"])
	}

	if err := EncodeJSONFields(row, []string{"stats", "features"}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if row["stats"] != `{"clients":"50+"}` {
		t.Errorf("stats not re-encoded: %v", row["stats"])
	}
	if _, ok := row["features"].(string); !ok {
		t.Errorf("features not re-encoded: %T", row["features"])
	}
}

func TestDecodeJSONFields_InvalidJSONLeftAsText(t *testing.T) {
	row := map[string]any{"stats": "not json"}
	DecodeJSONFields(row, []string{"stats"})
	if row["stats"] != "not json" {
		t.Errorf("invalid JSON should stay text, got %v", row["stats"])
	}
}
