package content

import (
	"context"
	"fmt"
	"testing"

	"onepercent-backend/internal/config"
	"onepercent-backend/internal/store"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()
	ctx := context.Background()
	s, err := store.New(ctx, config.DatabaseConfig{Driver: "sqlite", Name: ":memory:"})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(s.Close)
	if err := s.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	return s
}

func mustExec(t *testing.T, s *store.Store, sqlStr string, args ...any) {
	t.Helper()
	if _, err := store.Exec(context.Background(), s.DB, sqlStr, args...); err != nil {
		t.Fatalf("exec %q: %v", sqlStr, err)
	}
}

func countRows(t *testing.T, s *store.Store, table string) int {
	t.Helper()
	var n int
	if err := s.DB.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestRepository_Get(t *testing.T) {
	s := testStore(t)
	repo := NewRepository(s)

	tree, err := repo.Get(context.Background())
	if err != nil {
		t.Fatalf("get content: %v", err)
	}

	hero := tree["hero"].(map[string]any)
	if hero["title"] != "Transform Your Body. Elevate Your Mind." {
		t.Errorf("unexpected hero title: %v", hero["title"])
	}
	if hero["buttonText"] != "Book Your Free Consultation" {
		t.Errorf("expected camelCase buttonText, got keys: %v", hero)
	}
	stats, ok := hero["stats"].(map[string]any)
	if !ok {
		t.Fatalf("expected hero stats decoded to map, got %T", hero["stats"])
	}
	if stats["clients"] != "50+" {
		t.Errorf("unexpected hero stats: %v", stats)
	}

	about := tree["about"].(map[string]any)
	if _, ok := about["features"].([]any); !ok {
		t.Errorf("expected about features decoded to array, got %T", about["features"])
	}

	services := tree["services"].(map[string]any)
	if services["badge"] != "Services" {
		t.Errorf("unexpected services badge: %v", services["badge"])
	}
	items := services["services"].([]any)
	if len(items) != 3 {
		t.Fatalf("expected 3 services, got %d", len(items))
	}
	if first := items[0].(map[string]any); first["title"] != "1-on-1 Coaching" {
		t.Errorf("unexpected first service: %v", first)
	}

	testimonials := tree["testimonials"].(map[string]any)
	if got := len(testimonials["testimonials"].([]any)); got != 2 {
		t.Errorf("expected 2 testimonials, got %d", got)
	}

	theme := tree["theme"].(map[string]any)
	if theme["primaryColor"] != "#3b82f6" {
		t.Errorf("unexpected theme: %v", theme)
	}
}

func TestRepository_Get_CollectionOrdering(t *testing.T) {
	s := testStore(t)
	mustExec(t, s, "DELETE FROM services")

	// Insert out of order; reads must sort by the order column.
	for i, svc := range []struct {
		title string
		order int
	}{
		{"Third", 2},
		{"First", 0},
		{"Second", 1},
	} {
		pb := s.Dialect.NewParamBuilder()
		mustExec(t, s, fmt.Sprintf(
			`INSERT INTO services (id, title, "order") VALUES (%s, %s, %s)`,
			pb.Add(fmt.Sprintf("svc-%d", i)), pb.Add(svc.title), pb.Add(svc.order)),
			pb.Params()...)
	}

	tree, err := NewRepository(s).Get(context.Background())
	if err != nil {
		t.Fatalf("get content: %v", err)
	}
	items := tree["services"].(map[string]any)["services"].([]any)
	var titles []string
	for _, it := range items {
		titles = append(titles, it.(map[string]any)["title"].(string))
	}
	want := []string{"First", "Second", "Third"}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, titles)
		}
	}
}

func TestRepository_Get_FailedReadFailsWhole(t *testing.T) {
	s := testStore(t)
	mustExec(t, s, "DROP TABLE services")

	tree, err := NewRepository(s).Get(context.Background())
	if err == nil {
		t.Fatal("expected error when one section read fails")
	}
	// No partial document on failure.
	if tree != nil {
		t.Errorf("expected nil document, got %v", tree)
	}
}

func TestRepository_Theme(t *testing.T) {
	s := testStore(t)

	theme, err := NewRepository(s).Theme(context.Background())
	if err != nil {
		t.Fatalf("get theme: %v", err)
	}
	if theme["primaryColor"] != "#3b82f6" || theme["fontFamily"] != "Inter" {
		t.Errorf("unexpected theme: %v", theme)
	}
}
