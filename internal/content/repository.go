package content

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"onepercent-backend/internal/store"
)

// jsonColumns lists the JSON-typed columns per table; they are stored as
// text and must be decoded before case mapping.
var jsonColumns = map[string][]string{
	"hero_content":  {"stats"},
	"about_content": {"features", "stats", "certifications"},
}

// Repository assembles the aggregate website content document from the
// individual section tables.
type Repository struct {
	store *store.Store
}

func NewRepository(s *store.Store) *Repository {
	return &Repository{store: s}
}

// Get reads the five singleton sections and the two ordered collections
// concurrently and merges them into the content-tree shape the UI consumes.
// Any failed read fails the whole operation.
func (r *Repository) Get(ctx context.Context) (map[string]any, error) {
	var (
		hero, about, servicesMeta, testimonialsMeta, theme map[string]any
		services, testimonials                             []map[string]any
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { hero, err = r.singleton(gctx, "hero_content"); return })
	g.Go(func() (err error) { about, err = r.singleton(gctx, "about_content"); return })
	g.Go(func() (err error) { servicesMeta, err = r.singleton(gctx, "services_content"); return })
	g.Go(func() (err error) { testimonialsMeta, err = r.singleton(gctx, "testimonials_content"); return })
	g.Go(func() (err error) { theme, err = r.singleton(gctx, "theme_settings"); return })
	g.Go(func() (err error) { services, err = r.collection(gctx, "services"); return })
	g.Go(func() (err error) { testimonials, err = r.collection(gctx, "testimonials"); return })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch content: %w", err)
	}

	return map[string]any{
		"hero":         ToContentTree(hero),
		"about":        ToContentTree(about),
		"services":     mergeSection(servicesMeta, "services", services),
		"testimonials": mergeSection(testimonialsMeta, "testimonials", testimonials),
		"theme":        ToContentTree(theme),
	}, nil
}

// Theme reads only the theme_settings singleton, in content-tree form.
func (r *Repository) Theme(ctx context.Context) (map[string]any, error) {
	theme, err := r.singleton(ctx, "theme_settings")
	if err != nil {
		return nil, fmt.Errorf("fetch theme: %w", err)
	}
	tree, _ := ToContentTree(theme).(map[string]any)
	return tree, nil
}

func (r *Repository) singleton(ctx context.Context, table string) (map[string]any, error) {
	row, err := store.QueryRow(ctx, r.store.DB, "SELECT * FROM "+table+" LIMIT 1")
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	store.DecodeJSONFields(row, jsonColumns[table])
	return row, nil
}

func (r *Repository) collection(ctx context.Context, table string) ([]map[string]any, error) {
	rows, err := store.QueryRows(ctx, r.store.DB, `SELECT * FROM `+table+` ORDER BY "order" ASC`)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	return rows, nil
}

// mergeSection maps the metadata singleton and nests the mapped collection
// under the section's own key, e.g. content.services.services.
func mergeSection(meta map[string]any, key string, items []map[string]any) map[string]any {
	merged, _ := ToContentTree(meta).(map[string]any)
	if merged == nil {
		merged = map[string]any{}
	}
	mapped := make([]any, len(items))
	for i, item := range items {
		mapped[i] = ToContentTree(item)
	}
	merged[key] = mapped
	return merged
}
