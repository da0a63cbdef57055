package content

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"

	"onepercent-backend/internal/store"
	"onepercent-backend/internal/web"
)

// singletonTables maps the sections persisted as a single row update.
var singletonTables = map[string]string{
	"hero":  "hero_content",
	"about": "about_content",
	"theme": "theme_settings",
}

// collectionSections maps the sections that carry an embedded child array:
// the metadata singleton and the per-row table.
var collectionSections = map[string]struct{ meta, child string }{
	"services":     {meta: "services_content", child: "services"},
	"testimonials": {meta: "testimonials_content", child: "testimonials"},
}

var identPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// Writer persists section-scoped partial updates.
type Writer struct {
	store *store.Store
}

func NewWriter(s *store.Store) *Writer {
	return &Writer{store: s}
}

// SaveSection converts data to storage form, dispatches on the section name,
// and returns the persisted value back in content-tree form.
func (w *Writer) SaveSection(ctx context.Context, section string, data map[string]any) (map[string]any, error) {
	stored, _ := ToStorage(data).(map[string]any)
	if stored == nil {
		return nil, web.ValidationError([]web.ErrorDetail{{Field: "data", Message: "data must be an object"}})
	}

	if table, ok := singletonTables[section]; ok {
		return w.saveSingleton(ctx, section, table, stored)
	}
	if tables, ok := collectionSections[section]; ok {
		return w.saveCollection(ctx, section, tables.meta, tables.child, stored)
	}
	return nil, web.InvalidSectionError(section)
}

// DeleteItem removes a single child row from a collection section. Saves are
// upsert-only (rows absent from a resubmitted array are kept), so removal is
// an explicit operation.
func (w *Writer) DeleteItem(ctx context.Context, section, id string) error {
	tables, ok := collectionSections[section]
	if !ok {
		return web.InvalidSectionError(section)
	}
	pb := w.store.Dialect.NewParamBuilder()
	sqlStr := fmt.Sprintf("DELETE FROM %s WHERE id = %s", tables.child, pb.Add(id))
	n, err := store.Exec(ctx, w.store.DB, sqlStr, pb.Params()...)
	if err != nil {
		return fmt.Errorf("delete %s row: %w", section, err)
	}
	if n == 0 {
		return web.NotFoundError(section+" item", id)
	}
	return nil
}

func (w *Writer) saveSingleton(ctx context.Context, section, table string, stored map[string]any) (map[string]any, error) {
	id, _ := stored["id"].(string)
	if id == "" {
		return nil, web.ValidationError([]web.ErrorDetail{{Field: "id", Message: "id is required"}})
	}

	if err := w.updateByID(ctx, section, table, id, stored); err != nil {
		return nil, err
	}

	row, err := store.QueryRow(ctx, w.store.DB,
		fmt.Sprintf("SELECT * FROM %s WHERE id = %s", table, w.store.Dialect.Placeholder(1)), id)
	if err != nil {
		return nil, fmt.Errorf("reload %s: %w", table, err)
	}
	store.DecodeJSONFields(row, jsonColumns[table])
	result, _ := ToContentTree(row).(map[string]any)
	return result, nil
}

// saveCollection splits the embedded array from the metadata fields, updates
// the metadata singleton, then upserts each row. Validation rejects the
// request before any storage access; after that the upserts are sequential
// and non-transactional: a failing row does not roll back the ones that
// succeeded, and the first error is reported after the loop.
func (w *Writer) saveCollection(ctx context.Context, section, metaTable, childTable string, stored map[string]any) (map[string]any, error) {
	items, _ := stored[section].([]any)
	delete(stored, section)

	metaID, _ := stored["id"].(string)
	if metaID == "" {
		return nil, web.ValidationError([]web.ErrorDetail{{Field: "id", Message: "id is required"}})
	}

	var firstErr error
	if err := w.updateByID(ctx, section, metaTable, metaID, stored); err != nil {
		firstErr = err
	}

	saved := make([]any, 0, len(items))
	for _, el := range items {
		row, ok := el.(map[string]any)
		if !ok {
			continue
		}
		finalID, err := w.upsertRow(ctx, childTable, row)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("upsert %s row: %w", section, err)
			}
			continue
		}
		row["id"] = finalID
		saved = append(saved, row)
	}
	if firstErr != nil {
		return nil, firstErr
	}

	stored[section] = saved
	result, _ := ToContentTree(stored).(map[string]any)
	return result, nil
}

// updateByID updates every submitted field on the row with the given id and
// refreshes updated_at. Fails with NotFound when no row matches.
func (w *Writer) updateByID(ctx context.Context, section, table, id string, stored map[string]any) error {
	fields := make(map[string]any, len(stored))
	for k, v := range stored {
		if k == "id" {
			continue
		}
		fields[k] = v
	}
	if err := store.EncodeJSONFields(fields, jsonColumns[table]); err != nil {
		return err
	}

	cols, err := sortedColumns(fields)
	if err != nil {
		return err
	}

	pb := w.store.Dialect.NewParamBuilder()
	sets := make([]string, 0, len(cols)+1)
	for _, col := range cols {
		sets = append(sets, fmt.Sprintf("%s = %s", quoteIdent(col), pb.Add(fields[col])))
	}
	sets = append(sets, "updated_at = "+w.store.Dialect.NowExpr())

	sqlStr := fmt.Sprintf("UPDATE %s SET %s WHERE id = %s",
		table, strings.Join(sets, ", "), pb.Add(id))
	n, err := store.Exec(ctx, w.store.DB, sqlStr, pb.Params()...)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, store.MapError(w.store.Dialect, err))
	}
	if n == 0 {
		return web.NotFoundError(section, id)
	}
	return nil
}

// upsertRow updates the child row by id, inserting with a fresh identifier
// when the id is empty or unrecognized (editors submit placeholder ids for
// newly added rows). Returns the row's final id.
func (w *Writer) upsertRow(ctx context.Context, table string, row map[string]any) (string, error) {
	fields := make(map[string]any, len(row))
	for k, v := range row {
		if k == "id" {
			continue
		}
		fields[k] = v
	}
	cols, err := sortedColumns(fields)
	if err != nil {
		return "", err
	}

	id, _ := row["id"].(string)
	if id != "" {
		pb := w.store.Dialect.NewParamBuilder()
		sets := make([]string, 0, len(cols))
		for _, col := range cols {
			sets = append(sets, fmt.Sprintf("%s = %s", quoteIdent(col), pb.Add(fields[col])))
		}
		sqlStr := fmt.Sprintf("UPDATE %s SET %s WHERE id = %s",
			table, strings.Join(sets, ", "), pb.Add(id))
		n, err := store.Exec(ctx, w.store.DB, sqlStr, pb.Params()...)
		if err != nil {
			return "", store.MapError(w.store.Dialect, err)
		}
		if n > 0 {
			return id, nil
		}
	}

	newID := uuid.New().String()
	pb := w.store.Dialect.NewParamBuilder()
	colNames := []string{"id"}
	placeholders := []string{pb.Add(newID)}
	for _, col := range cols {
		colNames = append(colNames, quoteIdent(col))
		placeholders = append(placeholders, pb.Add(fields[col]))
	}
	sqlStr := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(colNames, ", "), strings.Join(placeholders, ", "))
	if _, err := store.Exec(ctx, w.store.DB, sqlStr, pb.Params()...); err != nil {
		return "", store.MapError(w.store.Dialect, err)
	}
	return newID, nil
}

// sortedColumns validates field names as safe identifiers and returns them
// in deterministic order. Storage-form keys are always lowercase.
func sortedColumns(fields map[string]any) ([]string, error) {
	cols := make([]string, 0, len(fields))
	for col := range fields {
		if !identPattern.MatchString(col) {
			return nil, web.ValidationError([]web.ErrorDetail{{Field: col, Message: "invalid field name"}})
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols, nil
}

func quoteIdent(name string) string {
	return `"` + name + `"`
}
