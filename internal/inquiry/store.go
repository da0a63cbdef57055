package inquiry

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"onepercent-backend/internal/store"
)

// Store persists visitor inquiries. An inquiry is immutable except for its
// read flag; deletion is terminal.
type Store struct {
	store *store.Store
}

func NewStore(s *store.Store) *Store {
	return &Store{store: s}
}

// Create inserts a new unread inquiry with a server-assigned timestamp and
// returns the stored row.
func (s *Store) Create(ctx context.Context, name, email, goal, message string) (map[string]any, error) {
	id := uuid.New().String()

	pb := s.store.Dialect.NewParamBuilder()
	sqlStr := fmt.Sprintf(
		`INSERT INTO inquiries (id, name, email, goal, message) VALUES (%s, %s, %s, %s, %s)`,
		pb.Add(id), pb.Add(name), pb.Add(email), pb.Add(nullable(goal)), pb.Add(nullable(message)))
	if _, err := store.Exec(ctx, s.store.DB, sqlStr, pb.Params()...); err != nil {
		return nil, fmt.Errorf("insert inquiry: %w", err)
	}

	return s.get(ctx, id)
}

// List returns all inquiries, newest first.
func (s *Store) List(ctx context.Context) ([]map[string]any, error) {
	rows, err := store.QueryRows(ctx, s.store.DB,
		"SELECT * FROM inquiries ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	if s.store.Dialect.NeedsBoolFix() {
		store.NormalizeBooleans(rows, []string{"read"})
	}
	return rows, nil
}

// SetRead toggles the read flag and returns the updated row.
func (s *Store) SetRead(ctx context.Context, id string, read bool) (map[string]any, error) {
	pb := s.store.Dialect.NewParamBuilder()
	sqlStr := fmt.Sprintf(`UPDATE inquiries SET "read" = %s WHERE id = %s`, pb.Add(read), pb.Add(id))
	n, err := store.Exec(ctx, s.store.DB, sqlStr, pb.Params()...)
	if err != nil {
		return nil, fmt.Errorf("update inquiry: %w", err)
	}
	if n == 0 {
		return nil, store.ErrNotFound
	}
	return s.get(ctx, id)
}

// Delete removes an inquiry permanently.
func (s *Store) Delete(ctx context.Context, id string) error {
	pb := s.store.Dialect.NewParamBuilder()
	sqlStr := fmt.Sprintf("DELETE FROM inquiries WHERE id = %s", pb.Add(id))
	n, err := store.Exec(ctx, s.store.DB, sqlStr, pb.Params()...)
	if err != nil {
		return fmt.Errorf("delete inquiry: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// IsNotFound reports whether err is the missing-row sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

func (s *Store) get(ctx context.Context, id string) (map[string]any, error) {
	pb := s.store.Dialect.NewParamBuilder()
	row, err := store.QueryRow(ctx, s.store.DB,
		fmt.Sprintf("SELECT * FROM inquiries WHERE id = %s", pb.Add(id)), pb.Params()...)
	if err != nil {
		return nil, fmt.Errorf("fetch inquiry: %w", err)
	}
	if s.store.Dialect.NeedsBoolFix() {
		store.NormalizeBooleans([]map[string]any{row}, []string{"read"})
	}
	return row, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
