package store

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Bootstrap creates the application tables and seeds the rows the rest of
// the system assumes exist: the five singleton content sections, a starter
// set of services and testimonials, and an admin user. Seeding only runs
// against empty tables, so restarts are safe.
func (s *Store) Bootstrap(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, s.Dialect.SchemaSQL()); err != nil {
		return fmt.Errorf("bootstrap schema: %w", err)
	}
	if err := s.seedContent(ctx); err != nil {
		return fmt.Errorf("seed content: %w", err)
	}
	if err := s.seedAdminUser(ctx); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	return nil
}

func (s *Store) tableEmpty(ctx context.Context, table string) (bool, error) {
	var count int
	err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// seedContent inserts default site copy. Each singleton section must have
// exactly one row; the write path only ever updates these rows in place.
func (s *Store) seedContent(ctx context.Context) error {
	type seed struct {
		table   string
		columns []string
		rows    [][]any
	}

	seeds := []seed{
		{
			table:   "hero_content",
			columns: []string{"id", "tagline", "title", "subtitle", "button_text", "stats"},
			rows: [][]any{{
				uuid.New().String(),
				"Certified Personal Trainer",
				"Transform Your Body. Elevate Your Mind.",
				"Build strength, confidence, and discipline with personalized training designed for people who are ready to level up.",
				"Book Your Free Consultation",
				`{"clients": "50+", "years": "5+", "committed": "100%"}`,
			}},
		},
		{
			table:   "about_content",
			columns: []string{"id", "badge", "title", "description", "paragraph1", "paragraph2", "features", "stats", "certifications"},
			rows: [][]any{{
				uuid.New().String(),
				"About Me",
				"Your Partner in Transformation",
				"Helping you become one percent better every day.",
				"I believe lasting change comes from small, consistent improvements compounded over time.",
				"Every program is built around your goals, your schedule, and your starting point.",
				`[{"title": "Personalized Programs", "description": "Training built around your goals"}, {"title": "Nutrition Guidance", "description": "Sustainable eating habits, not crash diets"}]`,
				`{"years": "5+", "clients": "50+", "results": "100%"}`,
				`{"certification": "NASM Certified Personal Trainer", "specialization": "Strength & Conditioning"}`,
			}},
		},
		{
			table:   "services_content",
			columns: []string{"id", "badge", "title", "subtitle"},
			rows: [][]any{{
				uuid.New().String(),
				"Services",
				"Training That Fits Your Life",
				"Choose the coaching style that works for you.",
			}},
		},
		{
			table:   "services",
			columns: []string{"id", "title", "description", "icon", `"order"`},
			rows: [][]any{
				{uuid.New().String(), "1-on-1 Coaching", "In-person personal training sessions tailored to you.", "dumbbell", 0},
				{uuid.New().String(), "Online Training", "Remote programming with weekly check-ins.", "laptop", 1},
				{uuid.New().String(), "Custom Meal Plans", "Nutrition plans that match your training.", "utensils", 2},
			},
		},
		{
			table:   "testimonials_content",
			columns: []string{"id", "badge", "title", "subtitle"},
			rows: [][]any{{
				uuid.New().String(),
				"Success Stories",
				"Real People. Real Results.",
				"Hear from clients who committed to the process.",
			}},
		},
		{
			table:   "testimonials",
			columns: []string{"id", "name", "result", "quote", "rating", `"order"`},
			rows: [][]any{
				{uuid.New().String(), "Marcus T.", "Lost 30 lbs in 6 months", "The accountability changed everything for me.", 5, 0},
				{uuid.New().String(), "David R.", "Gained 12 lbs of muscle", "Best investment I've made in myself.", 5, 1},
			},
		},
		{
			table:   "theme_settings",
			columns: []string{"id", "primary_color", "font_family"},
			rows: [][]any{{
				uuid.New().String(),
				"#3b82f6",
				"Inter",
			}},
		},
	}

	for _, sd := range seeds {
		empty, err := s.tableEmpty(ctx, sd.table)
		if err != nil {
			return fmt.Errorf("count %s: %w", sd.table, err)
		}
		if !empty {
			continue
		}
		for _, row := range sd.rows {
			pb := s.Dialect.NewParamBuilder()
			placeholders := make([]string, len(row))
			for i, v := range row {
				placeholders[i] = pb.Add(v)
			}
			sqlStr := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
				sd.table, strings.Join(sd.columns, ", "), strings.Join(placeholders, ", "))
			if _, err := s.DB.ExecContext(ctx, sqlStr, pb.Params()...); err != nil {
				return fmt.Errorf("seed %s: %w", sd.table, err)
			}
		}
	}
	return nil
}

func (s *Store) seedAdminUser(ctx context.Context) error {
	empty, err := s.tableEmpty(ctx, "_users")
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	pb := s.Dialect.NewParamBuilder()
	sqlStr := fmt.Sprintf("INSERT INTO _users (id, email, password_hash) VALUES (%s, %s, %s)",
		pb.Add(uuid.New().String()), pb.Add("admin@localhost"), pb.Add(string(hashBytes)))
	if _, err := s.DB.ExecContext(ctx, sqlStr, pb.Params()...); err != nil {
		return err
	}

	log.Println("WARNING: Default admin user created (admin@localhost / changeme), change the password immediately.")
	return nil
}
