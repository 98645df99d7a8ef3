package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/kpoppel/PlannerTool-sub004/internal/domain"
)

// Seed writes a baseline dataset into an empty database. Feature rows keep
// their slice position as original_rank so later fetches preserve source order.
func (p *SQLiteProvider) Seed(ctx context.Context, projects []domain.Project, teams []domain.Team, features []domain.Feature) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, pr := range projects {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO projects (id, name, color) VALUES (?, ?, ?)`,
			pr.ID, pr.Name, pr.Color); err != nil {
			return fmt.Errorf("inserting project %s: %w", pr.ID, err)
		}
	}
	for _, t := range teams {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO teams (id, name, color) VALUES (?, ?, ?)`,
			t.ID, t.Name, t.Color); err != nil {
			return fmt.Errorf("inserting team %s: %w", t.ID, err)
		}
	}
	for i, f := range features {
		if err := f.Validate(); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO features (id, type, title, project_id, start_date, end_date, status, assignee, description, url, parent_epic, original_rank)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			f.ID, string(f.Type), f.Title, f.Project,
			dateToValue(f.Start), dateToValue(f.End),
			f.Status, f.Assignee, f.Description, f.URL,
			nullableString(f.ParentEpic), i)
		if err != nil {
			return fmt.Errorf("inserting feature %s: %w", f.ID, err)
		}
		for _, tl := range f.TeamLoads {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO team_loads (feature_id, team_id, load) VALUES (?, ?, ?)`,
				f.ID, tl.Team, tl.Load); err != nil {
				return fmt.Errorf("inserting team load %s/%s: %w", f.ID, tl.Team, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}
	return nil
}

func dateToValue(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(domain.DateLayout)
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
