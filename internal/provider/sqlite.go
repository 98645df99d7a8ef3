package provider

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kpoppel/PlannerTool-sub004/internal/domain"
)

// SQLiteProvider implements BackendProvider against a SQLite database.
type SQLiteProvider struct {
	db *sql.DB
}

// NewSQLiteProvider creates a new SQLiteProvider.
func NewSQLiteProvider(db *sql.DB) *SQLiteProvider {
	return &SQLiteProvider{db: db}
}

func (p *SQLiteProvider) FetchProjects(ctx context.Context) ([]domain.Project, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT id, name, color FROM projects ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var pr domain.Project
		if err := rows.Scan(&pr.ID, &pr.Name, &pr.Color); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (p *SQLiteProvider) FetchTeams(ctx context.Context) ([]domain.Team, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT id, name, color FROM teams ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		var t domain.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating teams: %w", err)
	}
	return teams, nil
}

func (p *SQLiteProvider) FetchFeatures(ctx context.Context) ([]domain.Feature, error) {
	query := `SELECT id, type, title, project_id, start_date, end_date, status, assignee, description, url, parent_epic
		FROM features ORDER BY original_rank`
	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing features: %w", err)
	}
	defer rows.Close()

	var features []domain.Feature
	for rows.Next() {
		f, err := scanFeature(rows)
		if err != nil {
			return nil, err
		}
		features = append(features, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating features: %w", err)
	}

	for i := range features {
		loads, err := p.fetchTeamLoads(ctx, features[i].ID)
		if err != nil {
			return nil, err
		}
		features[i].TeamLoads = loads
	}
	return features, nil
}

func scanFeature(rows *sql.Rows) (*domain.Feature, error) {
	var f domain.Feature
	var typ string
	var startStr, endStr, parentEpic sql.NullString
	err := rows.Scan(&f.ID, &typ, &f.Title, &f.Project, &startStr, &endStr,
		&f.Status, &f.Assignee, &f.Description, &f.URL, &parentEpic)
	if err != nil {
		return nil, fmt.Errorf("scanning feature: %w", err)
	}
	f.Type = domain.FeatureType(typ)
	if t := parseNullableDate(startStr); t != nil {
		f.Start = *t
	}
	if t := parseNullableDate(endStr); t != nil {
		f.End = *t
	}
	if parentEpic.Valid {
		f.ParentEpic = parentEpic.String
	}
	return &f, nil
}

func (p *SQLiteProvider) fetchTeamLoads(ctx context.Context, featureID string) ([]domain.TeamLoad, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT team_id, load FROM team_loads WHERE feature_id = ? ORDER BY team_id`, featureID)
	if err != nil {
		return nil, fmt.Errorf("listing team loads: %w", err)
	}
	defer rows.Close()

	var loads []domain.TeamLoad
	for rows.Next() {
		var tl domain.TeamLoad
		if err := rows.Scan(&tl.Team, &tl.Load); err != nil {
			return nil, fmt.Errorf("scanning team load: %w", err)
		}
		loads = append(loads, tl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team loads: %w", err)
	}
	return loads, nil
}

func (p *SQLiteProvider) FetchColorMappings(ctx context.Context) (domain.ColorMappings, error) {
	cm := domain.ColorMappings{
		ProjectColors: map[string]string{},
		TeamColors:    map[string]string{},
	}

	rows, err := p.db.QueryContext(ctx, `SELECT id, color FROM projects WHERE color != ''`)
	if err != nil {
		return cm, fmt.Errorf("listing project colors: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id, color string
		if err := rows.Scan(&id, &color); err != nil {
			return cm, fmt.Errorf("scanning project color: %w", err)
		}
		cm.ProjectColors[id] = color
	}
	if err := rows.Err(); err != nil {
		return cm, fmt.Errorf("iterating project colors: %w", err)
	}

	teamRows, err := p.db.QueryContext(ctx, `SELECT id, color FROM teams WHERE color != ''`)
	if err != nil {
		return cm, fmt.Errorf("listing team colors: %w", err)
	}
	defer teamRows.Close()
	for teamRows.Next() {
		var id, color string
		if err := teamRows.Scan(&id, &color); err != nil {
			return cm, fmt.Errorf("scanning team color: %w", err)
		}
		cm.TeamColors[id] = color
	}
	if err := teamRows.Err(); err != nil {
		return cm, fmt.Errorf("iterating team colors: %w", err)
	}
	return cm, nil
}

func (p *SQLiteProvider) FetchScenarios(ctx context.Context) ([]domain.Scenario, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT id, name FROM scenarios ORDER BY updated_at`)
	if err != nil {
		return nil, fmt.Errorf("listing scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []domain.Scenario
	for rows.Next() {
		var s domain.Scenario
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("scanning scenario: %w", err)
		}
		s.Overrides = map[string]domain.Override{}
		scenarios = append(scenarios, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scenarios: %w", err)
	}

	for i := range scenarios {
		if err := p.fetchOverrides(ctx, &scenarios[i]); err != nil {
			return nil, err
		}
	}
	return scenarios, nil
}

func (p *SQLiteProvider) fetchOverrides(ctx context.Context, s *domain.Scenario) error {
	rows, err := p.db.QueryContext(ctx,
		`SELECT feature_id, start_date, end_date FROM scenario_overrides WHERE scenario_id = ?`, s.ID)
	if err != nil {
		return fmt.Errorf("listing overrides for scenario %s: %w", s.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var featureID string
		var startStr, endStr sql.NullString
		if err := rows.Scan(&featureID, &startStr, &endStr); err != nil {
			return fmt.Errorf("scanning override: %w", err)
		}
		s.Overrides[featureID] = domain.Override{
			Start: parseNullableDate(startStr),
			End:   parseNullableDate(endStr),
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating overrides: %w", err)
	}
	return nil
}

// SaveScenario upserts the scenario record and rewrites its override rows.
func (p *SQLiteProvider) SaveScenario(ctx context.Context, s *domain.Scenario) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting save transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO scenarios (id, name, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, updated_at = excluded.updated_at`,
		s.ID, s.Name, now)
	if err != nil {
		return fmt.Errorf("upserting scenario: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM scenario_overrides WHERE scenario_id = ?`, s.ID); err != nil {
		return fmt.Errorf("clearing overrides: %w", err)
	}
	for featureID, o := range s.Overrides {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO scenario_overrides (scenario_id, feature_id, start_date, end_date) VALUES (?, ?, ?, ?)`,
			s.ID, featureID, nullableDateToValue(o.Start), nullableDateToValue(o.End))
		if err != nil {
			return fmt.Errorf("inserting override for %s: %w", featureID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing scenario save: %w", err)
	}
	return nil
}

func (p *SQLiteProvider) DeleteScenario(ctx context.Context, id string) (bool, error) {
	res, err := p.db.ExecContext(ctx, `DELETE FROM scenarios WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting scenario: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking delete result: %w", err)
	}
	return n > 0, nil
}

func (p *SQLiteProvider) RenameScenario(ctx context.Context, id, name string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := p.db.ExecContext(ctx,
		`UPDATE scenarios SET name = ?, updated_at = ? WHERE id = ?`, name, now, id)
	if err != nil {
		return fmt.Errorf("renaming scenario: %w", err)
	}
	return nil
}

// RefreshBaseline is a no-op for SQLite: the database is the source of truth
// and every fetch reads it directly.
func (p *SQLiteProvider) RefreshBaseline(ctx context.Context) error {
	return nil
}

func parseNullableDate(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := domain.ParseDate(s.String)
	if err != nil {
		return nil
	}
	return &t
}

func nullableDateToValue(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(domain.DateLayout)
}
