package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/evanmahr/ganttline/internal/db"
	"github.com/evanmahr/ganttline/internal/domain"
)

const timeLayout = time.RFC3339

// SQLiteScheduleRepo implements ScheduleRepo on a SQLite database. Reads run
// against the raw connection; SaveSnapshot replaces all schedule rows inside
// one unit-of-work transaction.
type SQLiteScheduleRepo struct {
	db  *sql.DB
	uow db.UnitOfWork
}

func NewSQLiteScheduleRepo(database *sql.DB, uow db.UnitOfWork) *SQLiteScheduleRepo {
	return &SQLiteScheduleRepo{db: database, uow: uow}
}

func (r *SQLiteScheduleRepo) LoadSnapshot(ctx context.Context, projectID string) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{ProjectID: projectID, Meta: make(map[string]string)}

	var name, gridUnit, groupBy, sortMode, lastUpdated string
	var swimlanes int
	err := r.db.QueryRowContext(ctx, `
		SELECT name, grid_unit, pixels_per_unit, group_by, sort_mode, swimlanes, last_updated
		FROM projects WHERE id = ?`, projectID).
		Scan(&name, &gridUnit, &snap.Preferences.PixelsPerUnit, &groupBy, &sortMode, &swimlanes, &lastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}

	snap.Meta["name"] = name
	snap.Preferences.GridUnit = domain.GridUnit(gridUnit)
	snap.Preferences.GroupBy = domain.GroupBy(groupBy)
	snap.Preferences.Sort = domain.SortMode(sortMode)
	snap.Preferences.Swimlanes = swimlanes != 0
	if snap.LastUpdated, err = time.Parse(timeLayout, lastUpdated); err != nil {
		return nil, fmt.Errorf("parsing last_updated: %w", err)
	}

	if snap.Groups, err = r.loadGroups(ctx, projectID); err != nil {
		return nil, err
	}
	if snap.Items, err = r.loadItems(ctx, projectID); err != nil {
		return nil, err
	}
	if snap.Dependencies, err = r.loadDependencies(ctx, projectID); err != nil {
		return nil, err
	}
	if snap.Milestones, err = r.loadMilestones(ctx, projectID); err != nil {
		return nil, err
	}
	if snap.Baselines, err = r.loadBaselines(ctx, projectID); err != nil {
		return nil, err
	}
	if err = r.loadMeta(ctx, projectID, snap.Meta); err != nil {
		return nil, err
	}
	if snap.Auxiliary, err = r.loadAuxiliary(ctx, projectID); err != nil {
		return nil, err
	}
	return snap, nil
}

func (r *SQLiteScheduleRepo) loadGroups(ctx context.Context, projectID string) ([]domain.Group, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, parent_id, order_index
		FROM item_groups WHERE project_id = ? ORDER BY order_index, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	defer rows.Close()

	var out []domain.Group
	for rows.Next() {
		var g domain.Group
		var parent sql.NullString
		if err := rows.Scan(&g.ID, &g.Name, &parent, &g.OrderIndex); err != nil {
			return nil, fmt.Errorf("scanning group: %w", err)
		}
		if parent.Valid {
			g.ParentID = &parent.String
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *SQLiteScheduleRepo) loadItems(ctx context.Context, projectID string) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, kind, group_id, start_at, end_at, duration_min, percent_done
		FROM items WHERE project_id = ? ORDER BY start_at, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var out []domain.Item
	for rows.Next() {
		var it domain.Item
		var groupID sql.NullString
		var startAt, endAt string
		if err := rows.Scan(&it.ID, &it.Name, &it.Kind, &groupID, &startAt, &endAt,
			&it.DurationMinutes, &it.PercentDone); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		it.GroupID = groupID.String
		if it.Start, err = time.Parse(timeLayout, startAt); err != nil {
			return nil, fmt.Errorf("parsing item %s start: %w", it.ID, err)
		}
		if it.End, err = time.Parse(timeLayout, endAt); err != nil {
			return nil, fmt.Errorf("parsing item %s end: %w", it.ID, err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *SQLiteScheduleRepo) loadDependencies(ctx context.Context, projectID string) ([]domain.Dependency, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT from_id, to_id FROM dependencies WHERE project_id = ? ORDER BY from_id, to_id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing dependencies: %w", err)
	}
	defer rows.Close()

	var out []domain.Dependency
	for rows.Next() {
		var d domain.Dependency
		if err := rows.Scan(&d.FromID, &d.ToID); err != nil {
			return nil, fmt.Errorf("scanning dependency: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *SQLiteScheduleRepo) loadMilestones(ctx context.Context, projectID string) ([]domain.Milestone, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, date FROM milestones WHERE project_id = ? ORDER BY date, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	defer rows.Close()

	var out []domain.Milestone
	for rows.Next() {
		var m domain.Milestone
		var date string
		if err := rows.Scan(&m.ID, &m.Name, &date); err != nil {
			return nil, fmt.Errorf("scanning milestone: %w", err)
		}
		if m.Date, err = time.Parse(timeLayout, date); err != nil {
			return nil, fmt.Errorf("parsing milestone %s date: %w", m.ID, err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *SQLiteScheduleRepo) loadBaselines(ctx context.Context, projectID string) ([]domain.Baseline, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT item_id, start_at, end_at FROM baselines WHERE project_id = ? ORDER BY item_id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing baselines: %w", err)
	}
	defer rows.Close()

	var out []domain.Baseline
	for rows.Next() {
		var b domain.Baseline
		var startAt, endAt string
		if err := rows.Scan(&b.ItemID, &startAt, &endAt); err != nil {
			return nil, fmt.Errorf("scanning baseline: %w", err)
		}
		if b.Start, err = time.Parse(timeLayout, startAt); err != nil {
			return nil, fmt.Errorf("parsing baseline start: %w", err)
		}
		if b.End, err = time.Parse(timeLayout, endAt); err != nil {
			return nil, fmt.Errorf("parsing baseline end: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *SQLiteScheduleRepo) loadMeta(ctx context.Context, projectID string, meta map[string]string) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT key, value FROM project_meta WHERE project_id = ?`, projectID)
	if err != nil {
		return fmt.Errorf("listing meta: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return fmt.Errorf("scanning meta: %w", err)
		}
		meta[k] = v
	}
	return rows.Err()
}

// loadAuxiliary returns the opaque payload map, nil when the project has
// none so an empty save round-trips unchanged.
func (r *SQLiteScheduleRepo) loadAuxiliary(ctx context.Context, projectID string) (map[string]json.RawMessage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT key, payload FROM project_aux WHERE project_id = ?`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing auxiliary payloads: %w", err)
	}
	defer rows.Close()

	var out map[string]json.RawMessage
	for rows.Next() {
		var k, payload string
		if err := rows.Scan(&k, &payload); err != nil {
			return nil, fmt.Errorf("scanning auxiliary payload: %w", err)
		}
		if out == nil {
			out = make(map[string]json.RawMessage)
		}
		out[k] = json.RawMessage(payload)
	}
	return out, rows.Err()
}

// SaveSnapshot persists the snapshot wholesale: the project row is upserted
// and every child table is rewritten inside one transaction.
func (r *SQLiteScheduleRepo) SaveSnapshot(ctx context.Context, snap *domain.Snapshot) error {
	if snap.ProjectID == "" {
		return fmt.Errorf("saving snapshot: empty project id")
	}
	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		name := snap.Meta["name"]
		if name == "" {
			name = "Untitled"
		}
		swimlanes := 0
		if snap.Preferences.Swimlanes {
			swimlanes = 1
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO projects (id, name, grid_unit, pixels_per_unit, group_by, sort_mode, swimlanes, last_updated)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				grid_unit = excluded.grid_unit,
				pixels_per_unit = excluded.pixels_per_unit,
				group_by = excluded.group_by,
				sort_mode = excluded.sort_mode,
				swimlanes = excluded.swimlanes,
				last_updated = excluded.last_updated`,
			snap.ProjectID, name,
			string(snap.Preferences.GridUnit), snap.Preferences.PixelsPerUnit,
			string(snap.Preferences.GroupBy), string(snap.Preferences.Sort),
			swimlanes, snap.LastUpdated.UTC().Format(timeLayout)); err != nil {
			return fmt.Errorf("upserting project: %w", err)
		}

		for _, table := range []string{"dependencies", "baselines", "items", "item_groups", "milestones", "project_meta", "project_aux"} {
			if _, err := tx.ExecContext(ctx,
				fmt.Sprintf("DELETE FROM %s WHERE project_id = ?", table), snap.ProjectID); err != nil {
				return fmt.Errorf("clearing %s: %w", table, err)
			}
		}

		for _, g := range snap.Groups {
			var parent any
			if g.ParentID != nil {
				parent = *g.ParentID
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO item_groups (id, project_id, name, parent_id, order_index)
				VALUES (?, ?, ?, ?, ?)`,
				g.ID, snap.ProjectID, g.Name, parent, g.OrderIndex); err != nil {
				return fmt.Errorf("inserting group %s: %w", g.ID, err)
			}
		}

		for _, it := range snap.Items {
			var groupID any
			if it.GroupID != "" {
				groupID = it.GroupID
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO items (id, project_id, name, kind, group_id, start_at, end_at, duration_min, percent_done)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				it.ID, snap.ProjectID, it.Name, string(it.Kind), groupID,
				it.Start.UTC().Format(timeLayout), it.End.UTC().Format(timeLayout),
				it.DurationMinutes, it.PercentDone); err != nil {
				return fmt.Errorf("inserting item %s: %w", it.ID, err)
			}
		}

		for _, d := range snap.Dependencies {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO dependencies (project_id, from_id, to_id) VALUES (?, ?, ?)`,
				snap.ProjectID, d.FromID, d.ToID); err != nil {
				return fmt.Errorf("inserting dependency %s -> %s: %w", d.FromID, d.ToID, err)
			}
		}

		for _, m := range snap.Milestones {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO milestones (id, project_id, name, date) VALUES (?, ?, ?, ?)`,
				m.ID, snap.ProjectID, m.Name, m.Date.UTC().Format(timeLayout)); err != nil {
				return fmt.Errorf("inserting milestone %s: %w", m.ID, err)
			}
		}

		for _, b := range snap.Baselines {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO baselines (project_id, item_id, start_at, end_at) VALUES (?, ?, ?, ?)`,
				snap.ProjectID, b.ItemID,
				b.Start.UTC().Format(timeLayout), b.End.UTC().Format(timeLayout)); err != nil {
				return fmt.Errorf("inserting baseline for %s: %w", b.ItemID, err)
			}
		}

		for k, v := range snap.Meta {
			if k == "name" {
				continue
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO project_meta (project_id, key, value) VALUES (?, ?, ?)`,
				snap.ProjectID, k, v); err != nil {
				return fmt.Errorf("inserting meta %s: %w", k, err)
			}
		}

		for k, v := range snap.Auxiliary {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO project_aux (project_id, key, payload) VALUES (?, ?, ?)`,
				snap.ProjectID, k, string(v)); err != nil {
				return fmt.Errorf("inserting auxiliary payload %s: %w", k, err)
			}
		}
		return nil
	})
}

func (r *SQLiteScheduleRepo) ListProjects(ctx context.Context) ([]ProjectRef, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, last_updated FROM projects ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var out []ProjectRef
	for rows.Next() {
		var p ProjectRef
		var lastUpdated string
		if err := rows.Scan(&p.ID, &p.Name, &lastUpdated); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		if p.LastUpdated, err = time.Parse(timeLayout, lastUpdated); err != nil {
			return nil, fmt.Errorf("parsing last_updated: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
