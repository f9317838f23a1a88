package service

import (
	"context"
	"fmt"
	"time"

	"github.com/evanmahr/ganttline/internal/domain"
	"github.com/evanmahr/ganttline/internal/repository"
	"github.com/google/uuid"
)

// SeedDemo writes a small sample project so the timeline is usable out of
// the box. Returns the new project id.
func SeedDemo(ctx context.Context, repo repository.ScheduleRepo) (string, error) {
	day := 24 * time.Hour
	origin := time.Now().UTC().Truncate(day)

	design := domain.Group{ID: uuid.New().String(), Name: "Design", OrderIndex: 0}
	build := domain.Group{ID: uuid.New().String(), Name: "Build", OrderIndex: 1}
	rollout := domain.Group{ID: uuid.New().String(), Name: "Rollout", ParentID: &build.ID, OrderIndex: 2}

	mk := func(name string, g domain.Group, kind domain.ItemKind, startDay, endDay int) domain.Item {
		it := domain.Item{
			ID:      uuid.New().String(),
			Name:    name,
			Kind:    kind,
			GroupID: g.ID,
			Start:   origin.Add(time.Duration(startDay) * day),
			End:     origin.Add(time.Duration(endDay) * day),
		}
		it.SyncDuration()
		return it
	}

	spec := mk("Draft spec", design, domain.KindTask, 0, 3)
	review := mk("Spec review", design, domain.KindTask, 3, 5)
	impl := mk("Implementation", build, domain.KindTask, 5, 12)
	hardening := mk("Hardening", build, domain.KindTask, 12, 15)
	launch := mk("Launch", rollout, domain.KindMilestone, 16, 16)

	snap := domain.Snapshot{
		ProjectID:    uuid.New().String(),
		Items:        []domain.Item{spec, review, impl, hardening, launch},
		Groups:       []domain.Group{design, build, rollout},
		Dependencies: []domain.Dependency{
			{FromID: spec.ID, ToID: review.ID},
			{FromID: review.ID, ToID: impl.ID},
			{FromID: impl.ID, ToID: hardening.ID},
		},
		Milestones: []domain.Milestone{
			{ID: uuid.New().String(), Name: "Code freeze", Date: origin.Add(14 * day)},
		},
		Baselines: []domain.Baseline{
			{ItemID: impl.ID, Start: impl.Start, End: impl.End},
		},
		Preferences: domain.DefaultPreferences(),
		Meta:        map[string]string{"name": "Demo Launch Plan"},
		LastUpdated: time.Now().UTC(),
	}

	if err := repo.SaveSnapshot(ctx, &snap); err != nil {
		return "", fmt.Errorf("seeding demo project: %w", err)
	}
	return snap.ProjectID, nil
}
