package service

import (
	"context"
	"fmt"
	"time"

	"github.com/evanmahr/ganttline/internal/repository"
	"github.com/evanmahr/ganttline/internal/store"
)

// ScheduleService moves snapshots between the repository and the in-memory
// store. Fetch failures surface as the store's Failed status; there is no
// automatic retry.
type ScheduleService interface {
	// Load fetches the project's snapshot and installs it as canonical.
	Load(ctx context.Context, projectID string) error
	// Refresh refetches the currently loaded project. A refresh landing
	// mid-gesture wins; the gesture commits on top of it.
	Refresh(ctx context.Context) error
	// Save persists the canonical snapshot wholesale.
	Save(ctx context.Context) error
	Projects(ctx context.Context) ([]repository.ProjectRef, error)
}

type scheduleService struct {
	repo      repository.ScheduleRepo
	store     *store.Store
	obs       UseCaseObserver
	projectID string
}

func NewScheduleService(repo repository.ScheduleRepo, st *store.Store, obs UseCaseObserver) ScheduleService {
	if obs == nil {
		obs = NoopUseCaseObserver{}
	}
	return &scheduleService{repo: repo, store: st, obs: obs}
}

func (s *scheduleService) Load(ctx context.Context, projectID string) error {
	started := time.Now()
	s.store.SetLoading()

	snap, err := s.repo.LoadSnapshot(ctx, projectID)
	if err != nil {
		s.store.Fail(err)
		observe(ctx, s.obs, "schedule_load", map[string]any{"project_id": projectID}, started, err)
		return fmt.Errorf("loading schedule %s: %w", projectID, err)
	}

	s.projectID = projectID
	s.store.Replace(*snap)
	observe(ctx, s.obs, "schedule_load", map[string]any{
		"project_id": projectID,
		"items":      len(snap.Items),
	}, started, nil)
	return nil
}

func (s *scheduleService) Refresh(ctx context.Context) error {
	if s.projectID == "" {
		return fmt.Errorf("refreshing schedule: no project loaded")
	}
	return s.Load(ctx, s.projectID)
}

func (s *scheduleService) Save(ctx context.Context) error {
	started := time.Now()
	snap := s.store.Snapshot()
	if snap.ProjectID == "" {
		return fmt.Errorf("saving schedule: no project loaded")
	}
	err := s.repo.SaveSnapshot(ctx, &snap)
	observe(ctx, s.obs, "schedule_save", map[string]any{
		"project_id": snap.ProjectID,
		"items":      len(snap.Items),
	}, started, err)
	if err != nil {
		return fmt.Errorf("saving schedule %s: %w", snap.ProjectID, err)
	}
	return nil
}

func (s *scheduleService) Projects(ctx context.Context) ([]repository.ProjectRef, error) {
	started := time.Now()
	refs, err := s.repo.ListProjects(ctx)
	observe(ctx, s.obs, "schedule_list_projects", nil, started, err)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return refs, nil
}
