package repository

import (
	"context"
	"time"

	"github.com/evanmahr/ganttline/internal/domain"
)

// ProjectRef is a lightweight listing row for stored projects.
type ProjectRef struct {
	ID          string
	Name        string
	LastUpdated time.Time
}

// ScheduleRepo loads and persists whole-schedule snapshots. The engine
// treats a loaded snapshot opaquely; it never reads from the repo during a
// gesture.
type ScheduleRepo interface {
	// LoadSnapshot returns the stored snapshot for the project, or
	// domain.ErrNotFound.
	LoadSnapshot(ctx context.Context, projectID string) (*domain.Snapshot, error)
	// SaveSnapshot replaces the stored schedule wholesale in one
	// transaction.
	SaveSnapshot(ctx context.Context, snap *domain.Snapshot) error
	ListProjects(ctx context.Context) ([]ProjectRef, error)
}
