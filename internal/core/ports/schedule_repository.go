package ports

import (
	"context"

	"github.com/classpoint/horarios-api/internal/core/domain"
)

// ScheduleRepository defines persistence operations for schedule entries.
type ScheduleRepository interface {
	FindByID(ctx context.Context, id string) (*domain.ScheduleEntry, error)
	// FindByOwnerAndDay returns every entry owned by ownerID on the given day.
	// This is the read half of the overlap check.
	FindByOwnerAndDay(ctx context.Context, ownerID, day string) ([]*domain.ScheduleEntry, error)
	List(ctx context.Context) ([]*domain.ScheduleEntry, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.ScheduleEntry, error)
	Create(ctx context.Context, entry *domain.ScheduleEntry) (*domain.ScheduleEntry, error)
	Update(ctx context.Context, entry *domain.ScheduleEntry) (*domain.ScheduleEntry, error)
	Delete(ctx context.Context, id string) error
	// DeleteByOwner removes all entries owned by ownerID (user-delete cascade).
	DeleteByOwner(ctx context.Context, ownerID string) error
}
