package ports

import (
	"context"

	"github.com/classpoint/horarios-api/internal/core/domain"
)

// ScheduleInput carries the raw fields of a proposed schedule entry. Times
// arrive as text ("HH:MM" or "HH:MM:SS") and are parsed by the service.
type ScheduleInput struct {
	OwnerID  string // empty = unassigned catalog entry (admin only)
	Subject  string
	Teacher  string
	Day      string
	Start    string
	End      string
	Location string
}

// ScheduleUpdate carries a partial mutation; nil fields keep prior values.
type ScheduleUpdate struct {
	Subject  *string
	Teacher  *string
	Day      *string
	Start    *string
	End      *string
	Location *string
}

// ScheduleService validates and persists schedule entries, enforcing the
// owner-or-admin policy on every mutation.
type ScheduleService interface {
	List(ctx context.Context) ([]*domain.ScheduleEntry, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.ScheduleEntry, error)
	Get(ctx context.Context, id string) (*domain.ScheduleEntry, error)
	Create(ctx context.Context, caller domain.Identity, input ScheduleInput) (*domain.ScheduleEntry, error)
	Update(ctx context.Context, caller domain.Identity, id string, update ScheduleUpdate) (*domain.ScheduleEntry, error)
	Delete(ctx context.Context, caller domain.Identity, id string) error
}
