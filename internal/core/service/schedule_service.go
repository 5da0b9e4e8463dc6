package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/classpoint/horarios-api/internal/core/domain"
	"github.com/classpoint/horarios-api/internal/core/ports"
)

type scheduleService struct {
	repo ports.ScheduleRepository
	log  zerolog.Logger
}

// NewScheduleService returns a ScheduleService implementation.
func NewScheduleService(repo ports.ScheduleRepository, log zerolog.Logger) ports.ScheduleService {
	return &scheduleService{repo: repo, log: log}
}

func (s *scheduleService) List(ctx context.Context) ([]*domain.ScheduleEntry, error) {
	return s.repo.List(ctx)
}

func (s *scheduleService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.ScheduleEntry, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *scheduleService) Get(ctx context.Context, id string) (*domain.ScheduleEntry, error) {
	return s.repo.FindByID(ctx, id)
}

// Create validates and persists a new entry. Admins may create entries for
// any owner or with no owner at all (catalog entries); regular users only
// for themselves.
//
// The overlap check is read-then-write without a transactional guard: two
// concurrent creates for the same owner and day can both pass the scan. The
// store would need a serializable session or a unique index over
// owner+day+interval to close that window.
func (s *scheduleService) Create(ctx context.Context, caller domain.Identity, input ports.ScheduleInput) (*domain.ScheduleEntry, error) {
	if !caller.IsAdmin() {
		if input.OwnerID == "" {
			input.OwnerID = caller.UserID
		} else if input.OwnerID != caller.UserID {
			return nil, domain.ErrNotOwner
		}
	}

	if input.Subject == "" || input.Teacher == "" || input.Day == "" || input.Start == "" || input.End == "" {
		return nil, domain.ErrMissingFields
	}

	start, end, err := parseInterval(input.Start, input.End)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	draft := &domain.ScheduleEntry{
		OwnerID:   input.OwnerID,
		Subject:   input.Subject,
		Teacher:   input.Teacher,
		Day:       input.Day,
		Start:     start,
		End:       end,
		Location:  input.Location,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.checkOverlap(ctx, draft, ""); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, draft)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create schedule entry")
		return nil, err
	}

	s.log.Info().
		Str("entry_id", created.ID).
		Str("owner_id", created.OwnerID).
		Str("day", created.Day).
		Msg("schedule entry created")
	return created, nil
}

// Update applies a partial mutation after the owner-or-admin check. Omitted
// fields keep their prior values and are exempt from the required-fields
// rule; the overlap scan excludes the entry's own previous interval.
func (s *scheduleService) Update(ctx context.Context, caller domain.Identity, id string, update ports.ScheduleUpdate) (*domain.ScheduleEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := caller.RequireOwnerOrAdmin(entry.OwnerID); err != nil {
		return nil, err
	}

	if update.Subject != nil {
		entry.Subject = *update.Subject
	}
	if update.Teacher != nil {
		entry.Teacher = *update.Teacher
	}
	if update.Day != nil {
		entry.Day = *update.Day
	}
	if entry.Subject == "" || entry.Teacher == "" || entry.Day == "" {
		return nil, domain.ErrMissingFields
	}
	if update.Location != nil {
		entry.Location = *update.Location
	}

	startText, endText := entry.Start.String(), entry.End.String()
	if update.Start != nil {
		startText = *update.Start
	}
	if update.End != nil {
		endText = *update.End
	}
	entry.Start, entry.End, err = parseInterval(startText, endText)
	if err != nil {
		return nil, err
	}

	if err := s.checkOverlap(ctx, entry, entry.ID); err != nil {
		return nil, err
	}

	entry.UpdatedAt = time.Now().UTC()
	updated, err := s.repo.Update(ctx, entry)
	if err != nil {
		s.log.Error().Err(err).Str("entry_id", id).Msg("failed to update schedule entry")
		return nil, err
	}

	s.log.Info().Str("entry_id", id).Msg("schedule entry updated")
	return updated, nil
}

func (s *scheduleService) Delete(ctx context.Context, caller domain.Identity, id string) error {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := caller.RequireOwnerOrAdmin(entry.OwnerID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("entry_id", id).Msg("schedule entry deleted")
	return nil
}

// parseInterval parses both bounds and enforces strict ordering.
func parseInterval(startText, endText string) (domain.TimeOfDay, domain.TimeOfDay, error) {
	start, err := domain.ParseTimeOfDay(startText)
	if err != nil {
		return 0, 0, err
	}
	end, err := domain.ParseTimeOfDay(endText)
	if err != nil {
		return 0, 0, err
	}
	if start >= end {
		return 0, 0, fmt.Errorf("%w (%s >= %s)", domain.ErrInvalidTimeRange, start, end)
	}
	return start, end, nil
}

// checkOverlap scans the owner's entries on the same day for a half-open
// interval collision. Entries without an owner are catalog rows, not part of
// anyone's calendar, and skip the scan. excludeID drops the entry's own prior
// interval during updates.
func (s *scheduleService) checkOverlap(ctx context.Context, entry *domain.ScheduleEntry, excludeID string) error {
	if entry.OwnerID == "" {
		return nil
	}

	existing, err := s.repo.FindByOwnerAndDay(ctx, entry.OwnerID, entry.Day)
	if err != nil {
		return fmt.Errorf("overlap check: %w", err)
	}

	for _, other := range existing {
		if other.ID == excludeID {
			continue
		}
		if entry.Overlaps(other) {
			return &domain.ConflictError{
				EntryID: other.ID,
				Subject: other.Subject,
				Day:     other.Day,
				Start:   other.Start,
				End:     other.End,
			}
		}
	}
	return nil
}
