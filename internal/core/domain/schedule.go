package domain

import (
	"fmt"
	"time"
)

// TimeOfDay is a clock time with minute resolution, stored as minutes since
// midnight. Schedule entries never span midnight, so a bare offset is enough.
type TimeOfDay int

// ParseTimeOfDay accepts "HH:MM" (24-hour, zero-padded) or "HH:MM:SS";
// seconds are truncated. Any other representation fails with
// ErrInvalidTimeFormat.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var parsed time.Time
	var err error
	switch len(s) {
	case len("15:04"):
		parsed, err = time.Parse("15:04", s)
	case len("15:04:05"):
		parsed, err = time.Parse("15:04:05", s)
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return TimeOfDay(parsed.Hour()*60 + parsed.Minute()), nil
}

// String renders the time back as zero-padded "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// ScheduleEntry is a single slot in a user's weekly schedule. An empty
// OwnerID marks an unassigned catalog entry managed by admins.
type ScheduleEntry struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id,omitempty"`
	Subject   string    `json:"subject"`
	Teacher   string    `json:"teacher"`
	Day       string    `json:"day"`
	Start     TimeOfDay `json:"-"`
	End       TimeOfDay `json:"-"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Overlaps reports whether the two entries' [Start, End) intervals intersect.
// Half-open semantics: back-to-back entries where one ends exactly when the
// other starts do not overlap.
func (e *ScheduleEntry) Overlaps(other *ScheduleEntry) bool {
	return !(e.End <= other.Start || e.Start >= other.End)
}

// ConflictError reports which existing entry a proposed interval collides
// with. It unwraps to ErrOverlapConflict.
type ConflictError struct {
	EntryID string
	Subject string
	Day     string
	Start   TimeOfDay
	End     TimeOfDay
}

func (c *ConflictError) Error() string {
	return fmt.Sprintf("%s with %q (%s %s-%s)", ErrOverlapConflict, c.Subject, c.Day, c.Start, c.End)
}

func (c *ConflictError) Unwrap() error {
	return ErrOverlapConflict
}
