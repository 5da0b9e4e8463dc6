package handler

import (
	"github.com/classpoint/horarios-api/internal/core/domain"
	"github.com/classpoint/horarios-api/internal/core/ports"
)

type createEntryRequest struct {
	OwnerID  string `json:"owner_id"`
	Subject  string `json:"subject" validate:"required"`
	Teacher  string `json:"teacher" validate:"required"`
	Day      string `json:"day" validate:"required"`
	Start    string `json:"start" validate:"required"`
	End      string `json:"end" validate:"required"`
	Location string `json:"location"`
}

// updateEntryRequest uses pointers so an omitted field is distinguishable
// from an explicitly empty one.
type updateEntryRequest struct {
	Subject  *string `json:"subject"`
	Teacher  *string `json:"teacher"`
	Day      *string `json:"day"`
	Start    *string `json:"start"`
	End      *string `json:"end"`
	Location *string `json:"location"`
}

type entryResponse struct {
	ID       string `json:"id"`
	OwnerID  string `json:"owner_id,omitempty"`
	Subject  string `json:"subject"`
	Teacher  string `json:"teacher"`
	Day      string `json:"day"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Location string `json:"location,omitempty"`
}

func toEntryResponse(e *domain.ScheduleEntry) entryResponse {
	return entryResponse{
		ID:       e.ID,
		OwnerID:  e.OwnerID,
		Subject:  e.Subject,
		Teacher:  e.Teacher,
		Day:      e.Day,
		Start:    e.Start.String(),
		End:      e.End.String(),
		Location: e.Location,
	}
}

func toEntryResponses(entries []*domain.ScheduleEntry) []entryResponse {
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	return out
}

func (r createEntryRequest) toInput() ports.ScheduleInput {
	return ports.ScheduleInput{
		OwnerID:  r.OwnerID,
		Subject:  r.Subject,
		Teacher:  r.Teacher,
		Day:      r.Day,
		Start:    r.Start,
		End:      r.End,
		Location: r.Location,
	}
}

func (r updateEntryRequest) toUpdate() ports.ScheduleUpdate {
	return ports.ScheduleUpdate{
		Subject:  r.Subject,
		Teacher:  r.Teacher,
		Day:      r.Day,
		Start:    r.Start,
		End:      r.End,
		Location: r.Location,
	}
}
