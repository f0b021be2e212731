package kafka

import (
	"time"

	"github.com/okwama/bm-server/internal/service/assignments"
)

// EventDTO is a data transfer object for assignments.Event
type EventDTO struct {
	RequestID  int64     `json:"request_id"`
	StaffID    int64     `json:"staff_id"`
	AssignedAt time.Time `json:"assigned_at"`
}

// ToDomain converts EventDTO to assignments.Event
func ToDomain(dto EventDTO) assignments.Event {
	return assignments.Event{
		RequestID:  dto.RequestID,
		StaffID:    dto.StaffID,
		AssignedAt: dto.AssignedAt,
	}
}
