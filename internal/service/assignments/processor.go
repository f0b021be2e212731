package assignments

import (
	"context"
	"fmt"
	"time"

	"github.com/okwama/bm-server/internal/domain"
	"github.com/okwama/bm-server/internal/logx"
)

// Event is one assignment announcement from the fleet scheduler.
type Event struct {
	RequestID  int64
	StaffID    int64
	AssignedAt time.Time
}

type requestSource interface {
	GetByID(ctx context.Context, id int64) (*domain.Request, error)
}

type notifier interface {
	NewAssignment(staffID int64, req *domain.Request) error
}

// Processor turns assignment events into pushed notifications for the
// assigned staff member.
type Processor struct {
	requests requestSource
	notifier notifier
	logger   logx.Logger
}

// NewProcessor creates a Processor.
func NewProcessor(requests requestSource, notifier notifier, logger logx.Logger) *Processor {
	return &Processor{requests: requests, notifier: notifier, logger: logger}
}

// Handle loads the assigned request and notifies the assignee. Events for
// unknown requests are skipped, a load failure is returned so the message is
// retried.
func (p *Processor) Handle(ctx context.Context, ev Event) error {
	req, err := p.requests.GetByID(ctx, ev.RequestID)
	if err != nil {
		return fmt.Errorf("load request %d: %w", ev.RequestID, err)
	}
	if req == nil {
		p.logger.Warn("assignment for unknown request, skipping",
			logx.Int64("request_id", ev.RequestID),
			logx.Int64("staff_id", ev.StaffID),
		)
		return nil
	}

	if err := p.notifier.NewAssignment(ev.StaffID, req); err != nil {
		p.logger.Warn("assignment notification failed",
			logx.Int64("request_id", ev.RequestID),
			logx.Int64("staff_id", ev.StaffID),
			logx.Err(err),
		)
	}

	p.logger.Info("assignment processed",
		logx.Int64("request_id", ev.RequestID),
		logx.Int64("staff_id", ev.StaffID),
	)
	return nil
}
