package lifecycle

import (
	"context"
	"fmt"

	"github.com/okwama/bm-server/internal/apperr"
	"github.com/okwama/bm-server/internal/domain"
)

// WorkList returns the requests assigned to a staff member in one lifecycle
// status, newest first.
func (s *Service) WorkList(ctx context.Context, staffID int64, status domain.Status) ([]domain.Request, error) {
	switch status {
	case domain.StatusPending, domain.StatusInProgress, domain.StatusCompleted:
	default:
		return nil, fmt.Errorf("status %d has no work list: %w", status, apperr.ErrInvalid)
	}
	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()
	return s.repo.ListByStatus(ctx, staffID, status)
}

// Details returns one request; only its originating user may read it.
func (s *Service) Details(ctx context.Context, requestID, callerID int64) (*domain.Request, error) {
	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()

	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, s.mapTimeout(err)
	}
	if req == nil {
		return nil, fmt.Errorf("request %d: %w", requestID, apperr.ErrNotFound)
	}
	if req.UserID != callerID {
		return nil, fmt.Errorf("request %d belongs to user %d: %w",
			requestID, req.UserID, apperr.ErrForbidden)
	}
	return req, nil
}
