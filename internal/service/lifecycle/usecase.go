package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/okwama/bm-server/internal/apperr"
	"github.com/okwama/bm-server/internal/domain"
	"github.com/okwama/bm-server/internal/logx"
	"github.com/okwama/bm-server/internal/ports/requesttx"
)

// Service drives request lifecycle transitions and their side-effect records.
type Service struct {
	repo             requestRepository
	notifier         Notifier
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewService creates a lifecycle Service.
func NewService(repo requestRepository, notifier Notifier, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &Service{
		repo:             repo,
		notifier:         notifier,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// PickupInput carries the optional side-effect data supplied at pickup.
type PickupInput struct {
	CashCount     *domain.CashCount
	ImageURL      string
	AtmID         *int64
	CounterNumber string
}

// PickupResult is the outcome of a confirmed pickup.
type PickupResult struct {
	Request    *domain.Request
	CashCount  *domain.CashCountRecord
	AtmCounter *domain.AtmCounterRecord
}

// DeliveryInput carries the completion metadata supplied at delivery.
type DeliveryInput struct {
	BankDetails   *string
	CounterNumber string
	Latitude      *float64
	Longitude     *float64
	Notes         *string
}

// DeliveryResult is the outcome of a confirmed delivery.
type DeliveryResult struct {
	Request    *domain.Request
	Completion *domain.DeliveryCompletionRecord
	AtmCounter *domain.AtmCounterRecord
}

// ConfirmPickup moves a pending request to in_progress, creating the cash
// count and ATM counter records in the same transaction when the service type
// calls for them. Post-commit notification failures are logged, never surfaced.
func (s *Service) ConfirmPickup(ctx context.Context, requestID, staffID int64, in PickupInput) (PickupResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()

	var result PickupResult

	err := s.repo.WithTx(ctx, func(tx requesttx.Repository) error {
		req, err := tx.GetRequest(ctx, requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return fmt.Errorf("request %d: %w", requestID, apperr.ErrNotFound)
		}
		if req.Status != domain.StatusPending {
			return fmt.Errorf("request %d is %s, pickup needs pending: %w",
				requestID, req.Status, apperr.ErrInvalidState)
		}
		if err := validatePickupInput(req, in); err != nil {
			return err
		}

		now := s.now()
		ok, err := tx.UpdateRequestStatus(ctx, requestID, domain.StatusPending, domain.StatusInProgress, now)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("request %d already left pending: %w", requestID, apperr.ErrInvalidState)
		}

		updated := *req
		updated.Status = domain.StatusInProgress
		updated.UpdatedAt = now
		result.Request = &updated

		if req.IsATMLoading() && in.CashCount != nil {
			rec := &domain.CashCountRecord{
				RequestID:   requestID,
				StaffID:     staffID,
				CashCount:   *in.CashCount,
				TotalAmount: in.CashCount.TotalAmount(),
				CreatedAt:   now,
			}
			if in.ImageURL != "" {
				u := in.ImageURL
				rec.ImageURL = &u
			}
			if err := tx.InsertCashCount(ctx, rec); err != nil {
				return err
			}
			result.CashCount = rec
		}

		if req.IsATMLoading() && in.AtmID != nil && in.CounterNumber != "" {
			rec := &domain.AtmCounterRecord{
				AtmID:           *in.AtmID,
				ClientID:        req.ClientID,
				CounterNumber:   in.CounterNumber,
				TeamID:          req.TeamID,
				CrewCommanderID: staffID,
				RequestID:       requestID,
				Date:            now,
			}
			if err := tx.InsertAtmCounter(ctx, rec); err != nil {
				return err
			}
			result.AtmCounter = rec
		}

		return nil
	})
	if err != nil {
		return PickupResult{}, s.mapTimeout(err)
	}

	s.logger.Info("pickup confirmed",
		logx.String("event", "pickup_confirmed"),
		logx.Int64("request_id", requestID),
		logx.Int64("staff_id", staffID),
	)
	s.notifyTransition(staffID, requestID, domain.StatusPending, domain.StatusInProgress, result.Request)

	return result, nil
}

// ConfirmDelivery completes an in-progress request: it upserts the delivery
// completion record, applies the best-effort ATM counter update, and moves the
// status to completed, all in one transaction.
func (s *Service) ConfirmDelivery(ctx context.Context, requestID, staffID int64, staffName string, in DeliveryInput) (DeliveryResult, error) {
	if in.Latitude == nil || in.Longitude == nil {
		return DeliveryResult{}, fmt.Errorf("latitude and longitude are required: %w", apperr.ErrInvalid)
	}

	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()

	var result DeliveryResult

	err := s.repo.WithTx(ctx, func(tx requesttx.Repository) error {
		req, err := tx.GetRequest(ctx, requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return fmt.Errorf("request %d: %w", requestID, apperr.ErrNotFound)
		}
		if req.StaffID != staffID {
			return fmt.Errorf("request %d is assigned to staff %d: %w",
				requestID, req.StaffID, apperr.ErrForbidden)
		}
		if req.Status != domain.StatusInProgress {
			return fmt.Errorf("request %d is %s, delivery needs in_progress: %w",
				requestID, req.Status, apperr.ErrInvalidState)
		}

		now := s.now()
		completion := &domain.DeliveryCompletionRecord{
			RequestID:       requestID,
			CompletedByID:   staffID,
			CompletedByName: staffName,
			BankDetails:     in.BankDetails,
			Latitude:        *in.Latitude,
			Longitude:       *in.Longitude,
			Status:          domain.DeliveryCompletionStatus,
			IsVaultOfficer:  false,
			Notes:           in.Notes,
			CompletedAt:     now,
		}
		if err := tx.UpsertDeliveryCompletion(ctx, completion); err != nil {
			return err
		}
		result.Completion = completion

		// Counter bookkeeping must not block a completed run; its failure is
		// recorded and dropped.
		if req.IsATMLoading() && in.CounterNumber != "" {
			rec, err := s.applyAtmCounter(ctx, tx, req, in.CounterNumber, staffID, now)
			if err != nil {
				s.logger.Warn("atm counter update failed",
					logx.Int64("request_id", requestID),
					logx.Err(err),
				)
			} else {
				result.AtmCounter = rec
			}
		}

		ok, err := tx.UpdateRequestStatus(ctx, requestID, domain.StatusInProgress, domain.StatusCompleted, now)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("request %d already left in_progress: %w", requestID, apperr.ErrInvalidState)
		}

		updated := *req
		updated.Status = domain.StatusCompleted
		updated.UpdatedAt = now
		result.Request = &updated

		return nil
	})
	if err != nil {
		return DeliveryResult{}, s.mapTimeout(err)
	}

	s.logger.Info("delivery confirmed",
		logx.String("event", "delivery_confirmed"),
		logx.Int64("request_id", requestID),
		logx.Int64("staff_id", staffID),
		logx.Float64("lat", *in.Latitude),
		logx.Float64("lon", *in.Longitude),
	)
	s.notifyTransition(staffID, requestID, domain.StatusInProgress, domain.StatusCompleted, result.Request)

	return result, nil
}

// AssignVaultOfficer reassigns the secondary staff fields on a request. Only
// the request's originating user may do this.
func (s *Service) AssignVaultOfficer(ctx context.Context, requestID, callerID, officerID int64, officerName string) (*domain.Request, error) {
	if officerID <= 0 || officerName == "" {
		return nil, fmt.Errorf("vault officer id and name are required: %w", apperr.ErrInvalid)
	}

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

	now := s.now()
	ok, err := s.repo.UpdateVaultOfficer(ctx, requestID, officerID, officerName, now)
	if err != nil {
		return nil, s.mapTimeout(err)
	}
	if !ok {
		return nil, fmt.Errorf("request %d: %w", requestID, apperr.ErrNotFound)
	}

	updated := *req
	updated.MyStaffID = &officerID
	updated.MyStaffName = &officerName
	updated.UpdatedAt = now
	return &updated, nil
}

func (s *Service) applyAtmCounter(ctx context.Context, tx requesttx.Repository, req *domain.Request, counterNumber string, staffID int64, now time.Time) (*domain.AtmCounterRecord, error) {
	existing, err := tx.GetAtmCounterByRequest(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := tx.UpdateAtmCounterNumber(ctx, existing.ID, counterNumber, now); err != nil {
			return nil, err
		}
		existing.CounterNumber = counterNumber
		existing.Date = now
		return existing, nil
	}

	// Defaults mirror the request row when it predates counter tracking.
	atmID := int64(1)
	if req.AtmID != nil {
		atmID = *req.AtmID
	}
	clientID := req.ClientID
	if clientID == 0 {
		clientID = 1
	}
	rec := &domain.AtmCounterRecord{
		AtmID:           atmID,
		ClientID:        clientID,
		CounterNumber:   counterNumber,
		TeamID:          req.TeamID,
		CrewCommanderID: staffID,
		RequestID:       req.ID,
		Date:            now,
	}
	if err := tx.InsertAtmCounter(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func validatePickupInput(req *domain.Request, in PickupInput) error {
	if in.CashCount != nil && !in.CashCount.Valid() {
		return fmt.Errorf("denomination counts must be non-negative: %w", apperr.ErrInvalid)
	}
	if in.ImageURL != "" {
		if _, err := url.ParseRequestURI(in.ImageURL); err != nil {
			return fmt.Errorf("image url %q is malformed: %w", in.ImageURL, apperr.ErrInvalid)
		}
	}
	if req.IsATMLoading() && (in.AtmID != nil || in.CounterNumber != "") {
		if in.AtmID == nil || in.CounterNumber == "" {
			return fmt.Errorf("atm id and counter number must be supplied together: %w", apperr.ErrInvalid)
		}
	}
	return nil
}

// notifyTransition runs the post-commit side effects. Errors are deliberately
// logged and dropped: the transition has already committed.
func (s *Service) notifyTransition(staffID, requestID int64, from, to domain.Status, req *domain.Request) {
	if err := s.notifier.RequestStatusChanged(staffID, requestID, from, to, req); err != nil {
		s.logger.Error("status change notification failed",
			logx.Int64("request_id", requestID),
			logx.Int64("staff_id", staffID),
			logx.Err(err),
		)
	}
	if err := s.notifier.ForceRefresh(staffID); err != nil {
		s.logger.Error("dashboard refresh failed",
			logx.Int64("staff_id", staffID),
			logx.Err(err),
		)
	}
}

func (s *Service) mapTimeout(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("operation may have completed: %w", apperr.ErrTimeout)
	}
	return err
}
