package requesttx

import (
	"context"
	"time"

	"github.com/okwama/bm-server/internal/domain"
)

// Repository is the per-transaction view of the domain store used by a
// lifecycle transition. All writes issued through it share one transaction.
type Repository interface {
	// GetRequest re-reads a request by primary key. Returns nil, nil when absent.
	GetRequest(ctx context.Context, id int64) (*domain.Request, error)
	// UpdateRequestStatus advances a request's status only if it still holds
	// the expected one. Returns false when no row matched.
	UpdateRequestStatus(ctx context.Context, id int64, from, to domain.Status, at time.Time) (bool, error)
	InsertCashCount(ctx context.Context, rec *domain.CashCountRecord) error
	InsertAtmCounter(ctx context.Context, rec *domain.AtmCounterRecord) error
	// GetAtmCounterByRequest returns nil, nil when the request has no counter record.
	GetAtmCounterByRequest(ctx context.Context, requestID int64) (*domain.AtmCounterRecord, error)
	UpdateAtmCounterNumber(ctx context.Context, id int64, counterNumber string, at time.Time) error
	// UpsertDeliveryCompletion updates the request's completion record in
	// place, or creates it when none exists.
	UpsertDeliveryCompletion(ctx context.Context, rec *domain.DeliveryCompletionRecord) error
}

// Runner opens a transaction and executes fn within it.
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
