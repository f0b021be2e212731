//go:generate mockgen -source=contracts.go -destination=lifecycle_mocks_test.go -package=lifecycle_test

package lifecycle

import (
	"context"
	"time"

	"github.com/okwama/bm-server/internal/domain"
	"github.com/okwama/bm-server/internal/ports/requesttx"
)

type requestRepository interface {
	WithTx(ctx context.Context, fn func(tx requesttx.Repository) error) error
	GetByID(ctx context.Context, id int64) (*domain.Request, error)
	ListByStatus(ctx context.Context, staffID int64, status domain.Status) ([]domain.Request, error)
	UpdateVaultOfficer(ctx context.Context, requestID, officerID int64, officerName string, at time.Time) (bool, error)
}

// Notifier receives the post-commit side effects of a transition. Both calls
// are best-effort: the engine logs a returned error and discards it, and a
// committed transition is never unwound because of one.
type Notifier interface {
	RequestStatusChanged(staffID, requestID int64, oldStatus, newStatus domain.Status, req *domain.Request) error
	ForceRefresh(staffID int64) error
}
