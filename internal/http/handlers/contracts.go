package handlers

import (
	"context"

	"github.com/okwama/bm-server/internal/domain"
	"github.com/okwama/bm-server/internal/service/lifecycle"
)

type lifecycleUsecase interface {
	ConfirmPickup(ctx context.Context, requestID, staffID int64, in lifecycle.PickupInput) (lifecycle.PickupResult, error)
	ConfirmDelivery(ctx context.Context, requestID, staffID int64, staffName string, in lifecycle.DeliveryInput) (lifecycle.DeliveryResult, error)
	AssignVaultOfficer(ctx context.Context, requestID, callerID, officerID int64, officerName string) (*domain.Request, error)
	WorkList(ctx context.Context, staffID int64, status domain.Status) ([]domain.Request, error)
	Details(ctx context.Context, requestID, callerID int64) (*domain.Request, error)
}

// NewLifecycleUsecase wires a lifecycle Service into a lifecycleUsecase.
func NewLifecycleUsecase(svc *lifecycle.Service) lifecycleUsecase {
	return svc
}
