package lifecycle_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okwama/bm-server/internal/apperr"
	"github.com/okwama/bm-server/internal/domain"
)

func TestWorkList_RejectsNonLifecycleStatus(t *testing.T) {
	t.Parallel()

	svc := newService(&stubRepo{}, &recNotifier{})

	for _, status := range []domain.Status{domain.StatusUnscheduled, domain.StatusCancelled, domain.Status(99)} {
		_, err := svc.WorkList(context.Background(), 3, status)
		require.ErrorIs(t, err, apperr.ErrInvalid, "status %d", status)
	}
}

func TestWorkList_ReturnsAssignedRequests(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{list: []domain.Request{{ID: 2}, {ID: 1}}}
	svc := newService(repo, &recNotifier{})

	got, err := svc.WorkList(context.Background(), 3, domain.StatusPending)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, int64(2), got[0].ID)
}

func TestDetails_OwnerOnly(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{byID: atmRequest()}
	svc := newService(repo, &recNotifier{})

	got, err := svc.Details(context.Background(), 11, 5)
	require.NoError(t, err)
	require.Equal(t, int64(11), got.ID)

	_, err = svc.Details(context.Background(), 11, 999)
	require.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestDetails_NotFound(t *testing.T) {
	t.Parallel()

	svc := newService(&stubRepo{}, &recNotifier{})

	_, err := svc.Details(context.Background(), 404, 5)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
