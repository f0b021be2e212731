package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/okwama/bm-server/internal/apperr"
	"github.com/okwama/bm-server/internal/domain"
	mw "github.com/okwama/bm-server/internal/http/middleware"
	"github.com/okwama/bm-server/internal/service/lifecycle"
	testlog "github.com/okwama/bm-server/internal/testutil"
)

type stubUsecase struct {
	pickupFn   func(ctx context.Context, requestID, staffID int64, in lifecycle.PickupInput) (lifecycle.PickupResult, error)
	deliveryFn func(ctx context.Context, requestID, staffID int64, staffName string, in lifecycle.DeliveryInput) (lifecycle.DeliveryResult, error)
	assignFn   func(ctx context.Context, requestID, callerID, officerID int64, officerName string) (*domain.Request, error)
	workListFn func(ctx context.Context, staffID int64, status domain.Status) ([]domain.Request, error)
	detailsFn  func(ctx context.Context, requestID, callerID int64) (*domain.Request, error)
}

func (s *stubUsecase) ConfirmPickup(ctx context.Context, requestID, staffID int64, in lifecycle.PickupInput) (lifecycle.PickupResult, error) {
	return s.pickupFn(ctx, requestID, staffID, in)
}

func (s *stubUsecase) ConfirmDelivery(ctx context.Context, requestID, staffID int64, staffName string, in lifecycle.DeliveryInput) (lifecycle.DeliveryResult, error) {
	return s.deliveryFn(ctx, requestID, staffID, staffName, in)
}

func (s *stubUsecase) AssignVaultOfficer(ctx context.Context, requestID, callerID, officerID int64, officerName string) (*domain.Request, error) {
	return s.assignFn(ctx, requestID, callerID, officerID, officerName)
}

func (s *stubUsecase) WorkList(ctx context.Context, staffID int64, status domain.Status) ([]domain.Request, error) {
	return s.workListFn(ctx, staffID, status)
}

func (s *stubUsecase) Details(ctx context.Context, requestID, callerID int64) (*domain.Request, error) {
	return s.detailsFn(ctx, requestID, callerID)
}

func requestRoutes(uc lifecycleUsecase) http.Handler {
	h := NewRequestHandler(testlog.New().Logger(), uc)
	r := chi.NewRouter()
	r.Use(mw.Identity(mw.HeaderAuthenticator{}))
	r.Get("/requests/pending", h.ListPending)
	r.Get("/requests/{id}", h.Details)
	r.Post("/requests/{id}/confirm-pickup", h.ConfirmPickup)
	r.Post("/requests/{id}/confirm-delivery", h.ConfirmDelivery)
	r.Post("/requests/{id}/assign-vault-officer", h.AssignVaultOfficer)
	return r
}

func asStaff(r *http.Request, id int64, name string) *http.Request {
	r.Header.Set("X-User-Id", fmt.Sprintf("%d", id))
	r.Header.Set("X-User-Name", name)
	r.Header.Set("X-User-Role", "STAFF")
	return r
}

func TestConfirmPickup_ReturnsRecords(t *testing.T) {
	t.Parallel()

	uc := &stubUsecase{
		pickupFn: func(_ context.Context, requestID, staffID int64, in lifecycle.PickupInput) (lifecycle.PickupResult, error) {
			require.Equal(t, int64(11), requestID)
			require.Equal(t, int64(3), staffID)
			require.NotNil(t, in.CashCount)
			require.Equal(t, 2, in.CashCount.Tens)
			require.Equal(t, "C3", in.CounterNumber)
			return lifecycle.PickupResult{
				Request:   &domain.Request{ID: requestID, Status: domain.StatusInProgress},
				CashCount: &domain.CashCountRecord{ID: 1, RequestID: requestID, TotalAmount: 20},
			}, nil
		},
	}

	body := `{"cashCount":{"tens":2,"sealNumber":"S-1"},"atmId":7,"counterNumber":"C3"}`
	req := asStaff(httptest.NewRequest(http.MethodPost, "/requests/11/confirm-pickup", strings.NewReader(body)), 3, "J. Doe")
	rr := httptest.NewRecorder()
	requestRoutes(uc).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp confirmPickupResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "in_progress", resp.Request.Status)
	require.NotNil(t, resp.CashCount)
	require.Equal(t, int64(20), resp.CashCount.TotalAmount)
	require.Nil(t, resp.AtmCounter)
}

func TestConfirmPickup_RequiresIdentity(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/requests/11/confirm-pickup", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	requestRoutes(&stubUsecase{}).ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestConfirmPickup_RejectsBadID(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"0", "-4", "abc"} {
		req := asStaff(httptest.NewRequest(http.MethodPost, "/requests/"+id+"/confirm-pickup", strings.NewReader(`{}`)), 3, "J. Doe")
		rr := httptest.NewRecorder()
		requestRoutes(&stubUsecase{}).ServeHTTP(rr, req)
		require.Equal(t, http.StatusBadRequest, rr.Code, "id %q", id)
	}
}

func TestConfirmPickup_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	body := `{"cashCount":{"tens":2},"surprise":true}`
	req := asStaff(httptest.NewRequest(http.MethodPost, "/requests/11/confirm-pickup", strings.NewReader(body)), 3, "J. Doe")
	rr := httptest.NewRecorder()
	requestRoutes(&stubUsecase{}).ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Contains(t, rr.Body.String(), "invalid json")
}

func TestRespondError_StatusMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("bad input: %w", apperr.ErrInvalid), http.StatusBadRequest},
		{fmt.Errorf("wrong state: %w", apperr.ErrInvalidState), http.StatusBadRequest},
		{fmt.Errorf("missing: %w", apperr.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("nope: %w", apperr.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("slow: %w", apperr.ErrTimeout), http.StatusRequestTimeout},
		{fmt.Errorf("dup: %w", apperr.ErrConflict), http.StatusConflict},
		{fmt.Errorf("down: %w", apperr.ErrUnavailable), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		uc := &stubUsecase{
			pickupFn: func(context.Context, int64, int64, lifecycle.PickupInput) (lifecycle.PickupResult, error) {
				return lifecycle.PickupResult{}, tc.err
			},
		}
		req := asStaff(httptest.NewRequest(http.MethodPost, "/requests/11/confirm-pickup", strings.NewReader(`{}`)), 3, "J. Doe")
		rr := httptest.NewRecorder()
		requestRoutes(uc).ServeHTTP(rr, req)
		require.Equal(t, tc.want, rr.Code, "error %v", tc.err)

		var resp errResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Error)
	}
}

func TestConfirmDelivery_PassesCallerName(t *testing.T) {
	t.Parallel()

	uc := &stubUsecase{
		deliveryFn: func(_ context.Context, requestID, staffID int64, staffName string, in lifecycle.DeliveryInput) (lifecycle.DeliveryResult, error) {
			require.Equal(t, "J. Doe", staffName)
			require.NotNil(t, in.Latitude)
			return lifecycle.DeliveryResult{
				Request:    &domain.Request{ID: requestID, Status: domain.StatusCompleted},
				Completion: &domain.DeliveryCompletionRecord{RequestID: requestID, CompletedByID: staffID, Status: domain.DeliveryCompletionStatus},
			}, nil
		},
	}

	body := `{"latitude":-1.29,"longitude":36.82}`
	req := asStaff(httptest.NewRequest(http.MethodPost, "/requests/11/confirm-delivery", strings.NewReader(body)), 3, "J. Doe")
	rr := httptest.NewRecorder()
	requestRoutes(uc).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp confirmDeliveryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "completed", resp.Request.Status)
	require.NotNil(t, resp.Completion)
}

func TestAssignVaultOfficer_ReturnsUpdatedRequest(t *testing.T) {
	t.Parallel()

	uc := &stubUsecase{
		assignFn: func(_ context.Context, requestID, callerID, officerID int64, officerName string) (*domain.Request, error) {
			require.Equal(t, int64(77), officerID)
			require.Equal(t, "V. Officer", officerName)
			return &domain.Request{ID: requestID, MyStaffID: &officerID, MyStaffName: &officerName, Status: domain.StatusPending}, nil
		},
	}

	body := `{"officerId":77,"officerName":"V. Officer"}`
	req := asStaff(httptest.NewRequest(http.MethodPost, "/requests/11/assign-vault-officer", strings.NewReader(body)), 5, "Owner")
	rr := httptest.NewRecorder()
	requestRoutes(uc).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp requestDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.MyStaffID)
	require.Equal(t, int64(77), *resp.MyStaffID)
}

func TestListPending_ScopedToCaller(t *testing.T) {
	t.Parallel()

	uc := &stubUsecase{
		workListFn: func(_ context.Context, staffID int64, status domain.Status) ([]domain.Request, error) {
			require.Equal(t, int64(3), staffID)
			require.Equal(t, domain.StatusPending, status)
			return []domain.Request{{ID: 2, Status: domain.StatusPending}, {ID: 1, Status: domain.StatusPending}}, nil
		},
	}

	req := asStaff(httptest.NewRequest(http.MethodGet, "/requests/pending", nil), 3, "J. Doe")
	rr := httptest.NewRecorder()
	requestRoutes(uc).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp requestListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Requests, 2)
	require.Equal(t, int64(2), resp.Requests[0].ID)
}

func TestDetails_NotFound(t *testing.T) {
	t.Parallel()

	uc := &stubUsecase{
		detailsFn: func(context.Context, int64, int64) (*domain.Request, error) {
			return nil, fmt.Errorf("request 404: %w", apperr.ErrNotFound)
		},
	}

	req := asStaff(httptest.NewRequest(http.MethodGet, "/requests/404", nil), 3, "J. Doe")
	rr := httptest.NewRecorder()
	requestRoutes(uc).ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
}
