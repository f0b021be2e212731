package handlers

import (
	"errors"
	"net/http"

	"github.com/okwama/bm-server/internal/apperr"
	"github.com/okwama/bm-server/internal/domain"
	mw "github.com/okwama/bm-server/internal/http/middleware"
	"github.com/okwama/bm-server/internal/logx"
	"github.com/okwama/bm-server/internal/service/lifecycle"
)

// RequestHandler handles HTTP requests for the request lifecycle.
type RequestHandler struct {
	usecase lifecycleUsecase
	logger  logx.Logger
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(logger logx.Logger, uc lifecycleUsecase) *RequestHandler {
	return &RequestHandler{usecase: uc, logger: logger}
}

// ConfirmPickup handles POST /requests/{id}/confirm-pickup.
func (h *RequestHandler) ConfirmPickup(w http.ResponseWriter, r *http.Request) {
	caller, ok := mw.CallerFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid request id")
		return
	}

	var body confirmPickupRequest
	if ok := decodeJSON(h.logger, w, r, &body); !ok {
		return
	}

	res, err := h.usecase.ConfirmPickup(r.Context(), id, caller.ID, lifecycle.PickupInput{
		CashCount:     body.CashCount.toDomain(),
		ImageURL:      body.ImageURL,
		AtmID:         body.AtmID,
		CounterNumber: body.CounterNumber,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, pickupResultToResponse(res))
}

// ConfirmDelivery handles POST /requests/{id}/confirm-delivery.
func (h *RequestHandler) ConfirmDelivery(w http.ResponseWriter, r *http.Request) {
	caller, ok := mw.CallerFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid request id")
		return
	}

	var body confirmDeliveryRequest
	if ok := decodeJSON(h.logger, w, r, &body); !ok {
		return
	}

	res, err := h.usecase.ConfirmDelivery(r.Context(), id, caller.ID, caller.Name, lifecycle.DeliveryInput{
		BankDetails:   body.BankDetails,
		CounterNumber: body.CounterNumber,
		Latitude:      body.Latitude,
		Longitude:     body.Longitude,
		Notes:         body.Notes,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryResultToResponse(res))
}

// AssignVaultOfficer handles POST /requests/{id}/assign-vault-officer.
func (h *RequestHandler) AssignVaultOfficer(w http.ResponseWriter, r *http.Request) {
	caller, ok := mw.CallerFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid request id")
		return
	}

	var body assignVaultOfficerRequest
	if ok := decodeJSON(h.logger, w, r, &body); !ok {
		return
	}

	req, err := h.usecase.AssignVaultOfficer(r.Context(), id, caller.ID, body.OfficerID, body.OfficerName)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, requestToDTO(req))
}

// ListPending handles GET /requests/pending.
func (h *RequestHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, domain.StatusPending)
}

// ListInProgress handles GET /requests/in-progress.
func (h *RequestHandler) ListInProgress(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, domain.StatusInProgress)
}

// ListCompleted handles GET /requests/completed.
func (h *RequestHandler) ListCompleted(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, domain.StatusCompleted)
}

func (h *RequestHandler) list(w http.ResponseWriter, r *http.Request, status domain.Status) {
	caller, ok := mw.CallerFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	reqs, err := h.usecase.WorkList(r.Context(), caller.ID, status)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, requestsToDTO(reqs))
}

// Details handles GET /requests/{id}.
func (h *RequestHandler) Details(w http.ResponseWriter, r *http.Request) {
	caller, ok := mw.CallerFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid request id")
		return
	}

	req, err := h.usecase.Details(r.Context(), id, caller.ID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, requestToDTO(req))
}

func (h *RequestHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrInvalidState):
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "request not found")
	case errors.Is(err, apperr.ErrForbidden):
		writeError(h.logger, w, r, http.StatusForbidden, "not allowed for this request")
	case errors.Is(err, apperr.ErrTimeout):
		writeError(h.logger, w, r, http.StatusRequestTimeout, "operation timed out, it may still have completed")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "duplicate record")
	case errors.Is(err, apperr.ErrUnavailable):
		writeError(h.logger, w, r, http.StatusServiceUnavailable, "service unavailable")
	default:
		h.logger.Error("unhandled usecase error",
			logx.String("req_id", reqID(r.Context())),
			logx.Err(err),
		)
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
