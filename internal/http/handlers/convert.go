package handlers

import (
	"github.com/okwama/bm-server/internal/domain"
	"github.com/okwama/bm-server/internal/service/lifecycle"
)

func (p *cashCountPayload) toDomain() *domain.CashCount {
	if p == nil {
		return nil
	}
	return &domain.CashCount{
		Ones:         p.Ones,
		Fives:        p.Fives,
		Tens:         p.Tens,
		Twenties:     p.Twenties,
		Forties:      p.Forties,
		Fifties:      p.Fifties,
		Hundreds:     p.Hundreds,
		TwoHundreds:  p.TwoHundreds,
		FiveHundreds: p.FiveHundreds,
		Thousands:    p.Thousands,
		SealNumber:   p.SealNumber,
	}
}

func requestToDTO(req *domain.Request) requestDTO {
	return requestDTO{
		ID:               req.ID,
		ServiceTypeID:    req.ServiceTypeID,
		StaffID:          req.StaffID,
		UserID:           req.UserID,
		ClientID:         req.ClientID,
		TeamID:           req.TeamID,
		AtmID:            req.AtmID,
		PickupLocation:   req.PickupLocation,
		DeliveryLocation: req.DeliveryLocation,
		Priority:         req.Priority,
		Status:           req.Status.String(),
		MyStaffID:        req.MyStaffID,
		MyStaffName:      req.MyStaffName,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		CreatedAt:        req.CreatedAt,
		UpdatedAt:        req.UpdatedAt,
	}
}

func requestsToDTO(reqs []domain.Request) requestListResponse {
	out := requestListResponse{Requests: make([]requestDTO, 0, len(reqs))}
	for i := range reqs {
		out.Requests = append(out.Requests, requestToDTO(&reqs[i]))
	}
	return out
}

func cashCountToDTO(rec *domain.CashCountRecord) *cashCountRecordDTO {
	if rec == nil {
		return nil
	}
	return &cashCountRecordDTO{
		ID:          rec.ID,
		RequestID:   rec.RequestID,
		StaffID:     rec.StaffID,
		TotalAmount: rec.TotalAmount,
		SealNumber:  rec.SealNumber,
		ImageURL:    rec.ImageURL,
		CreatedAt:   rec.CreatedAt,
	}
}

func atmCounterToDTO(rec *domain.AtmCounterRecord) *atmCounterDTO {
	if rec == nil {
		return nil
	}
	return &atmCounterDTO{
		ID:            rec.ID,
		AtmID:         rec.AtmID,
		CounterNumber: rec.CounterNumber,
		RequestID:     rec.RequestID,
		Date:          rec.Date,
	}
}

func completionToDTO(rec *domain.DeliveryCompletionRecord) *deliveryCompletionDTO {
	if rec == nil {
		return nil
	}
	return &deliveryCompletionDTO{
		ID:              rec.ID,
		RequestID:       rec.RequestID,
		CompletedByID:   rec.CompletedByID,
		CompletedByName: rec.CompletedByName,
		Latitude:        rec.Latitude,
		Longitude:       rec.Longitude,
		Status:          rec.Status,
		CompletedAt:     rec.CompletedAt,
	}
}

func pickupResultToResponse(res lifecycle.PickupResult) confirmPickupResponse {
	return confirmPickupResponse{
		Request:    requestToDTO(res.Request),
		CashCount:  cashCountToDTO(res.CashCount),
		AtmCounter: atmCounterToDTO(res.AtmCounter),
	}
}

func deliveryResultToResponse(res lifecycle.DeliveryResult) confirmDeliveryResponse {
	return confirmDeliveryResponse{
		Request:    requestToDTO(res.Request),
		Completion: completionToDTO(res.Completion),
		AtmCounter: atmCounterToDTO(res.AtmCounter),
	}
}
