package handlers

import "time"

type cashCountPayload struct {
	Ones         int    `json:"ones"`
	Fives        int    `json:"fives"`
	Tens         int    `json:"tens"`
	Twenties     int    `json:"twenties"`
	Forties      int    `json:"forties"`
	Fifties      int    `json:"fifties"`
	Hundreds     int    `json:"hundreds"`
	TwoHundreds  int    `json:"twoHundreds"`
	FiveHundreds int    `json:"fiveHundreds"`
	Thousands    int    `json:"thousands"`
	SealNumber   string `json:"sealNumber"`
}

type confirmPickupRequest struct {
	CashCount     *cashCountPayload `json:"cashCount,omitempty"`
	ImageURL      string            `json:"imageUrl,omitempty"`
	AtmID         *int64            `json:"atmId,omitempty"`
	CounterNumber string            `json:"counterNumber,omitempty"`
}

type confirmDeliveryRequest struct {
	BankDetails   *string  `json:"bankDetails,omitempty"`
	CounterNumber string   `json:"counterNumber,omitempty"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Notes         *string  `json:"notes,omitempty"`
}

type assignVaultOfficerRequest struct {
	OfficerID   int64  `json:"officerId"`
	OfficerName string `json:"officerName"`
}

type requestDTO struct {
	ID               int64     `json:"id"`
	ServiceTypeID    int64     `json:"serviceTypeId"`
	StaffID          int64     `json:"staffId"`
	UserID           int64     `json:"userId"`
	ClientID         int64     `json:"clientId"`
	TeamID           int64     `json:"teamId"`
	AtmID            *int64    `json:"atmId,omitempty"`
	PickupLocation   string    `json:"pickupLocation"`
	DeliveryLocation string    `json:"deliveryLocation"`
	Priority         string    `json:"priority"`
	Status           string    `json:"status"`
	MyStaffID        *int64    `json:"myStaffId,omitempty"`
	MyStaffName      *string   `json:"myStaffName,omitempty"`
	Latitude         *float64  `json:"latitude,omitempty"`
	Longitude        *float64  `json:"longitude,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type cashCountRecordDTO struct {
	ID          int64     `json:"id"`
	RequestID   int64     `json:"requestId"`
	StaffID     int64     `json:"staffId"`
	TotalAmount int64     `json:"totalAmount"`
	SealNumber  string    `json:"sealNumber"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type atmCounterDTO struct {
	ID            int64     `json:"id"`
	AtmID         int64     `json:"atmId"`
	CounterNumber string    `json:"counterNumber"`
	RequestID     int64     `json:"requestId"`
	Date          time.Time `json:"date"`
}

type deliveryCompletionDTO struct {
	ID              int64     `json:"id"`
	RequestID       int64     `json:"requestId"`
	CompletedByID   int64     `json:"completedById"`
	CompletedByName string    `json:"completedByName"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	Status          string    `json:"status"`
	CompletedAt     time.Time `json:"completedAt"`
}

type confirmPickupResponse struct {
	Request    requestDTO          `json:"request"`
	CashCount  *cashCountRecordDTO `json:"cashCount,omitempty"`
	AtmCounter *atmCounterDTO      `json:"atmCounter,omitempty"`
}

type confirmDeliveryResponse struct {
	Request    requestDTO             `json:"request"`
	Completion *deliveryCompletionDTO `json:"completion,omitempty"`
	AtmCounter *atmCounterDTO         `json:"atmCounter,omitempty"`
}

type requestListResponse struct {
	Requests []requestDTO `json:"requests"`
}
