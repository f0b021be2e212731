package domain

import "time"

// CashCountRecord persists the denomination breakdown captured at pickup.
// Created at most once per request, only for ATM-loading pickups.
type CashCountRecord struct {
	ID        int64
	RequestID int64
	StaffID   int64
	CashCount
	TotalAmount int64
	ImageURL    *string
	CreatedAt   time.Time
}

// AtmCounterRecord links a physical ATM and its counter number to a request.
type AtmCounterRecord struct {
	ID              int64
	AtmID           int64
	ClientID        int64
	CounterNumber   string
	TeamID          int64
	CrewCommanderID int64
	RequestID       int64
	Date            time.Time
}

// DeliveryCompletionRecord captures who completed a delivery and where.
// There is at most one per request; repeats update the existing record.
type DeliveryCompletionRecord struct {
	ID              int64
	RequestID       int64
	CompletedByID   int64
	CompletedByName string
	BankDetails     *string
	Latitude        float64
	Longitude       float64
	Status          string
	IsVaultOfficer  bool
	Notes           *string
	CompletedAt     time.Time
}

// DeliveryCompletionStatus is the only status a completion record carries.
const DeliveryCompletionStatus = "completed"
