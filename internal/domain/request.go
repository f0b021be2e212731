package domain

import "time"

// ServiceTypeATMLoading is the service type whose pickups carry cash counts
// and ATM counter assignments.
const ServiceTypeATMLoading int64 = 4

// Request represents one courier/security pickup-and-delivery job.
type Request struct {
	ID               int64
	ServiceTypeID    int64
	StaffID          int64
	UserID           int64
	ClientID         int64
	TeamID           int64
	AtmID            *int64
	PickupLocation   string
	DeliveryLocation string
	Priority         string
	Status           Status
	MyStaffID        *int64
	MyStaffName      *string
	Latitude         *float64
	Longitude        *float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsATMLoading reports whether the request belongs to the ATM-loading service.
func (r *Request) IsATMLoading() bool {
	return r.ServiceTypeID == ServiceTypeATMLoading
}
