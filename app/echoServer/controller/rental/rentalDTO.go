package rental

import "time"

type CreateRentalReq struct {
	CarID              string    `json:"carId" validate:"required"`
	StartDate          time.Time `json:"startDate" validate:"required"`
	EndDate            time.Time `json:"endDate" validate:"required"`
	PickupLocation     string    `json:"pickupLocation" validate:"required"`
	DropoffLocation    string    `json:"dropoffLocation" validate:"required"`
	AdditionalRequests string    `json:"additionalRequests"`
}

type CheckAvailabilityReq struct {
	CarID     string    `json:"carId" validate:"required"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
}

type UpdateStatusReq struct {
	Status string `json:"status" validate:"required"`
}

type UpdatePaymentStatusReq struct {
	PaymentStatus string `json:"paymentStatus" validate:"required"`
}
