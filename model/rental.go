// model/rental.go
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RentalStatus string

const (
	RentalPending   RentalStatus = "pending"
	RentalConfirmed RentalStatus = "confirmed"
	RentalActive    RentalStatus = "active"
	RentalCompleted RentalStatus = "completed"
	RentalCancelled RentalStatus = "cancelled"
)

func (s RentalStatus) Valid() bool {
	switch s {
	case RentalPending, RentalConfirmed, RentalActive, RentalCompleted, RentalCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}

type Rental struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID             primitive.ObjectID `bson:"user" json:"userId"`
	CarID              primitive.ObjectID `bson:"car" json:"carId"`
	StartDate          time.Time          `bson:"startDate" json:"startDate"`
	EndDate            time.Time          `bson:"endDate" json:"endDate"`
	TotalPrice         float64            `bson:"totalPrice" json:"totalPrice"`
	Status             RentalStatus       `bson:"status" json:"status"`
	PaymentStatus      PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	PickupLocation     string             `bson:"pickupLocation" json:"pickupLocation"`
	DropoffLocation    string             `bson:"dropoffLocation" json:"dropoffLocation"`
	AdditionalRequests string             `bson:"additionalRequests,omitempty" json:"additionalRequests,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
}

// HoldsCar reports whether the rental still occupies its car: cancelled and
// completed rentals release the vehicle, every other status keeps it booked.
func (r Rental) HoldsCar() bool {
	return r.Status != RentalCancelled && r.Status != RentalCompleted
}

// OverlapsRange reports whether the rental period intersects [start, end].
// Bounds are inclusive on both ends, so a rental ending on the requested
// start date still counts as overlapping.
func (r Rental) OverlapsRange(start, end time.Time) bool {
	return !r.StartDate.After(end) && !r.EndDate.Before(start)
}
