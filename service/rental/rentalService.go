package rentalsvc

import (
	"context"
	"errors"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anithasandrine/Kigali-LUXURY-Cars/model"
)

// errors used by controllers

type ErrCode string

const (
	ErrRentalNotFound ErrCode = "RENTAL_NOT_FOUND"
	ErrCarNotFound    ErrCode = "CAR_NOT_FOUND"
	ErrCarUnavailable ErrCode = "CAR_UNAVAILABLE"
	ErrInvalidDates   ErrCode = "INVALID_DATES"
	ErrInvalidStatus  ErrCode = "INVALID_STATUS"
	ErrNotOwner       ErrCode = "NOT_OWNER"
	ErrNotCancellable ErrCode = "NOT_CANCELLABLE"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Requester identifies who is calling for ownership/role checks.
type Requester struct {
	ID   primitive.ObjectID
	Role string
}

func (r Requester) IsAdmin() bool { return r.Role == model.RoleAdmin }

// canAccess is the single authorization policy for rental resources:
// admins see everything, customers only their own rentals.
func canAccess(req Requester, rental *model.Rental) bool {
	return req.IsAdmin() || rental.UserID == req.ID
}

// dto

type CreateInput struct {
	CarID              string
	StartDate          time.Time
	EndDate            time.Time
	PickupLocation     string
	DropoffLocation    string
	AdditionalRequests string
}

// Detail is a rental joined with its car and, for admin listings, the
// owning customer's contact summary.
type Detail struct {
	model.Rental
	Car      *model.Car         `json:"car,omitempty"`
	Customer *model.UserSummary `json:"customer,omitempty"`
}

type Availability struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

type RentalRepo interface {
	Insert(ctx context.Context, rental *model.Rental) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Rental, error)
	FindAll(ctx context.Context) ([]model.Rental, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Rental, error)
	FindByCar(ctx context.Context, carID primitive.ObjectID) ([]model.Rental, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status model.RentalStatus) (*model.Rental, error)
	UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, ps model.PaymentStatus) (*model.Rental, error)
}

type CarRepo interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Car, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.Car, error)
	Reserve(ctx context.Context, id primitive.ObjectID) (bool, error)
	SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error
}

type UserRepo interface {
	FindSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.UserSummary, error)
}

type Service interface {
	// Create books a car for the date range, reserving its availability flag.
	Create(ctx context.Context, userID primitive.ObjectID, in CreateInput) (*Detail, error)

	// CheckAvailability is read-only; it does not hold the slot.
	CheckAvailability(ctx context.Context, carID string, start, end time.Time) (*Availability, error)

	UpdateStatus(ctx context.Context, rentalID string, status model.RentalStatus) (*Detail, error)
	UpdatePaymentStatus(ctx context.Context, rentalID string, ps model.PaymentStatus) (*Detail, error)

	// Cancel is the customer self-service path; only pending or confirmed
	// rentals can be cancelled this way.
	Cancel(ctx context.Context, req Requester, rentalID string) (*Detail, error)

	List(ctx context.Context) ([]Detail, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]Detail, error)
	Get(ctx context.Context, req Requester, rentalID string) (*Detail, error)
}

// ----- Service implementation -----

type service struct {
	rentals RentalRepo
	cars    CarRepo
	users   UserRepo
}

func New(rentals RentalRepo, cars CarRepo, users UserRepo) Service {
	return &service{rentals: rentals, cars: cars, users: users}
}

// rentalDays charges any started day in full, minimum one day.
func rentalDays(start, end time.Time) int {
	d := int(math.Ceil(end.Sub(start).Hours() / 24))
	if d < 1 {
		d = 1
	}
	return d
}

func (s *service) Create(ctx context.Context, userID primitive.ObjectID, in CreateInput) (*Detail, error) {
	carID, err := primitive.ObjectIDFromHex(in.CarID)
	if err != nil {
		return nil, makeErr(ErrCarNotFound)
	}

	car, err := s.cars.FindByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, makeErr(ErrCarNotFound)
	}
	if !car.Available {
		return nil, makeErr(ErrCarUnavailable)
	}
	if !in.EndDate.After(in.StartDate) {
		return nil, makeErr(ErrInvalidDates)
	}

	total := float64(rentalDays(in.StartDate, in.EndDate)) * car.PricePerDay

	// Conditional write: only one concurrent booking can win the flag.
	reserved, err := s.cars.Reserve(ctx, carID)
	if err != nil {
		return nil, err
	}
	if !reserved {
		return nil, makeErr(ErrCarUnavailable)
	}

	rental := &model.Rental{
		UserID:             userID,
		CarID:              carID,
		StartDate:          in.StartDate,
		EndDate:            in.EndDate,
		TotalPrice:         total,
		Status:             model.RentalPending,
		PaymentStatus:      model.PaymentPending,
		PickupLocation:     in.PickupLocation,
		DropoffLocation:    in.DropoffLocation,
		AdditionalRequests: in.AdditionalRequests,
		CreatedAt:          time.Now().UTC(),
	}
	if err := s.rentals.Insert(ctx, rental); err != nil {
		// do not strand the car behind a rental that was never written
		_ = s.cars.SetAvailability(ctx, carID, true)
		return nil, err
	}

	car.Available = false
	return &Detail{Rental: *rental, Car: car}, nil
}

func (s *service) CheckAvailability(ctx context.Context, carID string, start, end time.Time) (*Availability, error) {
	id, err := primitive.ObjectIDFromHex(carID)
	if err != nil {
		return nil, makeErr(ErrCarNotFound)
	}
	car, err := s.cars.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, makeErr(ErrCarNotFound)
	}
	if !car.Available {
		return &Availability{Available: false, Message: "Car is currently not available for rental"}, nil
	}

	rentals, err := s.rentals.FindByCar(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, r := range rentals {
		if r.HoldsCar() && r.OverlapsRange(start, end) {
			return &Availability{Available: false, Message: "Car is not available for the selected dates"}, nil
		}
	}
	return &Availability{Available: true, Message: "Car is available for the selected dates"}, nil
}

func (s *service) UpdateStatus(ctx context.Context, rentalID string, status model.RentalStatus) (*Detail, error) {
	if !status.Valid() {
		return nil, makeErr(ErrInvalidStatus)
	}
	id, err := primitive.ObjectIDFromHex(rentalID)
	if err != nil {
		return nil, makeErr(ErrRentalNotFound)
	}
	rental, err := s.rentals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, makeErr(ErrRentalNotFound)
	}

	if status == model.RentalCancelled || status == model.RentalCompleted {
		s.releaseCar(ctx, rental.CarID)
	}

	updated, err := s.rentals.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, makeErr(ErrRentalNotFound)
	}
	return s.withCar(ctx, updated)
}

func (s *service) UpdatePaymentStatus(ctx context.Context, rentalID string, ps model.PaymentStatus) (*Detail, error) {
	if !ps.Valid() {
		return nil, makeErr(ErrInvalidStatus)
	}
	id, err := primitive.ObjectIDFromHex(rentalID)
	if err != nil {
		return nil, makeErr(ErrRentalNotFound)
	}
	updated, err := s.rentals.UpdatePaymentStatus(ctx, id, ps)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, makeErr(ErrRentalNotFound)
	}
	return s.withCar(ctx, updated)
}

func (s *service) Cancel(ctx context.Context, req Requester, rentalID string) (*Detail, error) {
	id, err := primitive.ObjectIDFromHex(rentalID)
	if err != nil {
		return nil, makeErr(ErrRentalNotFound)
	}
	rental, err := s.rentals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, makeErr(ErrRentalNotFound)
	}
	if !canAccess(req, rental) {
		return nil, makeErr(ErrNotOwner)
	}
	if rental.Status != model.RentalPending && rental.Status != model.RentalConfirmed {
		return nil, makeErr(ErrNotCancellable)
	}

	s.releaseCar(ctx, rental.CarID)

	updated, err := s.rentals.UpdateStatus(ctx, id, model.RentalCancelled)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, makeErr(ErrRentalNotFound)
	}
	return s.withCar(ctx, updated)
}

func (s *service) List(ctx context.Context) ([]Detail, error) {
	rentals, err := s.rentals.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.join(ctx, rentals, true)
}

func (s *service) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]Detail, error) {
	rentals, err := s.rentals.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.join(ctx, rentals, false)
}

func (s *service) Get(ctx context.Context, req Requester, rentalID string) (*Detail, error) {
	id, err := primitive.ObjectIDFromHex(rentalID)
	if err != nil {
		return nil, makeErr(ErrRentalNotFound)
	}
	rental, err := s.rentals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, makeErr(ErrRentalNotFound)
	}
	if !canAccess(req, rental) {
		return nil, makeErr(ErrNotOwner)
	}

	detail, err := s.withCar(ctx, rental)
	if err != nil {
		return nil, err
	}
	summaries, err := s.users.FindSummaries(ctx, []primitive.ObjectID{rental.UserID})
	if err != nil {
		return nil, err
	}
	if sum, ok := summaries[rental.UserID]; ok {
		detail.Customer = &sum
	}
	return detail, nil
}

// releaseCar frees the car behind a rental, best-effort: a missing car must
// not fail the status change that triggered the release.
func (s *service) releaseCar(ctx context.Context, carID primitive.ObjectID) {
	car, err := s.cars.FindByID(ctx, carID)
	if err != nil || car == nil {
		return
	}
	_ = s.cars.SetAvailability(ctx, carID, true)
}

func (s *service) withCar(ctx context.Context, rental *model.Rental) (*Detail, error) {
	car, err := s.cars.FindByID(ctx, rental.CarID)
	if err != nil {
		return nil, err
	}
	return &Detail{Rental: *rental, Car: car}, nil
}

func (s *service) join(ctx context.Context, rentals []model.Rental, withUsers bool) ([]Detail, error) {
	carIDs := make([]primitive.ObjectID, 0, len(rentals))
	userIDs := make([]primitive.ObjectID, 0, len(rentals))
	for _, r := range rentals {
		carIDs = append(carIDs, r.CarID)
		userIDs = append(userIDs, r.UserID)
	}
	cars, err := s.cars.FindByIDs(ctx, carIDs)
	if err != nil {
		return nil, err
	}
	var users map[primitive.ObjectID]model.UserSummary
	if withUsers {
		if users, err = s.users.FindSummaries(ctx, userIDs); err != nil {
			return nil, err
		}
	}

	out := make([]Detail, 0, len(rentals))
	for _, r := range rentals {
		d := Detail{Rental: r}
		if car, ok := cars[r.CarID]; ok {
			carCopy := car
			d.Car = &carCopy
		}
		if sum, ok := users[r.UserID]; ok {
			sumCopy := sum
			d.Customer = &sumCopy
		}
		out = append(out, d)
	}
	return out, nil
}
