// service/rental/rental_service_test.go
package rentalsvc_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anithasandrine/Kigali-LUXURY-Cars/model"
	rentalsvc "github.com/anithasandrine/Kigali-LUXURY-Cars/service/rental"
)

// --- mocks ---

type rentalRepoMock struct {
	insertFn        func(ctx context.Context, r *model.Rental) error
	findByIDFn      func(ctx context.Context, id primitive.ObjectID) (*model.Rental, error)
	findAllFn       func(ctx context.Context) ([]model.Rental, error)
	findByUserFn    func(ctx context.Context, userID primitive.ObjectID) ([]model.Rental, error)
	findByCarFn     func(ctx context.Context, carID primitive.ObjectID) ([]model.Rental, error)
	updateStatusFn  func(ctx context.Context, id primitive.ObjectID, s model.RentalStatus) (*model.Rental, error)
	updatePaymentFn func(ctx context.Context, id primitive.ObjectID, ps model.PaymentStatus) (*model.Rental, error)
}

var _ rentalsvc.RentalRepo = (*rentalRepoMock)(nil)

func (m *rentalRepoMock) Insert(ctx context.Context, r *model.Rental) error {
	if m.insertFn == nil {
		return nil
	}
	return m.insertFn(ctx, r)
}
func (m *rentalRepoMock) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Rental, error) {
	if m.findByIDFn == nil {
		return nil, nil
	}
	return m.findByIDFn(ctx, id)
}
func (m *rentalRepoMock) FindAll(ctx context.Context) ([]model.Rental, error) {
	if m.findAllFn == nil {
		return nil, nil
	}
	return m.findAllFn(ctx)
}
func (m *rentalRepoMock) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Rental, error) {
	if m.findByUserFn == nil {
		return nil, nil
	}
	return m.findByUserFn(ctx, userID)
}
func (m *rentalRepoMock) FindByCar(ctx context.Context, carID primitive.ObjectID) ([]model.Rental, error) {
	if m.findByCarFn == nil {
		return nil, nil
	}
	return m.findByCarFn(ctx, carID)
}
func (m *rentalRepoMock) UpdateStatus(ctx context.Context, id primitive.ObjectID, s model.RentalStatus) (*model.Rental, error) {
	if m.updateStatusFn == nil {
		return nil, nil
	}
	return m.updateStatusFn(ctx, id, s)
}
func (m *rentalRepoMock) UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, ps model.PaymentStatus) (*model.Rental, error) {
	if m.updatePaymentFn == nil {
		return nil, nil
	}
	return m.updatePaymentFn(ctx, id, ps)
}

type carRepoMock struct {
	findByIDFn        func(ctx context.Context, id primitive.ObjectID) (*model.Car, error)
	findByIDsFn       func(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.Car, error)
	reserveFn         func(ctx context.Context, id primitive.ObjectID) (bool, error)
	setAvailabilityFn func(ctx context.Context, id primitive.ObjectID, available bool) error
}

var _ rentalsvc.CarRepo = (*carRepoMock)(nil)

func (m *carRepoMock) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Car, error) {
	if m.findByIDFn == nil {
		return nil, nil
	}
	return m.findByIDFn(ctx, id)
}
func (m *carRepoMock) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.Car, error) {
	if m.findByIDsFn == nil {
		return map[primitive.ObjectID]model.Car{}, nil
	}
	return m.findByIDsFn(ctx, ids)
}
func (m *carRepoMock) Reserve(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if m.reserveFn == nil {
		return true, nil
	}
	return m.reserveFn(ctx, id)
}
func (m *carRepoMock) SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error {
	if m.setAvailabilityFn == nil {
		return nil
	}
	return m.setAvailabilityFn(ctx, id, available)
}

type userRepoMock struct {
	findSummariesFn func(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.UserSummary, error)
}

var _ rentalsvc.UserRepo = (*userRepoMock)(nil)

func (m *userRepoMock) FindSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.UserSummary, error) {
	if m.findSummariesFn == nil {
		return map[primitive.ObjectID]model.UserSummary{}, nil
	}
	return m.findSummariesFn(ctx, ids)
}

// --- helpers ---

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func availableCar(id primitive.ObjectID, price float64) *model.Car {
	return &model.Car{ID: id, Make: "Mercedes-Benz", Model: "S-Class", Year: 2023, PricePerDay: price, Available: true}
}

func createInput(carID primitive.ObjectID, start, end time.Time) rentalsvc.CreateInput {
	return rentalsvc.CreateInput{
		CarID:           carID.Hex(),
		StartDate:       start,
		EndDate:         end,
		PickupLocation:  "Kigali Airport",
		DropoffLocation: "Downtown",
	}
}

// --- Create ---

func TestCreate_ComputesTotalPrice(t *testing.T) {
	ctx := context.Background()
	carID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	var inserted *model.Rental
	reserved := false
	rentals := &rentalRepoMock{
		insertFn: func(ctx context.Context, r *model.Rental) error {
			r.ID = primitive.NewObjectID()
			inserted = r
			return nil
		},
	}
	cars := &carRepoMock{
		findByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Car, error) {
			return availableCar(carID, 100), nil
		},
		reserveFn: func(ctx context.Context, id primitive.ObjectID) (bool, error) {
			reserved = true
			return true, nil
		},
	}
	svc := rentalsvc.New(rentals, cars, &userRepoMock{})

	out, err := svc.Create(ctx, userID, createInput(carID, day(1), day(4)))
	require.NoError(t, err)
	require.NotNil(t, inserted)
	require.True(t, reserved)
	require.Equal(t, float64(300), out.TotalPrice)
	require.Equal(t, model.RentalPending, out.Status)
	require.Equal(t, model.PaymentPending, out.PaymentStatus)
	require.Equal(t, userID, out.UserID)
	require.NotNil(t, out.Car)
	require.False(t, out.Car.Available)
}

func TestCreate_RoundsPartialDaysUp(t *testing.T) {
	ctx := context.Background()
	carID := primitive.NewObjectID()

	rentals := &rentalRepoMock{
		insertFn: func(ctx context.Context, r *model.Rental) error { return nil },
	}
	cars := &carRepoMock{
		findByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Car, error) {
			return availableCar(carID, 100), nil
		},
	}
	svc := rentalsvc.New(rentals, cars, &userRepoMock{})

	// 2 days 12 hours charges 3 days
	out, err := svc.Create(ctx, primitive.NewObjectID(),
		createInput(carID, day(1), day(3).Add(12*time.Hour)))
	require.NoError(t, err)
	require.Equal(t, float64(300), out.TotalPrice)

	// under a day still charges one full day
	out, err = svc.Create(ctx, primitive.NewObjectID(),
		createInput(carID, day(1), day(1).Add(6*time.Hour)))
	require.NoError(t, err)
	require.Equal(t, float64(100), out.TotalPrice)
}

func TestCreate_CarNotFound(t *testing.T) {
	ctx := context.Background()
	inserts := 0
	rentals := &rentalRepoMock{
		insertFn: func(ctx context.Context, r *model.Rental) error { inserts++; return nil },
	}
	cars := &carRepoMock{
		findByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Car, error) { return nil, nil },
	}
	svc := rentalsvc.New(rentals, cars, &userRepoMock{})

	_, err := svc.Create(ctx, primitive.NewObjectID(),
		createInput(primitive.NewObjectID(), day(1), day(2)))
	require.Error(t, err)
	require.Equal(t, rentalsvc.ErrCarNotFound, rentalsvc.Code(err))
	require.Zero(t, inserts)
}

func TestCreate_CarUnavailable(t *testing.T) {
	ctx := context.Background()
	carID := primitive.NewObjectID()
	inserts := 0
	rentals := &rentalRepoMock{
		insertFn: func(ctx context.Context, r *model.Rental) error { inserts++; return nil },
	}
	cars := &carRepoMock{
		findByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Car, error) {
			c := availableCar(carID, 100)
			c.Available = false
			return c, nil
		},
	}
	svc := rentalsvc.New(rentals, cars, &userRepoMock{})

	_, err := svc.Create(ctx, primitive.NewObjectID(), createInput(carID, day(1), day(2)))
	require.Error(t, err)
	require.Equal(t, rentalsvc.ErrCarUnavailable, rentalsvc.Code(err))
	require.Zero(t, inserts)
}

func TestCreate_InvalidDates(t *testing.T) {
	ctx := context.Background()
	carID := primitive.NewObjectID()
	cars := &carRepoMock{
		findByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Car, error) {
			return availableCar(carID, 100), nil
		},
	}
	svc := rentalsvc.New(&rentalRepoMock{}, cars, &userRepoMock{})

	_, err := svc.Create(ctx, primitive.NewObjectID(), createInput(carID, day(4), day(1)))
	require.Equal(t, rentalsvc.ErrInvalidDates, rentalsvc.Code(err))

	_, err = svc.Create(ctx, primitive.NewObjectID(), createInput(carID, day(2), day(2)))
	require.Equal(t, rentalsvc.ErrInvalidDates, rentalsvc.Code(err))
}

func TestCreate_LosesReservationRace(t *testing.T) {
	ctx := context.Background()
	carID := primitive.NewObjectID()
	inserts := 0
	rentals := &rentalRepoMock{
		insertFn: func(ctx context.Context, r *model.Rental) error { inserts++; return nil },
	}
	cars := &carRepoMock{
		findByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Car, error) {
			return availableCar(carID, 100), nil
		},
		// another booking won the conditional update first
		reserveFn: func(ctx context.Context, id primitive.ObjectID) (bool, error) { return false, nil },
	}
	svc := rentalsvc.New(rentals, cars, &userRepoMock{})

	_, err := svc.Create(ctx, primitive.NewObjectID(), createInput(carID, day(1), day(2)))
	require.Equal(t, rentalsvc.ErrCarUnavailable, rentalsvc.Code(err))
	require.Zero(t, inserts)
}

func TestCreate_InsertFailureReleasesCar(t *testing.T) {
	ctx := context.Background()
	carID := primitive.NewObjectID()
	released := false
	rentals := &rentalRepoMock{
		insertFn: func(ctx context.Context, r *model.Rental) error { return errors.New("db down") },
	}
	cars := &carRepoMock{
		findByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Car, error) {
			return availableCar(carID, 100), nil
		},
		setAvailabilityFn: func(ctx context.Context, id primitive.ObjectID, available bool) error {
			released = available
			return nil
		},
	}
	svc := rentalsvc.New(rentals, cars, &userRepoMock{})

	_, err := svc.Create(ctx, primitive.NewObjectID(), createInput(carID, day(1), day(2)))
	require.Error(t, err)
	require.Equal(t, rentalsvc.ErrCode(""), rentalsvc.Code(err))
	require.True(t, released)
}

// --- CheckAvailability ---

func TestCheckAvailability_OverlapDetected(t *testing.T) {
	ctx := context.Background()
	carID := primitive.NewObjectID()
	cars := &carRepoMock{
		findByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Car, error) {
			return availableCar(carID, 100), nil
		},
	}
	rentals := &rentalRepoMock{
		findByCarFn: func(ctx context.Context, id primitive.ObjectID) ([]model.Rental, error) {
			return []model.Rental{
				{CarID: carID, Status: model.RentalConfirmed, StartDate: day(1), EndDate: day(3)},
			}, nil
		},
	}
	svc := rentalsvc.New(rentals, cars, &userRepoMock{})

	a, err := svc.CheckAvailability(ctx, carID.Hex(), day(2), day(4))
	require.NoError(t, err)
	require.False(t, a.Available)
}

func TestCheckAvailability_InclusiveBoundary(t *testing.T) {
	ctx := context.Background()
	carID := primitive.NewObjectID()
	cars := &carRepoMock{
		findByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Car, error) {
			return availableCar(carID, 100), nil
		},
	}
	rentals := &rentalRepoMock{
		findByCarFn: func(ctx context.Context, id primitive.ObjectID) ([]model.Rental, error) {
			return []model.Rental{
				{CarID: carID, Status: model.RentalPending, StartDate: day(1), EndDate: day(3)},
			}, nil
		},
	}
	svc := rentalsvc.New(rentals, cars, &userRepoMock{})

	// a request starting exactly on the existing end date still overlaps
	a, err := svc.CheckAvailability(ctx, carID.Hex(), day(3), day(5))
	require.NoError(t, err)
	require.False(t, a.Available)

	// one day past the existing end date is free
	a, err = svc.CheckAvailability(ctx, carID.Hex(), day(4), day(5))
	require.NoError(t, err)
	require.True(t, a.Available)
}

func TestCheckAvailability_IgnoresReleasedRentals(t *testing.T) {
	ctx := context.Background()
	carID := primitive.NewObjectID()
	cars := &carRepoMock{
		findByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Car, error) {
			return availableCar(carID, 100), nil
		},
	}
	rentals := &rentalRepoMock{
		findByCarFn: func(ctx context.Context, id primitive.ObjectID) ([]model.Rental, error) {
			return []model.Rental{
				{CarID: carID, Status: model.RentalCancelled, StartDate: day(1), EndDate: day(3)},
				{CarID: carID, Status: model.RentalCompleted, StartDate: day(2), EndDate: day(5)},
			}, nil
		},
	}
	svc := rentalsvc.New(rentals, cars, &userRepoMock{})

	a, err := svc.CheckAvailability(ctx, carID.Hex(), day(2), day(4))
	require.NoError(t, err)
	require.True(t, a.Available)
}

func TestCheckAvailability_FlagDown(t *testing.T) {
	ctx := context.Background()
	carID := primitive.NewObjectID()
	cars := &carRepoMock{
		findByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Car, error) {
			c := availableCar(carID, 100)
			c.Available = false
			return c, nil
		},
	}
	svc := rentalsvc.New(&rentalRepoMock{}, cars, &userRepoMock{})

	a, err := svc.CheckAvailability(ctx, carID.Hex(), day(1), day(2))
	require.NoError(t, err)
	require.False(t, a.Available)
	require.Contains(t, a.Message, "currently not available")
}

func TestCheckAvailability_CarMissing(t *testing.T) {
	ctx := context.Background()
	svc := rentalsvc.New(&rentalRepoMock{}, &carRepoMock{
		findByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Car, error) { return nil, nil },
	}, &userRepoMock{})

	_, err := svc.CheckAvailability(ctx, primitive.NewObjectID().Hex(), day(1), day(2))
	require.Equal(t, rentalsvc.ErrCarNotFound, rentalsvc.Code(err))
}

// --- UpdateStatus / UpdatePaymentStatus ---

func TestUpdateStatus_InvalidValue(t *testing.T) {
	svc := rentalsvc.New(&rentalRepoMock{}, &carRepoMock{}, &userRepoMock{})
	_, err := svc.UpdateStatus(context.Background(), primitive.NewObjectID().Hex(), "parked")
	require.Equal(t, rentalsvc.ErrInvalidStatus, rentalsvc.Code(err))
}

func TestUpdateStatus_CompletedReleasesCar(t *testing.T) {
	ctx := context.Background()
	carID := primitive.NewObjectID()
	rentalID := primitive.NewObjectID()
	existing := &model.Rental{ID: rentalID, CarID: carID, Status: model.RentalActive}

	var setTo *bool
	rentals := &rentalRepoMock{
		findByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Rental, error) {
			return existing, nil
		},
		updateStatusFn: func(ctx context.Context, id primitive.ObjectID, s model.RentalStatus) (*model.Rental, error) {
			updated := *existing
			updated.Status = s
			return &updated, nil
		},
	}
	cars := &carRepoMock{
		findByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Car, error) {
			return availableCar(carID, 100), nil
		},
		setAvailabilityFn: func(ctx context.Context, id primitive.ObjectID, available bool) error {
			setTo = &available
			return nil
		},
	}
	svc := rentalsvc.New(rentals, cars, &userRepoMock{})

	out, err := svc.UpdateStatus(ctx, rentalID.Hex(), model.RentalCompleted)
	require.NoError(t, err)
	require.Equal(t, model.RentalCompleted, out.Status)
	require.NotNil(t, setTo)
	require.True(t, *setTo)
}

func TestUpdateStatus_ConfirmedKeepsCarHeld(t *testing.T) {
	ctx := context.Background()
	rentalID := primitive.NewObjectID()
	existing := &model.Rental{ID: rentalID, CarID: primitive.NewObjectID(), Status: model.RentalPending}

	released := false
	rentals := &rentalRepoMock{
		findByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Rental, error) {
			return existing, nil
		},
		updateStatusFn: func(ctx context.Context, id primitive.ObjectID, s model.RentalStatus) (*model.Rental, error) {
			updated := *existing
			updated.Status = s
			return &updated, nil
		},
	}
	cars := &carRepoMock{
		setAvailabilityFn: func(ctx context.Context, id primitive.ObjectID, available bool) error {
			released = true
			return nil
		},
	}
	svc := rentalsvc.New(rentals, cars, &userRepoMock{})

	_, err := svc.UpdateStatus(ctx, rentalID.Hex(), model.RentalConfirmed)
	require.NoError(t, err)
	require.False(t, released)
}

func TestUpdateStatus_MissingCarSkipsRelease(t *testing.T) {
	ctx := context.Background()
	rentalID := primitive.NewObjectID()
	existing := &model.Rental{ID: rentalID, CarID: primitive.NewObjectID(), Status: model.RentalActive}

	released := false
	rentals := &rentalRepoMock{
		findByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Rental, error) {
			return existing, nil
		},
		updateStatusFn: func(ctx context.Context, id primitive.ObjectID, s model.RentalStatus) (*model.Rental, error) {
			updated := *existing
			updated.Status = s
			return &updated, nil
		},
	}
	cars := &carRepoMock{
		findByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Car, error) { return nil, nil },
		setAvailabilityFn: func(ctx context.Context, id primitive.ObjectID, available bool) error {
			released = true
			return nil
		},
	}
	svc := rentalsvc.New(rentals, cars, &userRepoMock{})

	// the status change must still land even though the car is gone
	out, err := svc.UpdateStatus(ctx, rentalID.Hex(), model.RentalCancelled)
	require.NoError(t, err)
	require.Equal(t, model.RentalCancelled, out.Status)
	require.False(t, released)
	require.Nil(t, out.Car)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc := rentalsvc.New(&rentalRepoMock{}, &carRepoMock{}, &userRepoMock{})
	_, err := svc.UpdateStatus(context.Background(), primitive.NewObjectID().Hex(), model.RentalConfirmed)
	require.Equal(t, rentalsvc.ErrRentalNotFound, rentalsvc.Code(err))
}

func TestUpdatePaymentStatus(t *testing.T) {
	ctx := context.Background()
	rentalID := primitive.NewObjectID()

	released := false
	rentals := &rentalRepoMock{
		updatePaymentFn: func(ctx context.Context, id primitive.ObjectID, ps model.PaymentStatus) (*model.Rental, error) {
			return &model.Rental{ID: rentalID, CarID: primitive.NewObjectID(), PaymentStatus: ps}, nil
		},
	}
	cars := &carRepoMock{
		setAvailabilityFn: func(ctx context.Context, id primitive.ObjectID, available bool) error {
			released = true
			return nil
		},
	}
	svc := rentalsvc.New(rentals, cars, &userRepoMock{})

	out, err := svc.UpdatePaymentStatus(ctx, rentalID.Hex(), model.PaymentPaid)
	require.NoError(t, err)
	require.Equal(t, model.PaymentPaid, out.PaymentStatus)
	require.False(t, released)

	_, err = svc.UpdatePaymentStatus(ctx, rentalID.Hex(), "wired")
	require.Equal(t, rentalsvc.ErrInvalidStatus, rentalsvc.Code(err))
}

// --- Cancel ---

func cancelFixture(status model.RentalStatus) (*model.Rental, *rentalRepoMock, *carRepoMock, *bool) {
	rentalID := primitive.NewObjectID()
	existing := &model.Rental{
		ID:     rentalID,
		UserID: primitive.NewObjectID(),
		CarID:  primitive.NewObjectID(),
		Status: status,
	}
	released := false
	rentals := &rentalRepoMock{
		findByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Rental, error) {
			return existing, nil
		},
		updateStatusFn: func(ctx context.Context, id primitive.ObjectID, s model.RentalStatus) (*model.Rental, error) {
			updated := *existing
			updated.Status = s
			return &updated, nil
		},
	}
	cars := &carRepoMock{
		findByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Car, error) {
			return availableCar(existing.CarID, 100), nil
		},
		setAvailabilityFn: func(ctx context.Context, id primitive.ObjectID, available bool) error {
			released = available
			return nil
		},
	}
	return existing, rentals, cars, &released
}

func TestCancel_ByOwner(t *testing.T) {
	existing, rentals, cars, released := cancelFixture(model.RentalPending)
	svc := rentalsvc.New(rentals, cars, &userRepoMock{})

	out, err := svc.Cancel(context.Background(),
		rentalsvc.Requester{ID: existing.UserID, Role: model.RoleCustomer}, existing.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, model.RentalCancelled, out.Status)
	require.True(t, *released)
}

func TestCancel_ByAdminNonOwner(t *testing.T) {
	existing, rentals, cars, _ := cancelFixture(model.RentalConfirmed)
	svc := rentalsvc.New(rentals, cars, &userRepoMock{})

	out, err := svc.Cancel(context.Background(),
		rentalsvc.Requester{ID: primitive.NewObjectID(), Role: model.RoleAdmin}, existing.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, model.RentalCancelled, out.Status)
}

func TestCancel_NotOwnerRejected(t *testing.T) {
	existing, rentals, cars, released := cancelFixture(model.RentalPending)
	svc := rentalsvc.New(rentals, cars, &userRepoMock{})

	_, err := svc.Cancel(context.Background(),
		rentalsvc.Requester{ID: primitive.NewObjectID(), Role: model.RoleCustomer}, existing.ID.Hex())
	require.Equal(t, rentalsvc.ErrNotOwner, rentalsvc.Code(err))
	require.False(t, *released)
}

func TestCancel_ActiveRentalRejected(t *testing.T) {
	existing, rentals, cars, released := cancelFixture(model.RentalActive)
	svc := rentalsvc.New(rentals, cars, &userRepoMock{})

	_, err := svc.Cancel(context.Background(),
		rentalsvc.Requester{ID: existing.UserID, Role: model.RoleCustomer}, existing.ID.Hex())
	require.Equal(t, rentalsvc.ErrNotCancellable, rentalsvc.Code(err))
	require.False(t, *released)
}

func TestCancel_NotFound(t *testing.T) {
	svc := rentalsvc.New(&rentalRepoMock{}, &carRepoMock{}, &userRepoMock{})
	_, err := svc.Cancel(context.Background(),
		rentalsvc.Requester{ID: primitive.NewObjectID(), Role: model.RoleAdmin},
		primitive.NewObjectID().Hex())
	require.Equal(t, rentalsvc.ErrRentalNotFound, rentalsvc.Code(err))
}

// --- Get / List ---

func TestGet_OwnerAndAdminAccess(t *testing.T) {
	ctx := context.Background()
	owner := primitive.NewObjectID()
	carID := primitive.NewObjectID()
	rentalID := primitive.NewObjectID()

	rentals := &rentalRepoMock{
		findByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Rental, error) {
			return &model.Rental{ID: rentalID, UserID: owner, CarID: carID, Status: model.RentalPending}, nil
		},
	}
	cars := &carRepoMock{
		findByIDFn: func(ctx context.Context, id primitive.ObjectID) (*model.Car, error) {
			return availableCar(carID, 100), nil
		},
	}
	users := &userRepoMock{
		findSummariesFn: func(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.UserSummary, error) {
			return map[primitive.ObjectID]model.UserSummary{
				owner: {ID: owner, Name: "Anitha", Email: "anitha@example.com"},
			}, nil
		},
	}
	svc := rentalsvc.New(rentals, cars, users)

	out, err := svc.Get(ctx, rentalsvc.Requester{ID: owner, Role: model.RoleCustomer}, rentalID.Hex())
	require.NoError(t, err)
	require.NotNil(t, out.Car)
	require.NotNil(t, out.Customer)
	require.Equal(t, "Anitha", out.Customer.Name)

	_, err = svc.Get(ctx, rentalsvc.Requester{ID: primitive.NewObjectID(), Role: model.RoleAdmin}, rentalID.Hex())
	require.NoError(t, err)

	_, err = svc.Get(ctx, rentalsvc.Requester{ID: primitive.NewObjectID(), Role: model.RoleCustomer}, rentalID.Hex())
	require.Equal(t, rentalsvc.ErrNotOwner, rentalsvc.Code(err))
}

func TestList_JoinsCarsAndCustomers(t *testing.T) {
	ctx := context.Background()
	carID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	rentals := &rentalRepoMock{
		findAllFn: func(ctx context.Context) ([]model.Rental, error) {
			return []model.Rental{
				{ID: primitive.NewObjectID(), UserID: userID, CarID: carID, Status: model.RentalPending},
				{ID: primitive.NewObjectID(), UserID: userID, CarID: primitive.NewObjectID(), Status: model.RentalActive},
			}, nil
		},
	}
	cars := &carRepoMock{
		findByIDsFn: func(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.Car, error) {
			return map[primitive.ObjectID]model.Car{carID: *availableCar(carID, 100)}, nil
		},
	}
	users := &userRepoMock{
		findSummariesFn: func(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.UserSummary, error) {
			return map[primitive.ObjectID]model.UserSummary{userID: {ID: userID, Name: "Anitha"}}, nil
		},
	}
	svc := rentalsvc.New(rentals, cars, users)

	out, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.NotNil(t, out[0].Car)
	require.NotNil(t, out[0].Customer)
	require.Nil(t, out[1].Car) // car was deleted, rental still listed
}

func TestListByUser_NoCustomerJoin(t *testing.T) {
	ctx := context.Background()
	carID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	rentals := &rentalRepoMock{
		findByUserFn: func(ctx context.Context, id primitive.ObjectID) ([]model.Rental, error) {
			require.Equal(t, userID, id)
			return []model.Rental{{ID: primitive.NewObjectID(), UserID: userID, CarID: carID}}, nil
		},
	}
	cars := &carRepoMock{
		findByIDsFn: func(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]model.Car, error) {
			return map[primitive.ObjectID]model.Car{carID: *availableCar(carID, 100)}, nil
		},
	}
	svc := rentalsvc.New(rentals, cars, &userRepoMock{})

	out, err := svc.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].Car)
	require.Nil(t, out[0].Customer)
}

func TestCodeExtractor(t *testing.T) {
	require.Equal(t, rentalsvc.ErrCode(""), rentalsvc.Code(errors.New("plain")))
	require.Equal(t, rentalsvc.ErrCode(""), rentalsvc.Code(nil))
}
