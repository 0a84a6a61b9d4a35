package rental

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/anithasandrine/Kigali-LUXURY-Cars/app/echoServer/jwtx"
	"github.com/anithasandrine/Kigali-LUXURY-Cars/model"
	rentalsvc "github.com/anithasandrine/Kigali-LUXURY-Cars/service/rental"
	"github.com/anithasandrine/Kigali-LUXURY-Cars/util/response"
)

type Controller struct {
	Svc rentalsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func (h *Controller) requester(c echo.Context) (rentalsvc.Requester, bool) {
	uid, ok := jwtx.UserID(c)
	if !ok {
		return rentalsvc.Requester{}, false
	}
	return rentalsvc.Requester{ID: uid, Role: jwtx.Role(c)}, true
}

// Create books a car
// @Summary      Create rental
// @Tags         rentals
// @Accept       json
// @Produce      json
// @Param        payload  body  CreateRentalReq  true  "Booking payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Security     BearerAuth
// @Router       /rentals [post]
func (h *Controller) Create(c echo.Context) error {
	var req CreateRentalReq
	if err := c.Bind(&req); err != nil {
		return response.Err(c, http.StatusBadRequest, "invalid JSON")
	}
	if err := h.V.Struct(req); err != nil {
		return response.Err(c, http.StatusBadRequest, "validation error: "+err.Error())
	}
	requester, ok := h.requester(c)
	if !ok {
		return response.Err(c, http.StatusUnauthorized, "unauthorized")
	}

	out, err := h.Svc.Create(c.Request().Context(), requester.ID, rentalsvc.CreateInput{
		CarID:              req.CarID,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		PickupLocation:     req.PickupLocation,
		DropoffLocation:    req.DropoffLocation,
		AdditionalRequests: req.AdditionalRequests,
	})
	if err != nil {
		switch rentalsvc.Code(err) {
		case rentalsvc.ErrCarNotFound:
			return response.Err(c, http.StatusNotFound, "Car not found")
		case rentalsvc.ErrCarUnavailable:
			return response.Err(c, http.StatusBadRequest, "Car is not available for rental")
		case rentalsvc.ErrInvalidDates:
			return response.Err(c, http.StatusBadRequest, "End date must be after start date")
		default:
			h.Log.Error("rental create", "err", err)
			return response.Err(c, http.StatusInternalServerError, "Server error")
		}
	}
	return response.OK(c, http.StatusCreated, out)
}

// CheckAvailability reports whether a car is free for a date range
// @Summary      Check car availability
// @Tags         rentals
// @Accept       json
// @Produce      json
// @Param        payload  body  CheckAvailabilityReq  true  "Date range"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /rentals/check-availability [post]
func (h *Controller) CheckAvailability(c echo.Context) error {
	var req CheckAvailabilityReq
	if err := c.Bind(&req); err != nil {
		return response.Err(c, http.StatusBadRequest, "invalid JSON")
	}
	if err := h.V.Struct(req); err != nil {
		return response.Err(c, http.StatusBadRequest, "Please provide carId, startDate and endDate")
	}

	a, err := h.Svc.CheckAvailability(c.Request().Context(), req.CarID, req.StartDate, req.EndDate)
	if err != nil {
		if rentalsvc.Code(err) == rentalsvc.ErrCarNotFound {
			return response.Err(c, http.StatusNotFound, "Car not found")
		}
		h.Log.Error("check availability", "err", err)
		return response.Err(c, http.StatusInternalServerError, "Server error")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"available": a.Available,
		"message":   a.Message,
	})
}

// List returns all rentals (admin)
// @Summary      List rentals
// @Tags         rentals
// @Produce      json
// @Success      200  {object}  map[string]any
// @Security     BearerAuth
// @Router       /rentals [get]
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("rental list", "err", err)
		return response.Err(c, http.StatusInternalServerError, "Server error")
	}
	return response.List(c, http.StatusOK, len(rows), rows)
}

// MyRentals returns the requester's rentals
// @Summary      List own rentals
// @Tags         rentals
// @Produce      json
// @Success      200  {object}  map[string]any
// @Security     BearerAuth
// @Router       /rentals/my-rentals [get]
func (h *Controller) MyRentals(c echo.Context) error {
	requester, ok := h.requester(c)
	if !ok {
		return response.Err(c, http.StatusUnauthorized, "unauthorized")
	}
	rows, err := h.Svc.ListByUser(c.Request().Context(), requester.ID)
	if err != nil {
		h.Log.Error("my rentals", "err", err)
		return response.Err(c, http.StatusInternalServerError, "Server error")
	}
	return response.List(c, http.StatusOK, len(rows), rows)
}

// Get returns a single rental (owner or admin)
// @Summary      Get rental
// @Tags         rentals
// @Produce      json
// @Param        id  path  string  true  "Rental id"
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Security     BearerAuth
// @Router       /rentals/{id} [get]
func (h *Controller) Get(c echo.Context) error {
	requester, ok := h.requester(c)
	if !ok {
		return response.Err(c, http.StatusUnauthorized, "unauthorized")
	}
	out, err := h.Svc.Get(c.Request().Context(), requester, c.Param("id"))
	if err != nil {
		switch rentalsvc.Code(err) {
		case rentalsvc.ErrRentalNotFound:
			return response.Err(c, http.StatusNotFound, "Rental not found")
		case rentalsvc.ErrNotOwner:
			return response.Err(c, http.StatusUnauthorized, "Not authorized to access this rental")
		default:
			h.Log.Error("rental get", "err", err)
			return response.Err(c, http.StatusInternalServerError, "Server error")
		}
	}
	return response.OK(c, http.StatusOK, out)
}

// UpdateStatus sets the rental status (admin)
// @Summary      Update rental status
// @Tags         rentals
// @Accept       json
// @Produce      json
// @Param        id       path  string           true  "Rental id"
// @Param        payload  body  UpdateStatusReq  true  "New status"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Security     BearerAuth
// @Router       /rentals/{id} [put]
func (h *Controller) UpdateStatus(c echo.Context) error {
	var req UpdateStatusReq
	if err := c.Bind(&req); err != nil {
		return response.Err(c, http.StatusBadRequest, "invalid JSON")
	}
	out, err := h.Svc.UpdateStatus(c.Request().Context(), c.Param("id"), model.RentalStatus(req.Status))
	if err != nil {
		switch rentalsvc.Code(err) {
		case rentalsvc.ErrInvalidStatus:
			return response.Err(c, http.StatusBadRequest, "Invalid status value")
		case rentalsvc.ErrRentalNotFound:
			return response.Err(c, http.StatusNotFound, "Rental not found")
		default:
			h.Log.Error("update status", "err", err)
			return response.Err(c, http.StatusInternalServerError, "Server error")
		}
	}
	return response.OK(c, http.StatusOK, out)
}

// UpdatePayment sets the payment status (admin)
// @Summary      Update payment status
// @Tags         rentals
// @Accept       json
// @Produce      json
// @Param        id       path  string                  true  "Rental id"
// @Param        payload  body  UpdatePaymentStatusReq  true  "New payment status"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Security     BearerAuth
// @Router       /rentals/{id}/payment [put]
func (h *Controller) UpdatePayment(c echo.Context) error {
	var req UpdatePaymentStatusReq
	if err := c.Bind(&req); err != nil {
		return response.Err(c, http.StatusBadRequest, "invalid JSON")
	}
	out, err := h.Svc.UpdatePaymentStatus(c.Request().Context(), c.Param("id"), model.PaymentStatus(req.PaymentStatus))
	if err != nil {
		switch rentalsvc.Code(err) {
		case rentalsvc.ErrInvalidStatus:
			return response.Err(c, http.StatusBadRequest, "Invalid payment status value")
		case rentalsvc.ErrRentalNotFound:
			return response.Err(c, http.StatusNotFound, "Rental not found")
		default:
			h.Log.Error("update payment status", "err", err)
			return response.Err(c, http.StatusInternalServerError, "Server error")
		}
	}
	return response.OK(c, http.StatusOK, out)
}

// Cancel cancels a pending or confirmed rental (owner or admin)
// @Summary      Cancel rental
// @Tags         rentals
// @Produce      json
// @Param        id  path  string  true  "Rental id"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Security     BearerAuth
// @Router       /rentals/{id}/cancel [put]
func (h *Controller) Cancel(c echo.Context) error {
	requester, ok := h.requester(c)
	if !ok {
		return response.Err(c, http.StatusUnauthorized, "unauthorized")
	}
	out, err := h.Svc.Cancel(c.Request().Context(), requester, c.Param("id"))
	if err != nil {
		switch rentalsvc.Code(err) {
		case rentalsvc.ErrRentalNotFound:
			return response.Err(c, http.StatusNotFound, "Rental not found")
		case rentalsvc.ErrNotOwner:
			return response.Err(c, http.StatusUnauthorized, "Not authorized to cancel this rental")
		case rentalsvc.ErrNotCancellable:
			return response.Err(c, http.StatusBadRequest, "Rental cannot be cancelled in its current status")
		default:
			h.Log.Error("rental cancel", "err", err)
			return response.Err(c, http.StatusInternalServerError, "Server error")
		}
	}
	return response.OK(c, http.StatusOK, out)
}
