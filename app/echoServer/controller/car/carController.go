package car

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/anithasandrine/Kigali-LUXURY-Cars/model"
	carsvc "github.com/anithasandrine/Kigali-LUXURY-Cars/service/car"
	"github.com/anithasandrine/Kigali-LUXURY-Cars/util/response"
)

type Controller struct {
	Svc carsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Create adds a car to the catalog (admin)
// @Summary      Create car
// @Tags         cars
// @Accept       json
// @Produce      json
// @Param        payload  body  CreateCarReq  true  "Car payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Security     BearerAuth
// @Router       /cars [post]
func (h *Controller) Create(c echo.Context) error {
	var req CreateCarReq
	if err := c.Bind(&req); err != nil {
		return response.Err(c, http.StatusBadRequest, "invalid JSON")
	}
	if err := h.V.Struct(req); err != nil {
		return response.Err(c, http.StatusBadRequest, "validation error: "+err.Error())
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}
	car := &model.Car{
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		Description: req.Description,
		Features:    req.Features,
		PricePerDay: req.PricePerDay,
		Available:   available,
		Images:      req.Images,
	}
	if err := h.Svc.Create(c.Request().Context(), car); err != nil {
		if errors.Is(err, carsvc.ErrBadInput) {
			return response.Err(c, http.StatusBadRequest, "invalid car payload")
		}
		h.Log.Error("car create", "err", err)
		return response.Err(c, http.StatusInternalServerError, "Server error")
	}
	return response.OK(c, http.StatusCreated, car)
}

// List returns every car in the catalog
// @Summary      List cars
// @Tags         cars
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /cars [get]
func (h *Controller) List(c echo.Context) error {
	cars, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("car list", "err", err)
		return response.Err(c, http.StatusInternalServerError, "Server error")
	}
	return response.List(c, http.StatusOK, len(cars), cars)
}

// Get returns a single car
// @Summary      Get car
// @Tags         cars
// @Produce      json
// @Param        id  path  string  true  "Car id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /cars/{id} [get]
func (h *Controller) Get(c echo.Context) error {
	car, err := h.Svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, carsvc.ErrNotFound) {
			return response.Err(c, http.StatusNotFound, "Car not found")
		}
		h.Log.Error("car get", "err", err)
		return response.Err(c, http.StatusInternalServerError, "Server error")
	}
	return response.OK(c, http.StatusOK, car)
}

// Search filters the catalog by make, model, category, availability and
// daily price range
// @Summary      Search cars
// @Tags         cars
// @Produce      json
// @Param        make      query  string   false  "Substring match on make"
// @Param        model     query  string   false  "Substring match on model"
// @Param        category  query  string   false  "Exact category"
// @Param        available query  bool     false  "Availability flag"
// @Param        minPrice  query  number   false  "Minimum daily price"
// @Param        maxPrice  query  number   false  "Maximum daily price"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Router       /cars/search [get]
func (h *Controller) Search(c echo.Context) error {
	f := carsvc.SearchFilter{
		Make:     c.QueryParam("make"),
		Model:    c.QueryParam("model"),
		Category: c.QueryParam("category"),
	}
	if v := c.QueryParam("available"); v != "" {
		b := v == "true"
		f.Available = &b
	}
	if v := c.QueryParam("minPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return response.Err(c, http.StatusBadRequest, "invalid minPrice")
		}
		f.MinPrice = &p
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return response.Err(c, http.StatusBadRequest, "invalid maxPrice")
		}
		f.MaxPrice = &p
	}

	cars, err := h.Svc.Search(c.Request().Context(), f)
	if err != nil {
		h.Log.Error("car search", "err", err)
		return response.Err(c, http.StatusInternalServerError, "Server error")
	}
	return response.List(c, http.StatusOK, len(cars), cars)
}

// Update modifies a car (admin)
// @Summary      Update car
// @Tags         cars
// @Accept       json
// @Produce      json
// @Param        id       path  string        true  "Car id"
// @Param        payload  body  UpdateCarReq  true  "Fields to change"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Security     BearerAuth
// @Router       /cars/{id} [put]
func (h *Controller) Update(c echo.Context) error {
	var req UpdateCarReq
	if err := c.Bind(&req); err != nil {
		return response.Err(c, http.StatusBadRequest, "invalid JSON")
	}
	car, err := h.Svc.Update(c.Request().Context(), c.Param("id"), carsvc.CarUpdate{
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		Description: req.Description,
		Features:    req.Features,
		PricePerDay: req.PricePerDay,
		Available:   req.Available,
		Images:      req.Images,
	})
	if err != nil {
		switch {
		case errors.Is(err, carsvc.ErrNotFound):
			return response.Err(c, http.StatusNotFound, "Car not found")
		case errors.Is(err, carsvc.ErrBadInput):
			return response.Err(c, http.StatusBadRequest, "invalid car payload")
		default:
			h.Log.Error("car update", "err", err)
			return response.Err(c, http.StatusInternalServerError, "Server error")
		}
	}
	return response.OK(c, http.StatusOK, car)
}

// Delete removes a car (admin)
// @Summary      Delete car
// @Tags         cars
// @Produce      json
// @Param        id  path  string  true  "Car id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Security     BearerAuth
// @Router       /cars/{id} [delete]
func (h *Controller) Delete(c echo.Context) error {
	if err := h.Svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, carsvc.ErrNotFound) {
			return response.Err(c, http.StatusNotFound, "Car not found")
		}
		h.Log.Error("car delete", "err", err)
		return response.Err(c, http.StatusInternalServerError, "Server error")
	}
	return response.OK(c, http.StatusOK, echo.Map{})
}
