package user

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/anithasandrine/Kigali-LUXURY-Cars/app/echoServer/jwtx"
	usersvc "github.com/anithasandrine/Kigali-LUXURY-Cars/service/user"
	"github.com/anithasandrine/Kigali-LUXURY-Cars/util/response"
)

type Controller struct {
	Svc usersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// List returns all accounts, passwords excluded (admin)
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {object}  map[string]any
// @Security     BearerAuth
// @Router       /users [get]
func (h *Controller) List(c echo.Context) error {
	users, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("user list", "err", err)
		return response.Err(c, http.StatusInternalServerError, "Server error")
	}
	return response.List(c, http.StatusOK, len(users), users)
}

// Get returns a single account (admin)
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Security     BearerAuth
// @Router       /users/{id} [get]
func (h *Controller) Get(c echo.Context) error {
	u, err := h.Svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, usersvc.ErrNotFound) {
			return response.Err(c, http.StatusNotFound, "User not found")
		}
		h.Log.Error("user get", "err", err)
		return response.Err(c, http.StatusInternalServerError, "Server error")
	}
	return response.OK(c, http.StatusOK, u)
}

// UpdateProfile updates the requester's own account
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body  UpdateProfileReq  true  "Fields to change"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Security     BearerAuth
// @Router       /users/profile [put]
func (h *Controller) UpdateProfile(c echo.Context) error {
	var req UpdateProfileReq
	if err := c.Bind(&req); err != nil {
		return response.Err(c, http.StatusBadRequest, "invalid JSON")
	}
	if err := h.V.Struct(req); err != nil {
		return response.Err(c, http.StatusBadRequest, "validation error: "+err.Error())
	}
	uid, ok := jwtx.UserID(c)
	if !ok {
		return response.Err(c, http.StatusUnauthorized, "unauthorized")
	}

	u, err := h.Svc.UpdateProfile(c.Request().Context(), uid, usersvc.ProfileUpdate{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		if errors.Is(err, usersvc.ErrNotFound) {
			return response.Err(c, http.StatusNotFound, "User not found")
		}
		h.Log.Error("profile update", "err", err)
		return response.Err(c, http.StatusInternalServerError, "Server error")
	}
	return response.OK(c, http.StatusOK, u)
}

// Update modifies any account, including its role (admin)
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id       path  string              true  "User id"
// @Param        payload  body  AdminUpdateUserReq  true  "Fields to change"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Security     BearerAuth
// @Router       /users/{id} [put]
func (h *Controller) Update(c echo.Context) error {
	var req AdminUpdateUserReq
	if err := c.Bind(&req); err != nil {
		return response.Err(c, http.StatusBadRequest, "invalid JSON")
	}
	if err := h.V.Struct(req); err != nil {
		return response.Err(c, http.StatusBadRequest, "validation error: "+err.Error())
	}

	u, err := h.Svc.AdminUpdate(c.Request().Context(), c.Param("id"), usersvc.AdminUpdate{
		ProfileUpdate: usersvc.ProfileUpdate{
			Name:        req.Name,
			Email:       req.Email,
			PhoneNumber: req.PhoneNumber,
			Address:     req.Address,
		},
		Role: req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, usersvc.ErrNotFound):
			return response.Err(c, http.StatusNotFound, "User not found")
		case errors.Is(err, usersvc.ErrBadRole):
			return response.Err(c, http.StatusBadRequest, "Invalid role value")
		default:
			h.Log.Error("user update", "err", err)
			return response.Err(c, http.StatusInternalServerError, "Server error")
		}
	}
	return response.OK(c, http.StatusOK, u)
}

// Delete removes an account (admin)
// @Summary      Delete user
// @Tags         users
// @Produce      json
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Security     BearerAuth
// @Router       /users/{id} [delete]
func (h *Controller) Delete(c echo.Context) error {
	if err := h.Svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, usersvc.ErrNotFound) {
			return response.Err(c, http.StatusNotFound, "User not found")
		}
		h.Log.Error("user delete", "err", err)
		return response.Err(c, http.StatusInternalServerError, "Server error")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "User removed"})
}
