package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/anithasandrine/Kigali-LUXURY-Cars/app/echoServer/controller/auth"
	"github.com/anithasandrine/Kigali-LUXURY-Cars/app/echoServer/controller/car"
	"github.com/anithasandrine/Kigali-LUXURY-Cars/app/echoServer/controller/rental"
	"github.com/anithasandrine/Kigali-LUXURY-Cars/app/echoServer/controller/user"
	"github.com/anithasandrine/Kigali-LUXURY-Cars/app/echoServer/jwtx"
	"github.com/anithasandrine/Kigali-LUXURY-Cars/model"
)

type C struct {
	Auth   *auth.Controller
	Car    *car.Controller
	Rental *rental.Controller
	User   *user.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/api")
	pub.GET("/cars", c.Car.List)
	pub.GET("/cars/search", c.Car.Search)
	pub.GET("/cars/:id", c.Car.Get)
	pub.POST("/rentals/check-availability", c.Rental.CheckAvailability)
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	// Authenticated
	authed := e.Group("/api")
	authed.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
	}))
	authed.Use(extractClaims)

	authed.POST("/rentals", c.Rental.Create)
	authed.GET("/rentals/my-rentals", c.Rental.MyRentals)
	authed.GET("/rentals/:id", c.Rental.Get)
	authed.PUT("/rentals/:id/cancel", c.Rental.Cancel)
	authed.PUT("/users/profile", c.User.UpdateProfile)

	// Admin
	admin := authed.Group("", requireAdmin)
	admin.POST("/cars", c.Car.Create)
	admin.PUT("/cars/:id", c.Car.Update)
	admin.DELETE("/cars/:id", c.Car.Delete)
	admin.GET("/rentals", c.Rental.List)
	admin.PUT("/rentals/:id", c.Rental.UpdateStatus)
	admin.PUT("/rentals/:id/payment", c.Rental.UpdatePayment)
	admin.GET("/users", c.User.List)
	admin.GET("/users/:id", c.User.Get)
	admin.PUT("/users/:id", c.User.Update)
	admin.DELETE("/users/:id", c.User.Delete)
}

func extractClaims(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := jwtx.FromToken(c); err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		return next(c)
	}
}

func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if jwtx.Role(c) != model.RoleAdmin {
			return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized as admin")
		}
		return next(c)
	}
}
