// Package main car rental API.
//
// @title           Kigali Luxury Cars API
// @version         1.0
// @description     Car rental booking service (catalog, rentals, users).
// @BasePath        /api
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/anithasandrine/Kigali-LUXURY-Cars/app/echoServer"
	authctrl "github.com/anithasandrine/Kigali-LUXURY-Cars/app/echoServer/controller/auth"
	carctrl "github.com/anithasandrine/Kigali-LUXURY-Cars/app/echoServer/controller/car"
	rentalctrl "github.com/anithasandrine/Kigali-LUXURY-Cars/app/echoServer/controller/rental"
	userctrl "github.com/anithasandrine/Kigali-LUXURY-Cars/app/echoServer/controller/user"
	"github.com/anithasandrine/Kigali-LUXURY-Cars/app/echoServer/validation"
	"github.com/anithasandrine/Kigali-LUXURY-Cars/config"
	_ "github.com/anithasandrine/Kigali-LUXURY-Cars/docs"
	carrepo "github.com/anithasandrine/Kigali-LUXURY-Cars/repository/car"
	rentalrepo "github.com/anithasandrine/Kigali-LUXURY-Cars/repository/rental"
	userrepo "github.com/anithasandrine/Kigali-LUXURY-Cars/repository/user"
	authsvc "github.com/anithasandrine/Kigali-LUXURY-Cars/service/auth"
	carsvc "github.com/anithasandrine/Kigali-LUXURY-Cars/service/car"
	rentalsvc "github.com/anithasandrine/Kigali-LUXURY-Cars/service/rental"
	usersvc "github.com/anithasandrine/Kigali-LUXURY-Cars/service/user"
	"github.com/anithasandrine/Kigali-LUXURY-Cars/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: mongo
	db, err := database.New(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Error("mongo connect failed", "err", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close(ctx) }()

	// repos
	cr := carrepo.New(db.Mongo)
	rr := rentalrepo.New(db.Mongo)
	ur := userrepo.New(db.Mongo)

	if err := ur.EnsureIndexes(ctx); err != nil {
		log.Error("ensure indexes failed", "err", err)
		os.Exit(1)
	}

	// services
	cs := carsvc.New(cr)
	rs := rentalsvc.New(rr, cr, ur)
	us := usersvc.New(ur)
	as := authsvc.New(ur, cfg.JWTSecret)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	carC := &carctrl.Controller{Svc: cs, V: v, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, V: v, Log: log}
	userC := &userctrl.Controller{Svc: us, V: v, Log: log}

	// echo
	e := echo.New()
	e.HideBanner = true
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()
	e.HTTPErrorHandler = echoServer.ErrorHandler(log)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:   authC,
		Car:    carC,
		Rental: rentalC,
		User:   userC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
