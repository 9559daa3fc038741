// Package main book marketplace API.
//
// @title           Book Marketplace API
// @version         1.0
// @description     book marketplace (accounts, listings, sale approval workflow, trades).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"bookmarket/app/echoServer"
	approvalctrl "bookmarket/app/echoServer/controller/approval"
	authctrl "bookmarket/app/echoServer/controller/auth"
	listingctrl "bookmarket/app/echoServer/controller/listing"
	salectrl "bookmarket/app/echoServer/controller/sale"
	tradingctrl "bookmarket/app/echoServer/controller/trading"
	"bookmarket/app/echoServer/validation"
	"bookmarket/config"
	approvalrepo "bookmarket/repository/approval"
	listingrepo "bookmarket/repository/listing"
	salerepo "bookmarket/repository/sale"
	tradingrepo "bookmarket/repository/trading"
	userrepo "bookmarket/repository/user"
	authsvc "bookmarket/service/auth"
	lifecyclesvc "bookmarket/service/lifecycle"
	listingsvc "bookmarket/service/listing"
	"bookmarket/util/database"
	"bookmarket/util/tx"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Error("schema bootstrap failed", "err", err)
		os.Exit(1)
	}

	// repos
	ur := userrepo.New(db)
	lr := listingrepo.New(db)
	ar := approvalrepo.New(db)
	tr := tradingrepo.New(db)
	sr := salerepo.New(db)

	// services
	txr := tx.NewRunner(db)
	as := authsvc.New(ur, cfg.JWTSecret, cfg.JWTTTLHours)
	lss := listingsvc.New(txr, lr)
	lcs := lifecyclesvc.New(txr, lr, ar, tr, sr)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	listingC := &listingctrl.Controller{Svc: lss, V: v, Log: log}
	approvalC := &approvalctrl.Controller{Svc: lcs, V: v, Log: log}
	tradingC := &tradingctrl.Controller{Svc: lcs, Log: log}
	saleC := &salectrl.Controller{Svc: lcs, Log: log}

	// echo
	e := echo.New()
	e.HideBanner = true
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:      authC,
		Listing:   listingC,
		Approval:  approvalC,
		Trading:   tradingC,
		Sale:      saleC,
		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)
	e.Logger.Fatal(e.Start(":" + port))
}
