package echoServer

import (
	"net/http"

	"bookmarket/app/echoServer/controller/approval"
	"bookmarket/app/echoServer/controller/auth"
	"bookmarket/app/echoServer/controller/listing"
	"bookmarket/app/echoServer/controller/sale"
	"bookmarket/app/echoServer/controller/trading"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth      *auth.Controller
	Listing   *listing.Controller
	Approval  *approval.Controller
	Trading   *trading.Controller
	Sale      *sale.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	// Auth
	authg := e.Group("/v1")
	authg.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	// user_id extraction from the verified token
	authg.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			tok, ok := ctx.Get("user").(*jwt.Token)
			if !ok || tok == nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			sub, ok := claims["sub"].(float64)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			ctx.Set("user_id", int64(sub))
			if role, ok := claims["role"].(string); ok {
				ctx.Set("role", role)
			}
			return next(ctx)
		}
	})

	authg.GET("/users/me", c.Auth.Me)
	authg.PUT("/users/me", c.Auth.Update)
	authg.DELETE("/users/me", c.Auth.Delete)
	authg.GET("/users/:username", c.Auth.ByUsername)

	// Listings
	authg.GET("/listings", c.Listing.List)
	authg.GET("/listings/my", c.Listing.Mine)
	authg.GET("/listings/:id", c.Listing.Detail)
	authg.POST("/listings", c.Listing.Create)

	// Sale approval workflow
	authg.POST("/purchase-requests", c.Approval.RequestPurchase)
	authg.GET("/purchase-requests/incoming", c.Approval.Incoming)
	authg.GET("/purchase-requests/outgoing", c.Approval.Outgoing)
	authg.POST("/listings/:id/approve", c.Approval.Approve)
	authg.POST("/listings/:id/reject", c.Approval.Reject)

	// Staged trades
	authg.GET("/trades/pending", c.Trading.Pending)
	authg.POST("/trades/:listing_id/confirm", c.Trading.Confirm)

	// Completed sales
	authg.GET("/sales/purchases", c.Sale.Purchases)
	authg.GET("/sales/sold", c.Sale.Sold)
}
