package sale

import (
	"log/slog"
	"net/http"

	ls "bookmarket/service/lifecycle"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc ls.Service
	Log *slog.Logger
}

// GET /v1/sales/purchases
func (h *Controller) Purchases(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	rows, err := h.Svc.PurchasesOf(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("purchases", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/sales/sold
func (h *Controller) Sold(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	rows, err := h.Svc.SoldBy(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("sold", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
