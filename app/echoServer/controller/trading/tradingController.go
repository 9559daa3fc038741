package trading

import (
	"log/slog"
	"net/http"
	"strconv"

	ls "bookmarket/service/lifecycle"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc ls.Service
	Log *slog.Logger
}

// GET /v1/trades/pending
func (h *Controller) Pending(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	rows, err := h.Svc.StagedForBuyer(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("pending trades", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /v1/trades/:listing_id/confirm
func (h *Controller) Confirm(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("listing_id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	ok, err := h.Svc.ConfirmReceived(c.Request().Context(), id, uid)
	if err != nil {
		switch ls.Code(err) {
		case ls.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "no trade awaiting your confirmation"})
		default:
			h.Log.Error("confirm received", "err", err, "listing_id", id)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"confirmed": ok, "listing_id": id})
}
