package approval

import (
	"log/slog"
	"net/http"
	"strconv"

	ls "bookmarket/service/lifecycle"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc ls.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/purchase-requests
func (h *Controller) RequestPurchase(c echo.Context) error {
	var req PurchaseRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	uid, _ := c.Get("user_id").(int64)

	ok, err := h.Svc.RequestPurchase(c.Request().Context(), req.ListingID, uid)
	if err != nil {
		switch ls.Code(err) {
		case ls.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "listing not found or not available"})
		case ls.ErrOwnListing:
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"message": "you cannot purchase your own listing"})
		case ls.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"message": "another buyer got there first"})
		default:
			h.Log.Error("purchase request", "err", err, "listing_id", req.ListingID)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"requested": ok, "listing_id": req.ListingID})
}

// POST /v1/listings/:id/approve
func (h *Controller) Approve(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	ok, err := h.Svc.ApproveSale(c.Request().Context(), id, uid)
	if err != nil {
		switch ls.Code(err) {
		case ls.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "no matching listing awaiting approval"})
		default:
			h.Log.Error("approve sale", "err", err, "listing_id", id)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	// ok=false means no pending request; harmless to call again
	return c.JSON(http.StatusOK, echo.Map{"approved": ok, "listing_id": id})
}

// POST /v1/listings/:id/reject
func (h *Controller) Reject(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	ok, err := h.Svc.RejectSale(c.Request().Context(), id, uid)
	if err != nil {
		switch ls.Code(err) {
		case ls.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "no matching listing awaiting approval"})
		default:
			h.Log.Error("reject sale", "err", err, "listing_id", id)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"rejected": ok, "listing_id": id})
}

// GET /v1/purchase-requests/incoming
func (h *Controller) Incoming(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	rows, err := h.Svc.PendingForSeller(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("incoming requests", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/purchase-requests/outgoing
func (h *Controller) Outgoing(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	rows, err := h.Svc.PendingForBuyer(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("outgoing requests", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
