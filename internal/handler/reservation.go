package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/buycarr/marketplace-api/internal/model"
	"github.com/buycarr/marketplace-api/internal/queue"
	"github.com/buycarr/marketplace-api/internal/repository"
	queue_publisher "github.com/buycarr/marketplace-api/internal/service"
)

// ReservationHandler covers the customer side of the workflow (create and
// list own reservations) and the admin side (list all, confirm, cancel).
// Confirm and cancel are the only cross-entity writes in the system: the
// reservation and its car change together inside one transaction.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Cars         *repository.CarRepo
	Users        *repository.UserRepo
}

func NewReservationHandler(r *repository.ReservationRepo, cars *repository.CarRepo, users *repository.UserRepo) *ReservationHandler {
	return &ReservationHandler{Reservations: r, Cars: cars, Users: users}
}

// List handles GET /api/reservations for the authenticated user.
func (h *ReservationHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	items, err := h.Reservations.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": items})
}

// Create handles POST /api/reservations.  The car's availability is not
// checked: several users may hold pending reservations on one car and the
// admin decides which sale to confirm.
func (h *ReservationHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req struct {
		CarID   uint64 `json:"car_id"`
		Message string `json:"message"`
	}
	if err := c.Bind(&req); err != nil || req.CarID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "car_id is required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if _, err := h.Cars.GetByID(ctx, req.CarID); err != nil {
		if err == repository.ErrCarNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	rec, err := h.Reservations.Create(ctx, uid, req.CarID, req.Message)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":        "reservation created",
		"reservation_id": rec.ID,
	})
}

// ListAll handles GET /api/admin/reservations (admin only), newest first.
func (h *ReservationHandler) ListAll(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	items, err := h.Reservations.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": items})
}

// Confirm handles PUT /api/admin/reservations/:id/confirm (admin only).
// The reservation moves to SOLD and the car moves to SOLD in the same
// transaction; neither update is ever visible without the other.  A
// reservation already in a terminal state is rejected so a stale confirm
// cannot flip a cancelled sale back.
func (h *ReservationHandler) Confirm(c echo.Context) error {
	rec, status, errMsg := h.transition(c, model.ReservationSold, model.CarSold)
	if errMsg != "" {
		return c.JSON(status, echo.Map{"error": errMsg})
	}
	h.publishSale(rec)
	return c.JSON(http.StatusOK, echo.Map{"message": "sale confirmed"})
}

// Cancel handles PUT /api/admin/reservations/:id/cancel (admin only).  The
// reservation moves to CANCELLED and the car is released back to AVAILABLE
// atomically.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	_, status, errMsg := h.transition(c, model.ReservationCancelled, model.CarAvailable)
	if errMsg != "" {
		return c.JSON(status, echo.Map{"error": errMsg})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "reservation cancelled"})
}

// transition applies an admin state change to a reservation and its car
// within one transaction.  It returns the reservation as it was before the
// change plus an HTTP status and error message when the transition fails.
func (h *ReservationHandler) transition(c echo.Context, resStatus model.ReservationStatus, carStatus model.CarStatus) (model.Reservation, int, string) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return model.Reservation{}, http.StatusNotFound, "reservation not found"
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return model.Reservation{}, http.StatusInternalServerError, "failed to start transaction"
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rec, err := h.Reservations.GetByIDTx(ctx, tx, id)
	if err != nil {
		if err == repository.ErrReservationNotFound {
			return model.Reservation{}, http.StatusNotFound, "reservation not found"
		}
		return model.Reservation{}, http.StatusInternalServerError, "query failed"
	}
	if rec.Status.Terminal() {
		return model.Reservation{}, http.StatusConflict, "reservation already closed"
	}
	if err := h.Reservations.UpdateStatusTx(ctx, tx, rec.ID, resStatus); err != nil {
		return model.Reservation{}, http.StatusInternalServerError, "update failed"
	}
	// The car row may be gone when the listing was deleted after the
	// reservation was made; the status flip is then a no-op.
	if err := h.Cars.UpdateStatusTx(ctx, tx, rec.CarID, carStatus); err != nil {
		return model.Reservation{}, http.StatusInternalServerError, "update failed"
	}
	if err := tx.Commit(); err != nil {
		return model.Reservation{}, http.StatusInternalServerError, "failed to commit transaction"
	}
	committed = true
	return rec, http.StatusOK, ""
}

// publishSale emits a SaleConfirmedEvent for downstream consumers.  The
// broker is best effort: a publish failure is logged by the publisher and
// never fails the confirmed sale.
func (h *ReservationHandler) publishSale(rec model.Reservation) {
	ev := queue.SaleConfirmedEvent{
		ReservationID: rec.ID,
		UserID:        rec.UserID,
		CarID:         rec.CarID,
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	if car, err := h.Cars.GetByID(ctx, rec.CarID); err == nil {
		ev.Brand = car.Brand
		ev.Model = car.Model
		ev.Year = car.Year
		ev.Price = car.Price
	}
	if buyer, err := h.Users.GetByID(ctx, rec.UserID); err == nil {
		ev.BuyerName = buyer.Name
		ev.BuyerEmail = buyer.Email
	}
	cancel()
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pubCancel()
		_ = queue_publisher.PublishSaleConfirmed(pubCtx, ev)
	}()
}
