package handler

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/buycarr/marketplace-api/internal/repository"
)

func newReservationHandler(t *testing.T) (*ReservationHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	return NewReservationHandler(
		repository.NewReservationRepo(db),
		repository.NewCarRepo(db),
		repository.NewUserRepo(db),
	), mock
}

func reservationRow(id uint64, status string) *sqlmock.Rows {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "user_id", "car_id", "message", "status", "created_at", "updated_at",
	}).AddRow(id, 1, 2, "quero esse", status, now, now)
}

func TestCreateReservationRequiresCarID(t *testing.T) {
	h, _ := newReservationHandler(t)

	c, rec := jsonReq(http.MethodPost, "/api/reservations", `{"message":"oi"}`)
	c.Set("user_id", uint64(1))
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateReservationUnknownCar(t *testing.T) {
	h, mock := newReservationHandler(t)

	mock.ExpectQuery("SELECT .+ FROM cars WHERE id=").WillReturnError(sql.ErrNoRows)

	c, rec := jsonReq(http.MethodPost, "/api/reservations", `{"car_id":99}`)
	c.Set("user_id", uint64(1))
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestConfirmSetsReservationAndCarSold(t *testing.T) {
	h, mock := newReservationHandler(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM reservations WHERE id=. FOR UPDATE").
		WithArgs(uint64(3)).
		WillReturnRows(reservationRow(3, "PENDING"))
	mock.ExpectExec("UPDATE reservations SET status=").
		WithArgs("SOLD", uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE cars SET status=").
		WithArgs("SOLD", uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	// publishSale enriches the event from the store; missing rows are
	// tolerated and only shrink the payload.
	mock.ExpectQuery("SELECT .+ FROM cars WHERE id=").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT .+ FROM users WHERE id=").WillReturnError(sql.ErrNoRows)

	c, rec := jsonReq(http.MethodPut, "/api/admin/reservations/3/confirm", "")
	c.SetParamNames("id")
	c.SetParamValues("3")
	if err := h.Confirm(c); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if body := decodeBody(t, rec); body["message"] != "sale confirmed" {
		t.Fatalf("unexpected body %v", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCancelReleasesCar(t *testing.T) {
	h, mock := newReservationHandler(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM reservations WHERE id=. FOR UPDATE").
		WithArgs(uint64(3)).
		WillReturnRows(reservationRow(3, "PENDING"))
	mock.ExpectExec("UPDATE reservations SET status=").
		WithArgs("CANCELLED", uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE cars SET status=").
		WithArgs("AVAILABLE", uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c, rec := jsonReq(http.MethodPut, "/api/admin/reservations/3/cancel", "")
	c.SetParamNames("id")
	c.SetParamValues("3")
	if err := h.Cancel(c); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestConfirmClosedReservationConflicts(t *testing.T) {
	h, mock := newReservationHandler(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM reservations WHERE id=. FOR UPDATE").
		WithArgs(uint64(3)).
		WillReturnRows(reservationRow(3, "CANCELLED"))
	mock.ExpectRollback()

	c, rec := jsonReq(http.MethodPut, "/api/admin/reservations/3/confirm", "")
	c.SetParamNames("id")
	c.SetParamValues("3")
	if err := h.Confirm(c); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "reservation already closed" {
		t.Fatalf("unexpected error %v", body["error"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCancelUnknownReservation(t *testing.T) {
	h, mock := newReservationHandler(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM reservations WHERE id=. FOR UPDATE").
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	c, rec := jsonReq(http.MethodPut, "/api/admin/reservations/99/cancel", "")
	c.SetParamNames("id")
	c.SetParamValues("99")
	if err := h.Cancel(c); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
