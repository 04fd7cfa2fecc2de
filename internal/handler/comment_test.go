package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/buycarr/marketplace-api/internal/repository"
)

func newCommentHandler(t *testing.T) (*CommentHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	return NewCommentHandler(
		repository.NewCommentRepo(db),
		repository.NewCarRepo(db),
		repository.NewUserRepo(db),
	), mock
}

func TestCreateForCarRatingOutOfRange(t *testing.T) {
	h, _ := newCommentHandler(t)

	c, rec := jsonReq(http.MethodPost, "/api/cars/2/comments", `{"comment":"otimo","rating":6}`)
	c.SetParamNames("id")
	c.SetParamValues("2")
	c.Set("user_id", uint64(1))
	if err := h.CreateForCar(c); err != nil {
		t.Fatalf("CreateForCar: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "rating must be between 1 and 5" {
		t.Fatalf("unexpected error %v", body["error"])
	}
}

func TestCreateForCarMissingComment(t *testing.T) {
	h, _ := newCommentHandler(t)

	c, rec := jsonReq(http.MethodPost, "/api/cars/2/comments", `{"comment":"   ","rating":4}`)
	c.SetParamNames("id")
	c.SetParamValues("2")
	c.Set("user_id", uint64(1))
	if err := h.CreateForCar(c); err != nil {
		t.Fatalf("CreateForCar: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateForCarAcceptsStringRating(t *testing.T) {
	h, mock := newCommentHandler(t)

	mock.ExpectQuery("SELECT .+ FROM cars WHERE id=").WillReturnRows(carRow(2, "Fiat", "AVAILABLE"))
	mock.ExpectExec("INSERT INTO comments").WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery("SELECT created_at FROM comments WHERE id=").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).
			AddRow(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)))
	// author lookup for the response payload
	mock.ExpectQuery("SELECT .+ FROM users WHERE id=").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "email", "phone", "password_hash", "profile_photo", "is_admin", "created_at",
		}).AddRow(1, "Ana", "a@b.com", "119", "x", nil, false, time.Now()))

	c, rec := jsonReq(http.MethodPost, "/api/cars/2/comments", `{"comment":"otimo carro","rating":"5"}`)
	c.SetParamNames("id")
	c.SetParamValues("2")
	c.Set("user_id", uint64(1))
	if err := h.CreateForCar(c); err != nil {
		t.Fatalf("CreateForCar: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["rating"].(float64) != 5 || body["user_name"] != "Ana" {
		t.Fatalf("unexpected payload %v", body)
	}
}

func TestCreateGeneralWithoutIdentity(t *testing.T) {
	h, _ := newCommentHandler(t)

	// No user_id in the context: the token subject could not be resolved.
	c, rec := jsonReq(http.MethodPost, "/api/comments", `{"comment":"bom site","rating":5}`)
	if err := h.CreateGeneral(c); err != nil {
		t.Fatalf("CreateGeneral: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "could not process token, please log in again" {
		t.Fatalf("unexpected error %v", body["error"])
	}
}

func TestListByCarReturnsBareArray(t *testing.T) {
	h, mock := newCommentHandler(t)

	mock.ExpectQuery("FROM comments").
		WillReturnRows(sqlmock.NewRows([]string{"c.id", "c.comment", "c.rating", "u.name", "c.created_at"}))

	c, rec := jsonReq(http.MethodGet, "/api/cars/2/comments", "")
	c.SetParamNames("id")
	c.SetParamValues("2")
	if err := h.ListByCar(c); err != nil {
		t.Fatalf("ListByCar: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	// The contract is a bare array, not an envelope object.
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("body = %q, want bare empty array", got)
	}
}
