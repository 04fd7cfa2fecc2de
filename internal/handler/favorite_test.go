package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/buycarr/marketplace-api/internal/repository"
)

func newFavoriteHandler(t *testing.T) (*FavoriteHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	return NewFavoriteHandler(
		repository.NewFavoriteRepo(db),
		repository.NewCarRepo(db),
	), mock
}

func TestAddFavoriteUnknownCar(t *testing.T) {
	h, mock := newFavoriteHandler(t)

	mock.ExpectQuery("SELECT .+ FROM cars WHERE id=").WillReturnError(sql.ErrNoRows)

	c, rec := jsonReq(http.MethodPost, "/api/favorites", `{"car_id":99}`)
	c.Set("user_id", uint64(1))
	if err := h.Add(c); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestAddFavoriteDuplicate(t *testing.T) {
	h, mock := newFavoriteHandler(t)

	mock.ExpectQuery("SELECT .+ FROM cars WHERE id=").WillReturnRows(carRow(2, "Fiat", "AVAILABLE"))
	mock.ExpectExec("INSERT INTO favorites").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '1-2' for key 'uq_favorites_user_car'"))

	c, rec := jsonReq(http.MethodPost, "/api/favorites", `{"car_id":2}`)
	c.Set("user_id", uint64(1))
	if err := h.Add(c); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "car already in favorites" {
		t.Fatalf("unexpected error %v", body["error"])
	}
}

func TestAddFavoriteCreated(t *testing.T) {
	h, mock := newFavoriteHandler(t)

	mock.ExpectQuery("SELECT .+ FROM cars WHERE id=").WillReturnRows(carRow(2, "Fiat", "AVAILABLE"))
	mock.ExpectExec("INSERT INTO favorites").WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectQuery("SELECT created_at FROM favorites WHERE id=").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	c, rec := jsonReq(http.MethodPost, "/api/favorites", `{"car_id":2}`)
	c.Set("user_id", uint64(1))
	if err := h.Add(c); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if body := decodeBody(t, rec); body["favorite_id"].(float64) != 9 {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestRemoveFavoriteNotOwned(t *testing.T) {
	h, mock := newFavoriteHandler(t)

	mock.ExpectExec("DELETE FROM favorites WHERE id=. AND user_id=").
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, rec := jsonReq(http.MethodDelete, "/api/favorites/5", "")
	c.SetParamNames("id")
	c.SetParamValues("5")
	c.Set("user_id", uint64(1))
	if err := h.Remove(c); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
