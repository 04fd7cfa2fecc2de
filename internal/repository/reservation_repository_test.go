package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/buycarr/marketplace-api/internal/model"
)

func TestReservationCreateIsPending(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationRepo(db)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO reservations").
		WithArgs(uint64(1), uint64(2), "quero esse", "PENDING").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT created_at, updated_at FROM reservations WHERE id=").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	rec, err := repo.Create(context.Background(), 1, 2, "quero esse")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ID != 7 || rec.Status != model.ReservationPending {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestReservationGetByIDTxNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM reservations WHERE id=. FOR UPDATE").
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()

	if _, err := repo.GetByIDTx(context.Background(), tx, 99); err != ErrReservationNotFound {
		t.Fatalf("GetByIDTx err = %v, want ErrReservationNotFound", err)
	}
}

func TestReservationListAllPlaceholders(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationRepo(db)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cols := []string{
		"r.id", "r.message", "r.status", "r.created_at", "r.updated_at",
		"c.id", "c.brand", "c.model", "c.year", "c.price", "c.images",
		"u.id", "u.name", "u.email", "u.phone",
	}
	// Both the car and the user rows were deleted after the reservation.
	rows := sqlmock.NewRows(cols).
		AddRow(3, nil, "PENDING", now, now, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil)

	mock.ExpectQuery("FROM reservations r").WillReturnRows(rows)

	out, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	det := out[0]
	if det.Status != "Pendente" {
		t.Fatalf("Status = %q, want Pendente", det.Status)
	}
	if det.Car.ID != nil || det.Car.Brand != "N/A" || det.Car.Model != "N/A" || det.Car.Images != "[]" {
		t.Fatalf("missing-car placeholders wrong: %+v", det.Car)
	}
	if det.User == nil || det.User.ID != nil || det.User.Name != "Usuário removido" || det.User.Email != "N/A" {
		t.Fatalf("missing-user placeholders wrong: %+v", det.User)
	}
	if det.CreatedAt != "2026-03-01T12:00:00Z" {
		t.Fatalf("CreatedAt = %q", det.CreatedAt)
	}
}

func TestReservationListByUserOmitsUserPart(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationRepo(db)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cols := []string{
		"r.id", "r.message", "r.status", "r.created_at", "r.updated_at",
		"c.id", "c.brand", "c.model", "c.year", "c.price", "c.images",
	}
	rows := sqlmock.NewRows(cols).
		AddRow(3, "mensagem", "SOLD", now, now, 2, "Fiat", "Uno", 2019, 35000.0, "[]")

	mock.ExpectQuery("FROM reservations r").
		WithArgs(uint64(1)).
		WillReturnRows(rows)

	out, err := repo.ListByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	det := out[0]
	if det.User != nil {
		t.Fatalf("customer listing must not carry the user part: %+v", det.User)
	}
	if det.Status != "Vendido" {
		t.Fatalf("Status = %q, want Vendido", det.Status)
	}
	if det.Car.ID == nil || *det.Car.ID != 2 || det.Car.Brand != "Fiat" {
		t.Fatalf("unexpected car part %+v", det.Car)
	}
}

func TestReservationUpdateStatusTx(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE reservations SET status=").
		WithArgs("CANCELLED", uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := repo.UpdateStatusTx(context.Background(), tx, 3, model.ReservationCancelled); err != nil {
		t.Fatalf("UpdateStatusTx: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
