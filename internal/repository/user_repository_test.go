package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"golang.org/x/crypto/bcrypt"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func userRows(id uint64, name, email string, isAdmin bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "email", "phone", "password_hash", "profile_photo", "is_admin", "created_at",
	}).AddRow(id, name, email, "11988887777", "$2a$04$hash", nil, isAdmin, time.Now())
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'a@b.com' for key 'uq_users_email'"))

	_, err := repo.Create(context.Background(), "Ana", "a@b.com", "119", "secret1", false, bcrypt.MinCost)
	if err != ErrEmailExists {
		t.Fatalf("Create err = %v, want ErrEmailExists", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUserGetByEmailNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery("SELECT .+ FROM users WHERE email=").
		WithArgs("missing@b.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "missing@b.com")
	if err != ErrUserNotFound {
		t.Fatalf("GetByEmail err = %v, want ErrUserNotFound", err)
	}
}

func TestGetAdminByEmailFiltersNonAdmins(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	// The query itself carries the is_admin=1 filter; a customer account
	// simply produces no rows.
	mock.ExpectQuery("SELECT .+ FROM users WHERE email=. AND is_admin=1").
		WithArgs("customer@b.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetAdminByEmail(context.Background(), "customer@b.com")
	if err != ErrUserNotFound {
		t.Fatalf("GetAdminByEmail err = %v, want ErrUserNotFound", err)
	}
}

func TestEnsureDefaultAdminSeeds(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery("SELECT .+ FROM users WHERE is_admin=1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(1, 1))

	created, err := repo.EnsureDefaultAdmin(context.Background(), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("EnsureDefaultAdmin: %v", err)
	}
	if !created {
		t.Fatal("expected admin to be created")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestEnsureDefaultAdminNoopWhenAdminExists(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery("SELECT .+ FROM users WHERE is_admin=1").
		WillReturnRows(userRows(1, "Administrador", DefaultAdminEmail, true))

	created, err := repo.EnsureDefaultAdmin(context.Background(), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("EnsureDefaultAdmin: %v", err)
	}
	if created {
		t.Fatal("admin created although one already exists")
	}
}

func TestUpdateProfileEmailCollision(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	email := "taken@b.com"
	mock.ExpectExec("UPDATE users SET email=").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'taken@b.com' for key 'uq_users_email'"))

	_, err := repo.UpdateProfile(context.Background(), 7, ProfileUpdate{Email: &email})
	if err != ErrEmailExists {
		t.Fatalf("UpdateProfile err = %v, want ErrEmailExists", err)
	}
}

func TestUpdateProfileNoFieldsLoadsRecord(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	// An empty update skips the UPDATE entirely and just reads the row back.
	mock.ExpectQuery("SELECT .+ FROM users WHERE id=").
		WithArgs(uint64(7)).
		WillReturnRows(userRows(7, "Ana", "a@b.com", false))

	u, err := repo.UpdateProfile(context.Background(), 7, ProfileUpdate{})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if u.ID != 7 || u.Name != "Ana" {
		t.Fatalf("unexpected record %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
