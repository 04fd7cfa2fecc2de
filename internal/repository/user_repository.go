package repository

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/buycarr/marketplace-api/internal/model"
	"github.com/buycarr/marketplace-api/internal/utils"
)

// UserRepo provides persistence for user accounts.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Default administrator account.  Seeded once at startup (or through the
// setup endpoint) when no admin exists; never overwritten afterwards so
// operators can change the credentials.
const (
	DefaultAdminName  = "Administrador"
	DefaultAdminEmail = "admin@buycarr.com"
	DefaultAdminPhone = "11999999999"
	defaultAdminPass  = "admin123"
)

const userCols = "id,name,email,phone,password_hash,profile_photo,is_admin,created_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	var photo sql.NullString
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &photo, &u.IsAdmin, &u.CreatedAt)
	if photo.Valid {
		p := photo.String
		u.ProfilePhoto = &p
	}
	return u, err
}

// Create inserts a user and returns its ID.  The password is hashed here so
// no plain-text value crosses the repository boundary.
func (r *UserRepo) Create(ctx context.Context, name, email, phone, password string, isAdmin bool, cost int) (uint64, error) {
	email = strings.TrimSpace(email)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, phone, password_hash, is_admin) VALUES (?,?,?,?,?)",
		name, email, phone, hash, isAdmin)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.TrimSpace(email)
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE email=? LIMIT 1", email))
	if err == sql.ErrNoRows {
		return u, ErrUserNotFound
	}
	return u, err
}

// GetAdminByEmail fetches a user by email, restricted to admin accounts.
// A matching non-admin user yields ErrUserNotFound, so callers cannot tell
// a wrong email apart from a missing admin flag.
func (r *UserRepo) GetAdminByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.TrimSpace(email)
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE email=? AND is_admin=1 LIMIT 1", email))
	if err == sql.ErrNoRows {
		return u, ErrUserNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return u, ErrUserNotFound
	}
	return u, err
}

// FirstAdmin returns the first administrator account, used by the public
// contact endpoint.
func (r *UserRepo) FirstAdmin(ctx context.Context) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE is_admin=1 ORDER BY id LIMIT 1"))
	if err == sql.ErrNoRows {
		return u, ErrUserNotFound
	}
	return u, err
}

// ProfileUpdate carries the optional fields of a profile update.  Nil
// pointers leave the corresponding column untouched.
type ProfileUpdate struct {
	Name  *string
	Email *string
	Phone *string
	Photo *string
}

// UpdateProfile applies a partial update to a user row and returns the
// updated record.  An email collision with another user surfaces as
// ErrEmailExists through the unique key on users.email.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, upd ProfileUpdate) (model.User, error) {
	set := make([]string, 0, 4)
	args := make([]interface{}, 0, 5)
	if upd.Name != nil {
		set = append(set, "name=?")
		args = append(args, *upd.Name)
	}
	if upd.Email != nil {
		set = append(set, "email=?")
		args = append(args, strings.TrimSpace(*upd.Email))
	}
	if upd.Phone != nil {
		set = append(set, "phone=?")
		args = append(args, *upd.Phone)
	}
	if upd.Photo != nil {
		set = append(set, "profile_photo=?")
		args = append(args, *upd.Photo)
	}
	if len(set) > 0 {
		args = append(args, id)
		if _, err := r.DB.ExecContext(ctx,
			"UPDATE users SET "+strings.Join(set, ", ")+" WHERE id=?", args...); err != nil {
			if isDuplicate(err) {
				return model.User{}, ErrEmailExists
			}
			return model.User{}, err
		}
	}
	// The follow-up lookup also distinguishes an unknown id (ErrUserNotFound)
	// from an update that changed nothing.
	return r.GetByID(ctx, id)
}

// EnsureDefaultAdmin seeds the default administrator if no admin account
// exists yet.  It reports whether a new admin was created.
func (r *UserRepo) EnsureDefaultAdmin(ctx context.Context, cost int) (bool, error) {
	if _, err := r.FirstAdmin(ctx); err == nil {
		return false, nil
	} else if err != ErrUserNotFound {
		return false, err
	}
	if _, err := r.Create(ctx, DefaultAdminName, DefaultAdminEmail, DefaultAdminPhone, defaultAdminPass, true, cost); err != nil {
		return false, err
	}
	log.Printf("seeded default admin account: %s", DefaultAdminEmail)
	return true, nil
}
