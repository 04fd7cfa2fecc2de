package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/buycarr/marketplace-api/internal/model"
)

// ReservationRepo provides persistence for the reservation workflow.
// Reservations are created PENDING by customers; confirm and cancel are
// admin transitions that also touch the car row, so those run as *Tx
// methods inside a handler-scoped transaction.  All timestamps are UTC.
type ReservationRepo struct{ db *sql.DB }

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can open a transaction that
// spans the reservation and its car.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// Create inserts a reservation in the PENDING state and returns the stored
// record.  Availability of the car is deliberately not checked: multiple
// pending reservations on one car are allowed and the admin picks which
// one to confirm.
func (r *ReservationRepo) Create(ctx context.Context, userID, carID uint64, message string) (model.Reservation, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO reservations (user_id, car_id, message, status) VALUES (?,?,?,?)",
		userID, carID, message, string(model.ReservationPending))
	if err != nil {
		return model.Reservation{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Reservation{}, err
	}
	rec := model.Reservation{
		ID:      uint64(id),
		UserID:  userID,
		CarID:   carID,
		Message: message,
		Status:  model.ReservationPending,
	}
	_ = r.db.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM reservations WHERE id=?", rec.ID).
		Scan(&rec.CreatedAt, &rec.UpdatedAt)
	return rec, nil
}

// GetByIDTx loads a reservation inside a transaction with a row lock, so a
// concurrent confirm and cancel on the same reservation serialize instead
// of both reading PENDING.
func (r *ReservationRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Reservation, error) {
	var rec model.Reservation
	var msg sql.NullString
	var status string
	err := tx.QueryRowContext(ctx,
		"SELECT id, user_id, car_id, message, status, created_at, updated_at FROM reservations WHERE id=? FOR UPDATE",
		id).Scan(&rec.ID, &rec.UserID, &rec.CarID, &msg, &status, &rec.CreatedAt, &rec.UpdatedAt)
	if err == sql.ErrNoRows {
		return rec, ErrReservationNotFound
	}
	if err != nil {
		return rec, err
	}
	rec.Message = msg.String
	rec.Status = model.ReservationStatus(status)
	return rec, nil
}

// UpdateStatusTx sets a reservation's status inside an existing transaction.
func (r *ReservationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status model.ReservationStatus) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE reservations SET status=? WHERE id=?", string(status), id)
	return err
}

// ReservationCarPart is the car summary nested in reservation listings.
type ReservationCarPart struct {
	ID     *uint64 `json:"id"`
	Brand  string  `json:"brand"`
	Model  string  `json:"model"`
	Year   int     `json:"year"`
	Price  float64 `json:"price"`
	Images string  `json:"images"`
}

// ReservationUserPart is the requester summary nested in the admin listing.
type ReservationUserPart struct {
	ID    *uint64 `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone string  `json:"phone"`
}

// ReservationDetail is one row of a reservation listing.  The User part is
// only populated (and serialized) for the admin view.
type ReservationDetail struct {
	ID        uint64               `json:"id"`
	Car       ReservationCarPart   `json:"car"`
	User      *ReservationUserPart `json:"user,omitempty"`
	Message   string               `json:"message"`
	Status    string               `json:"status"`
	CreatedAt string               `json:"created_at"`
	UpdatedAt string               `json:"updated_at"`
}

// scanDetail turns one joined row into a ReservationDetail, substituting
// the documented placeholders when the referenced car or user row has been
// deleted: a listing must never fail because of a dangling foreign key.
func scanDetail(rows *sql.Rows, withUser bool) (ReservationDetail, error) {
	var det ReservationDetail
	var msg sql.NullString
	var status string
	var created, updated time.Time
	var carID sql.NullInt64
	var brand, carModel, images sql.NullString
	var year sql.NullInt64
	var price sql.NullFloat64
	dest := []interface{}{
		&det.ID, &msg, &status, &created, &updated,
		&carID, &brand, &carModel, &year, &price, &images,
	}
	var userID sql.NullInt64
	var uname, uemail, uphone sql.NullString
	if withUser {
		dest = append(dest, &userID, &uname, &uemail, &uphone)
	}
	if err := rows.Scan(dest...); err != nil {
		return det, err
	}
	det.Message = msg.String
	det.Status = model.ReservationStatus(status).Label()
	det.CreatedAt = created.UTC().Format(time.RFC3339)
	det.UpdatedAt = updated.UTC().Format(time.RFC3339)

	if carID.Valid {
		cid := uint64(carID.Int64)
		det.Car = ReservationCarPart{
			ID:     &cid,
			Brand:  brand.String,
			Model:  carModel.String,
			Year:   int(year.Int64),
			Price:  price.Float64,
			Images: images.String,
		}
	} else {
		det.Car = ReservationCarPart{Brand: "N/A", Model: "N/A", Images: "[]"}
	}
	if withUser {
		if userID.Valid {
			uid := uint64(userID.Int64)
			det.User = &ReservationUserPart{ID: &uid, Name: uname.String, Email: uemail.String, Phone: uphone.String}
		} else {
			det.User = &ReservationUserPart{Name: "Usuário removido", Email: "N/A", Phone: "N/A"}
		}
	}
	return det, nil
}

// ListByUser returns the reservations of one user, each with its car
// summary, oldest first.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
	const q = `SELECT r.id, r.message, r.status, r.created_at, r.updated_at,
	                  c.id, c.brand, c.model, c.year, c.price, c.images
	           FROM reservations r
	           LEFT JOIN cars c ON c.id = r.car_id
	           WHERE r.user_id = ?
	           ORDER BY r.id`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ReservationDetail{}
	for rows.Next() {
		det, err := scanDetail(rows, false)
		if err != nil {
			return nil, err
		}
		out = append(out, det)
	}
	return out, rows.Err()
}

// ListAll returns every reservation with car and requester summaries,
// newest first, for the admin dashboard.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]ReservationDetail, error) {
	const q = `SELECT r.id, r.message, r.status, r.created_at, r.updated_at,
	                  c.id, c.brand, c.model, c.year, c.price, c.images,
	                  u.id, u.name, u.email, u.phone
	           FROM reservations r
	           LEFT JOIN cars c ON c.id = r.car_id
	           LEFT JOIN users u ON u.id = r.user_id
	           ORDER BY r.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ReservationDetail{}
	for rows.Next() {
		det, err := scanDetail(rows, true)
		if err != nil {
			return nil, err
		}
		out = append(out, det)
	}
	return out, rows.Err()
}
