package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/buycarr/marketplace-api/internal/model"
)

// FavoriteRepo provides persistence for the user/car favorite relation.
// The unique key on (user_id, car_id) is the authority on pair uniqueness;
// the repository only translates the constraint violation into a sentinel.
type FavoriteRepo struct{ db *sql.DB }

func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// Create inserts a favorite for the pair and returns the stored record.
// A duplicate pair surfaces as ErrFavoriteExists even when two requests
// race past the handler's existence check.
func (r *FavoriteRepo) Create(ctx context.Context, userID, carID uint64) (model.Favorite, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO favorites (user_id, car_id) VALUES (?,?)", userID, carID)
	if err != nil {
		if isDuplicate(err) {
			return model.Favorite{}, ErrFavoriteExists
		}
		return model.Favorite{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Favorite{}, err
	}
	fav := model.Favorite{ID: uint64(id), UserID: userID, CarID: carID}
	_ = r.db.QueryRowContext(ctx,
		"SELECT created_at FROM favorites WHERE id=?", fav.ID).Scan(&fav.CreatedAt)
	return fav, nil
}

// DeleteForUser removes a favorite by id, restricted to the owning user so
// one user cannot remove another user's favorites.
func (r *FavoriteRepo) DeleteForUser(ctx context.Context, favoriteID, userID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM favorites WHERE id=? AND user_id=?", favoriteID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// FavoriteCar is the favorites-listing row: a car summary plus the
// favorite's own id and creation time.  The JSON tags mirror the shape the
// clients already consume (the car id is the top-level id).
type FavoriteCar struct {
	CarID      uint64  `json:"id"`
	Brand      string  `json:"brand"`
	Model      string  `json:"model"`
	Year       int     `json:"year"`
	Price      float64 `json:"price"`
	Images     string  `json:"images"`
	FavoriteID uint64  `json:"favorite_id"`
	AddedAt    string  `json:"added_at"`
}

// ListByUser returns the user's favorites joined with their car summaries.
func (r *FavoriteRepo) ListByUser(ctx context.Context, userID uint64) ([]FavoriteCar, error) {
	const q = `SELECT f.id, f.created_at, c.id, c.brand, c.model, c.year, c.price, c.images
	           FROM favorites f
	           JOIN cars c ON c.id = f.car_id
	           WHERE f.user_id = ?
	           ORDER BY f.id`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []FavoriteCar{}
	for rows.Next() {
		var fc FavoriteCar
		var added time.Time
		var images sql.NullString
		if err := rows.Scan(&fc.FavoriteID, &added, &fc.CarID, &fc.Brand, &fc.Model, &fc.Year, &fc.Price, &images); err != nil {
			return nil, err
		}
		fc.Images = images.String
		fc.AddedAt = added.UTC().Format(time.RFC3339)
		out = append(out, fc)
	}
	return out, rows.Err()
}
