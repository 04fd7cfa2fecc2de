package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/buycarr/marketplace-api/internal/model"
)

// CommentRepo provides persistence for ratings and comments.  Comments are
// append-only: there are no update or delete operations.
type CommentRepo struct{ db *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{db: db} }

// Create inserts a comment and populates its generated id and timestamp.
func (r *CommentRepo) Create(ctx context.Context, cm *model.Comment) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO comments (user_id, car_id, comment, rating, photo) VALUES (?,?,?,?,?)",
		cm.UserID, cm.CarID, cm.Comment, cm.Rating, cm.Photo)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	cm.ID = uint64(id)
	_ = r.db.QueryRowContext(ctx,
		"SELECT created_at FROM comments WHERE id=?", cm.ID).Scan(&cm.CreatedAt)
	return nil
}

// CarComment is one row of the per-car comment listing.
type CarComment struct {
	ID        uint64 `json:"id"`
	Comment   string `json:"comment"`
	Rating    int    `json:"rating"`
	UserName  string `json:"user_name"`
	CreatedAt string `json:"created_at"`
}

// ListByCar returns the comments on one car, newest first.  Authors whose
// accounts no longer resolve fall back to a generic display name.
func (r *CommentRepo) ListByCar(ctx context.Context, carID uint64) ([]CarComment, error) {
	const q = `SELECT cm.id, cm.comment, cm.rating, cm.created_at, u.name
	           FROM comments cm
	           LEFT JOIN users u ON u.id = cm.user_id
	           WHERE cm.car_id = ?
	           ORDER BY cm.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, carID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []CarComment{}
	for rows.Next() {
		var cc CarComment
		var created time.Time
		var name sql.NullString
		if err := rows.Scan(&cc.ID, &cc.Comment, &cc.Rating, &created, &name); err != nil {
			return nil, err
		}
		cc.UserName = name.String
		if cc.UserName == "" {
			cc.UserName = "Usuário"
		}
		cc.CreatedAt = created.UTC().Format(time.RFC3339)
		out = append(out, cc)
	}
	return out, rows.Err()
}

// SiteComment is one row of the all-comments listing, enriched with the
// author's display name and the car's brand/model when still resolvable.
type SiteComment struct {
	ID        uint64  `json:"id"`
	Comment   string  `json:"comment"`
	Rating    int     `json:"rating"`
	Photo     *string `json:"photo"`
	UserName  string  `json:"user_name"`
	CarBrand  *string `json:"car_brand"`
	CarModel  *string `json:"car_model"`
	CreatedAt string  `json:"created_at"`
}

// ListAll returns every comment, newest first.  General comments (no car)
// and comments on deleted cars carry null car fields instead of failing.
func (r *CommentRepo) ListAll(ctx context.Context) ([]SiteComment, error) {
	const q = `SELECT cm.id, cm.comment, cm.rating, cm.photo, cm.created_at,
	                  u.name, c.brand, c.model
	           FROM comments cm
	           LEFT JOIN users u ON u.id = cm.user_id
	           LEFT JOIN cars c ON c.id = cm.car_id
	           ORDER BY cm.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []SiteComment{}
	for rows.Next() {
		var sc SiteComment
		var created time.Time
		var photo, name, brand, carModel sql.NullString
		if err := rows.Scan(&sc.ID, &sc.Comment, &sc.Rating, &photo, &created, &name, &brand, &carModel); err != nil {
			return nil, err
		}
		if photo.Valid {
			p := photo.String
			sc.Photo = &p
		}
		sc.UserName = name.String
		if sc.UserName == "" {
			sc.UserName = "Usuário"
		}
		if brand.Valid {
			b := brand.String
			sc.CarBrand = &b
		}
		if carModel.Valid {
			m := carModel.String
			sc.CarModel = &m
		}
		sc.CreatedAt = created.UTC().Format(time.RFC3339)
		out = append(out, sc)
	}
	return out, rows.Err()
}
