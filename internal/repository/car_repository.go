package repository

import (
	"context"
	"database/sql"

	"github.com/buycarr/marketplace-api/internal/model"
)

// CarRepo provides persistence for car listings.  All timestamp columns are
// stored in UTC.
type CarRepo struct{ db *sql.DB }

func NewCarRepo(db *sql.DB) *CarRepo { return &CarRepo{db: db} }

// DB exposes the underlying handle for handler-driven transactions that
// span cars and reservations.
func (r *CarRepo) DB() *sql.DB { return r.db }

const carCols = "id,brand,model,year,mileage,price,color,fuel_type,transmission,car_type,description,status,images,created_at,updated_at"

func scanCar(scan func(dest ...interface{}) error) (model.Car, error) {
	var c model.Car
	var desc, images sql.NullString
	var status string
	err := scan(&c.ID, &c.Brand, &c.Model, &c.Year, &c.Mileage, &c.Price,
		&c.Color, &c.FuelType, &c.Transmission, &c.CarType, &desc, &status,
		&images, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return c, err
	}
	c.Description = desc.String
	c.Images = images.String
	c.Status = model.CarStatus(status)
	return c, nil
}

// Create inserts a listing and queries the row back so generated defaults
// and timestamps are populated on the provided record.
func (r *CarRepo) Create(ctx context.Context, car *model.Car) error {
	if car.Status == "" {
		car.Status = model.CarAvailable
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO cars (brand, model, year, mileage, price, color, fuel_type, transmission, car_type, description, status, images)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		car.Brand, car.Model, car.Year, car.Mileage, car.Price, car.Color,
		car.FuelType, car.Transmission, car.CarType, car.Description,
		string(car.Status), car.Images)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	created, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*car = created
	return nil
}

// GetByID fetches a listing by id.
func (r *CarRepo) GetByID(ctx context.Context, id uint64) (model.Car, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+carCols+" FROM cars WHERE id=? LIMIT 1", id)
	c, err := scanCar(row.Scan)
	if err == sql.ErrNoRows {
		return c, ErrCarNotFound
	}
	return c, err
}

// List returns every listing regardless of status.
func (r *CarRepo) List(ctx context.Context) ([]model.Car, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+carCols+" FROM cars ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCars(rows)
}

// ListByType returns available listings of the given category.  Sold cars
// are excluded so the type browse only shows what can still be bought.
func (r *CarRepo) ListByType(ctx context.Context, carType string) ([]model.Car, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+carCols+" FROM cars WHERE car_type=? AND status=? ORDER BY id",
		carType, string(model.CarAvailable))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCars(rows)
}

func collectCars(rows *sql.Rows) ([]model.Car, error) {
	out := []model.Car{}
	for rows.Next() {
		c, err := scanCar(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update persists the handler-merged state of a listing.
func (r *CarRepo) Update(ctx context.Context, car *model.Car) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE cars SET brand=?, model=?, year=?, mileage=?, price=?, color=?,
		 fuel_type=?, transmission=?, car_type=?, description=?, status=?, images=?
		 WHERE id=?`,
		car.Brand, car.Model, car.Year, car.Mileage, car.Price, car.Color,
		car.FuelType, car.Transmission, car.CarType, car.Description,
		string(car.Status), car.Images, car.ID)
	if err != nil {
		return err
	}
	updated, err := r.GetByID(ctx, car.ID)
	if err != nil {
		return err
	}
	*car = updated
	return nil
}

// Delete removes a listing together with its favorites.  Favorites are
// meaningless without the car, so both deletes run in one transaction.
// Reservations and comments keep their rows; the listing endpoints read
// them orphan-tolerantly.
func (r *CarRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	res, err := tx.ExecContext(ctx, "DELETE FROM cars WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCarNotFound
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM favorites WHERE car_id=?", id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// UpdateStatusTx flips a car's status inside an existing transaction.  A
// missing car is not an error here: reservation transitions tolerate
// listings that were deleted after the reservation was made.
func (r *CarRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status model.CarStatus) error {
	_, err := tx.ExecContext(ctx, "UPDATE cars SET status=? WHERE id=?", string(status), id)
	return err
}
