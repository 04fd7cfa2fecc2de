package model

import "time"

// Car represents a vehicle listing as stored in the `cars` table.  The
// Images field holds the serialized list of image references exactly as the
// client submitted it; the server never interprets its contents.
//
// Fields:
//  ID           – primary key identifier.
//  Brand        – manufacturer name.
//  Model        – model name.
//  Year         – model year.
//  Mileage      – odometer reading, non-negative.
//  Price        – asking price.
//  Color        – exterior color.
//  FuelType     – fuel type (gasoline, diesel, ...).
//  Transmission – transmission type.
//  CarType      – category used by the type browse endpoint.
//  Description  – optional free text.
//  Status       – lifecycle state (AVAILABLE, SOLD).
//  Images       – serialized image reference list.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – timestamp of last update.
type Car struct {
	ID           uint64    // cars.id
	Brand        string    // cars.brand
	Model        string    // cars.model
	Year         int       // cars.year
	Mileage      int       // cars.mileage
	Price        float64   // cars.price
	Color        string    // cars.color
	FuelType     string    // cars.fuel_type
	Transmission string    // cars.transmission
	CarType      string    // cars.car_type
	Description  string    // cars.description
	Status       CarStatus // cars.status
	Images       string    // cars.images
	CreatedAt    time.Time // cars.created_at
	UpdatedAt    time.Time // cars.updated_at
}
