package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/buycarr/marketplace-api/internal/model"
	"github.com/buycarr/marketplace-api/internal/repository"
)

// CarHandler serves the public catalogue and the admin listing CRUD.
// Admin gating happens in the router through the role middleware.
type CarHandler struct {
	Cars *repository.CarRepo
}

func NewCarHandler(cars *repository.CarRepo) *CarHandler {
	return &CarHandler{Cars: cars}
}

// requiredCarFields must be present and non-blank when creating a listing.
var requiredCarFields = []string{
	"brand", "model", "year", "mileage", "price",
	"color", "fuel_type", "transmission", "car_type",
}

// carPart is the wire shape of a listing.  Status is serialized as its
// fixed label; UpdatedAt is only populated where the contract includes it.
type carPart struct {
	ID           uint64  `json:"id"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	Mileage      int     `json:"mileage"`
	Price        float64 `json:"price"`
	Color        string  `json:"color"`
	FuelType     string  `json:"fuel_type"`
	Transmission string  `json:"transmission"`
	CarType      string  `json:"car_type"`
	Description  string  `json:"description"`
	Status       string  `json:"status"`
	Images       string  `json:"images"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at,omitempty"`
}

func carToPart(c model.Car, withUpdated bool) carPart {
	p := carPart{
		ID:           c.ID,
		Brand:        c.Brand,
		Model:        c.Model,
		Year:         c.Year,
		Mileage:      c.Mileage,
		Price:        c.Price,
		Color:        c.Color,
		FuelType:     c.FuelType,
		Transmission: c.Transmission,
		CarType:      c.CarType,
		Description:  c.Description,
		Status:       c.Status.Label(),
		Images:       c.Images,
		CreatedAt:    c.CreatedAt.UTC().Format(time.RFC3339),
	}
	if withUpdated {
		p.UpdatedAt = c.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return p
}

func carsToParts(cars []model.Car, withUpdated bool) []carPart {
	out := make([]carPart, 0, len(cars))
	for _, c := range cars {
		out = append(out, carToPart(c, withUpdated))
	}
	return out
}

// List handles GET /api/cars and returns every listing.
func (h *CarHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	cars, err := h.Cars.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"cars": carsToParts(cars, false)})
}

// Get handles GET /api/cars/:id.
func (h *CarHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	car, err := h.Cars.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrCarNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"car": carToPart(car, false)})
}

// ListByType handles GET /api/cars/type/:type.  Only available cars are
// returned, so sold listings drop out of the category browse.
func (h *CarHandler) ListByType(c echo.Context) error {
	carType := strings.TrimSpace(c.Param("type"))

	ctx, cancel := reqContext(c)
	defer cancel()

	cars, err := h.Cars.ListByType(ctx, carType)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"cars": carsToParts(cars, true)})
}

// Create handles POST /api/cars (admin only).  The body is read as a loose
// JSON object because existing clients send numeric fields both as numbers
// and as strings; values are coerced and validated here before anything
// touches the store.
func (h *CarHandler) Create(c echo.Context) error {
	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	for _, field := range requiredCarFields {
		v, ok := body[field]
		if !ok || v == nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "field " + field + " is required"})
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "field " + field + " is required"})
		}
	}
	year, ok := toInt(body["year"])
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "field year must be a number"})
	}
	mileage, ok := toInt(body["mileage"])
	if !ok || mileage < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "field mileage must be a non-negative number"})
	}
	price, ok := toFloat(body["price"])
	if !ok || price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "field price must be a non-negative number"})
	}

	car := model.Car{
		Year:    year,
		Mileage: mileage,
		Price:   price,
		Status:  model.CarAvailable,
	}
	car.Brand, _ = toStr(body["brand"])
	car.Model, _ = toStr(body["model"])
	car.Color, _ = toStr(body["color"])
	car.FuelType, _ = toStr(body["fuel_type"])
	car.Transmission, _ = toStr(body["transmission"])
	car.CarType, _ = toStr(body["car_type"])
	car.Description, _ = toStr(body["description"])
	car.Images, _ = toStr(body["images"])
	if raw, ok := toStr(body["status"]); ok {
		status, valid := model.ParseCarStatus(raw)
		if !valid {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		car.Status = status
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Cars.Create(ctx, &car); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create car failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "car created",
		"car":     carToPart(car, false),
	})
}

// Update handles PUT /api/cars/:id (admin only).  The update is partial:
// the stored record is loaded first and only the fields present in the
// body replace the stored values.
func (h *CarHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
	}
	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	car, err := h.Cars.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrCarNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if v, ok := toStr(body["brand"]); ok {
		car.Brand = v
	}
	if v, ok := toStr(body["model"]); ok {
		car.Model = v
	}
	if v, ok := body["year"]; ok {
		if n, valid := toInt(v); valid {
			car.Year = n
		} else {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "field year must be a number"})
		}
	}
	if v, ok := body["mileage"]; ok {
		if n, valid := toInt(v); valid && n >= 0 {
			car.Mileage = n
		} else {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "field mileage must be a non-negative number"})
		}
	}
	if v, ok := body["price"]; ok {
		if f, valid := toFloat(v); valid && f >= 0 {
			car.Price = f
		} else {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "field price must be a non-negative number"})
		}
	}
	if v, ok := toStr(body["color"]); ok {
		car.Color = v
	}
	if v, ok := toStr(body["fuel_type"]); ok {
		car.FuelType = v
	}
	if v, ok := toStr(body["transmission"]); ok {
		car.Transmission = v
	}
	if v, ok := toStr(body["car_type"]); ok {
		car.CarType = v
	}
	if v, ok := toStr(body["description"]); ok {
		car.Description = v
	}
	if v, ok := toStr(body["images"]); ok {
		car.Images = v
	}
	if v, ok := toStr(body["status"]); ok {
		status, valid := model.ParseCarStatus(v)
		if !valid {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		car.Status = status
	}

	if err := h.Cars.Update(ctx, &car); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "car updated",
		"car":     carToPart(car, false),
	})
}

// Delete handles DELETE /api/cars/:id (admin only).
func (h *CarHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Cars.Delete(ctx, id); err != nil {
		if err == repository.ErrCarNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "car deleted"})
}
