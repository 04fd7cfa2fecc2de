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

// CommentHandler serves ratings: per-car comments and general site
// comments.  Comments are immutable; there are no update or delete routes.
type CommentHandler struct {
	Comments *repository.CommentRepo
	Cars     *repository.CarRepo
	Users    *repository.UserRepo
}

func NewCommentHandler(cm *repository.CommentRepo, cars *repository.CarRepo, users *repository.UserRepo) *CommentHandler {
	return &CommentHandler{Comments: cm, Cars: cars, Users: users}
}

type commentReq struct {
	Comment string      `json:"comment"`
	Rating  interface{} `json:"rating"`
	Photo   *string     `json:"photo"`
}

// parseCommentReq validates the shared comment fields.  The rating arrives
// as a number or a numeric string depending on the client.
func parseCommentReq(c echo.Context) (text string, rating int, photo *string, errMsg string) {
	var req commentReq
	if err := c.Bind(&req); err != nil {
		return "", 0, nil, "invalid body"
	}
	text = strings.TrimSpace(req.Comment)
	if text == "" || req.Rating == nil {
		return "", 0, nil, "comment and rating are required"
	}
	rating, ok := toInt(req.Rating)
	if !ok {
		return "", 0, nil, "rating must be a number"
	}
	if rating < 1 || rating > 5 {
		return "", 0, nil, "rating must be between 1 and 5"
	}
	return text, rating, req.Photo, ""
}

// userName resolves a display name for a comment author, falling back to a
// generic label when the account cannot be loaded.
func (h *CommentHandler) userName(c echo.Context, userID uint64) string {
	ctx, cancel := reqContext(c)
	defer cancel()
	if u, err := h.Users.GetByID(ctx, userID); err == nil {
		return u.Name
	}
	return "Usuário"
}

// ListByCar handles GET /api/cars/:id/comments (public).  The response is
// a bare array, newest first.
func (h *CommentHandler) ListByCar(c echo.Context) error {
	carID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || carID == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	items, err := h.Comments.ListByCar(ctx, carID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, items)
}

// CreateForCar handles POST /api/cars/:id/comments.
func (h *CommentHandler) CreateForCar(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	carID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || carID == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
	}
	text, rating, _, errMsg := parseCommentReq(c)
	if errMsg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": errMsg})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if _, err := h.Cars.GetByID(ctx, carID); err != nil {
		if err == repository.ErrCarNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	cm := model.Comment{UserID: uid, CarID: &carID, Comment: text, Rating: rating}
	if err := h.Comments.Create(ctx, &cm); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create comment failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":         cm.ID,
		"comment":    cm.Comment,
		"rating":     cm.Rating,
		"user_name":  h.userName(c, uid),
		"created_at": cm.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// ListAll handles GET /api/comments (public): every comment, newest first,
// enriched with author name and car brand/model where resolvable.
func (h *CommentHandler) ListAll(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	items, err := h.Comments.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, items)
}

// CreateGeneral handles POST /api/comments: a site-wide comment with no
// car reference and an optional photo.  The photo value is whatever
// reference string the client chose, an inline-encoded image or an
// uploaded-file URL; it is persisted verbatim.  A token whose subject
// cannot be resolved to a user id yields 422, which tells the client to
// re-authenticate rather than retry.
func (h *CommentHandler) CreateGeneral(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "could not process token, please log in again"})
	}
	text, rating, photo, errMsg := parseCommentReq(c)
	if errMsg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": errMsg})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	cm := model.Comment{UserID: uid, Comment: text, Rating: rating, Photo: photo}
	if err := h.Comments.Create(ctx, &cm); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create comment failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":         cm.ID,
		"comment":    cm.Comment,
		"rating":     cm.Rating,
		"photo":      cm.Photo,
		"user_name":  h.userName(c, uid),
		"created_at": cm.CreatedAt.UTC().Format(time.RFC3339),
	})
}
