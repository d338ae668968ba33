// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yapster-gg/yapster-api/internal/common"
	"github.com/yapster-gg/yapster-api/internal/config"
	"github.com/yapster-gg/yapster-api/internal/coordinator"
	"github.com/yapster-gg/yapster-api/internal/models"
)

const postCacheTTL = 5 * time.Minute

// Store is the document-store surface the handlers use directly, on top
// of what the coordinator already needs.
type Store interface {
	coordinator.Store

	UserByUsername(ctx context.Context, username string) (*models.User, error)
	UsersByIDs(ctx context.Context, ids []string) ([]models.User, error)
	UsersExcept(ctx context.Context, id string) ([]models.User, error)
	InsertUser(ctx context.Context, user *models.User) (string, error)
	SetUserFields(ctx context.Context, id string, fields map[string]any) error
	Ping(ctx context.Context) error
}

type Handler struct {
	Store       Store
	Coordinator *coordinator.Coordinator
	Config      *config.AppConfig
	Posts       *postCache
	Log         *slog.Logger
}

func NewHandler(s Store, coord *coordinator.Coordinator, cfg *config.AppConfig, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		Store:       s,
		Coordinator: coord,
		Config:      cfg,
		Posts:       newPostCache(postCacheTTL),
		Log:         log,
	}
}

// respondError maps a coordinator/store error onto the JSON error contract:
// 400 invalid operation, 403 forbidden, 404 missing entity, 500 otherwise.
// fallback is the user-facing message for unexpected failures; the real
// error only goes to the log.
func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, common.ErrInvalidOperation):
		c.JSON(http.StatusBadRequest, gin.H{"error": userMessage(err, common.ErrInvalidOperation)})
	case errors.Is(err, common.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, common.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": userMessage(err, common.ErrForbidden)})
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": userMessage(err, common.ErrNotFound)})
	case errors.Is(err, common.ErrStoreFailure):
		h.Log.Error("store failure", "error", err, "path", c.Request.URL.Path, "request_id", c.GetString("request_id"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	default:
		h.Log.Error(fallback, "error", err, "path", c.Request.URL.Path, "request_id", c.GetString("request_id"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// userMessage strips the trailing sentinel from a wrapped error, leaving
// the human-readable part. A bare sentinel falls back to its own text.
func userMessage(err error, sentinel error) string {
	msg := strings.TrimSuffix(err.Error(), ": "+sentinel.Error())
	if msg == "" || msg == sentinel.Error() {
		return capitalize(sentinel.Error())
	}
	return capitalize(msg)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
