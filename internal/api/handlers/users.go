// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yapster-gg/yapster-api/internal/common"
	"github.com/yapster-gg/yapster-api/internal/middleware"
	"github.com/yapster-gg/yapster-api/internal/models"
	"github.com/yapster-gg/yapster-api/internal/validation"
)

const maxBatchUsers = 50

func (h *Handler) MeHandler(c *gin.Context) {
	actorID, ok := middleware.SessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.Store.UserByID(c.Request.Context(), actorID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.respondError(c, err, "Failed to fetch profile")
		return
	}

	// The owner additionally sees their private arrays.
	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID.Hex(),
		"username":      user.Username,
		"name":          user.Name,
		"image":         user.Image,
		"banner":        user.Banner,
		"pronouns":      user.Pronouns,
		"bio":           user.Bio,
		"verified":      user.Verified,
		"followers":     orEmpty(user.Followers),
		"following":     orEmpty(user.Following),
		"posts":         orEmpty(user.Posts),
		"likes":         orEmpty(user.Likes),
		"saves":         orEmpty(user.Saves),
		"comments":      orEmpty(user.Comments),
		"likedComments": orEmpty(user.LikedComments),
	})
}

type updateProfileRequest struct {
	Name     *string `json:"name"`
	Pronouns *string `json:"pronouns"`
	Bio      *string `json:"bio"`
}

// UpdateProfileHandler patches the caller's profile text fields. Absent
// fields are left unchanged.
func (h *Handler) UpdateProfileHandler(c *gin.Context) {
	actorID, ok := middleware.SessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	fields := make(map[string]any)
	if req.Name != nil {
		name, err := validation.Name(*req.Name)
		if err != nil {
			h.respondError(c, err, "Failed to update profile")
			return
		}
		fields["name"] = name
	}
	if req.Pronouns != nil {
		pronouns, err := validation.Pronouns(*req.Pronouns)
		if err != nil {
			h.respondError(c, err, "Failed to update profile")
			return
		}
		fields["pronouns"] = pronouns
	}
	if req.Bio != nil {
		bio, err := validation.Bio(*req.Bio)
		if err != nil {
			h.respondError(c, err, "Failed to update profile")
			return
		}
		fields["bio"] = bio
	}

	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := h.Store.SetUserFields(c.Request.Context(), actorID, fields); err != nil {
		h.respondError(c, err, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated successfully"})
}

func (h *Handler) UserByUsernameHandler(c *gin.Context) {
	username := strings.ToLower(c.Param("username"))

	user, err := h.Store.UserByUsername(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.respondError(c, err, "Failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

func (h *Handler) UserByIDHandler(c *gin.Context) {
	user, err := h.Store.UserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.respondError(c, err, "Failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

type batchRequest struct {
	IDs []string `json:"ids"`
}

func (h *Handler) UserBatchHandler(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IDs == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if len(req.IDs) > maxBatchUsers {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Too many IDs requested"})
		return
	}

	users, err := h.Store.UsersByIDs(c.Request.Context(), req.IDs)
	if err != nil {
		h.respondError(c, err, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, publicUsers(users))
}

// DiscoverHandler lists every profile except the caller's.
func (h *Handler) DiscoverHandler(c *gin.Context) {
	actorID, ok := middleware.SessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	users, err := h.Store.UsersExcept(c.Request.Context(), actorID)
	if err != nil {
		h.respondError(c, err, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, publicUsers(users))
}

func publicUsers(users []models.User) []models.PublicUser {
	out := make([]models.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
