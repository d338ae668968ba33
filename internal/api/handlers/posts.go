// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yapster-gg/yapster-api/internal/cache"
	"github.com/yapster-gg/yapster-api/internal/common"
	"github.com/yapster-gg/yapster-api/internal/middleware"
	"github.com/yapster-gg/yapster-api/internal/models"
	"github.com/yapster-gg/yapster-api/internal/validation"
)

type postCache = cache.TTL[*models.Post]

func newPostCache(ttl time.Duration) *postCache {
	return cache.NewTTL[*models.Post](ttl)
}

type createPostRequest struct {
	Content models.PostContent `json:"content"`
}

func (h *Handler) CreatePostHandler(c *gin.Context) {
	actorID, ok := middleware.SessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	content, err := validation.PostContent(req.Content)
	if err != nil {
		h.respondError(c, err, "Failed to create post")
		return
	}

	post, err := h.Coordinator.CreatePost(c.Request.Context(), actorID, content)
	if err != nil {
		h.respondError(c, err, "Failed to create post")
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) GetPostHandler(c *gin.Context) {
	id := c.Param("id")

	if post, ok := h.Posts.Get(id); ok {
		c.JSON(http.StatusOK, post)
		return
	}

	post, err := h.Store.PostByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		h.respondError(c, err, "Failed to fetch post")
		return
	}

	h.Posts.Set(id, post)
	c.JSON(http.StatusOK, post)
}

func (h *Handler) DeletePostHandler(c *gin.Context) {
	actorID, ok := middleware.SessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id := c.Param("id")

	err := h.Coordinator.DeletePost(c.Request.Context(), actorID, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		h.respondError(c, err, "Failed to delete post")
		return
	}

	h.Posts.Invalidate(id)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post deleted"})
}
