// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yapster-gg/yapster-api/internal/common"
	"github.com/yapster-gg/yapster-api/internal/middleware"
)

func (h *Handler) LikePostHandler(c *gin.Context) {
	actorID, ok := middleware.SessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id := c.Param("id")

	res, err := h.Coordinator.ToggleLike(c.Request.Context(), actorID, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		h.respondError(c, err, "Failed to like/unlike post")
		return
	}

	h.Posts.Invalidate(id)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"liked":     res.Active,
		"likeCount": res.Count,
	})
}

// RemovePostLikeHandler drops the post from the caller's own likes list
// without touching the post's likes array. Local cleanup only; the global
// like count is unaffected.
func (h *Handler) RemovePostLikeHandler(c *gin.Context) {
	actorID, ok := middleware.SessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.Coordinator.RemoveLike(c.Request.Context(), actorID, c.Param("id")); err != nil {
		h.respondError(c, err, "Failed to remove post from likes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) SavePostHandler(c *gin.Context) {
	actorID, ok := middleware.SessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id := c.Param("id")

	res, err := h.Coordinator.ToggleSave(c.Request.Context(), actorID, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		h.respondError(c, err, "Failed to save/unsave post")
		return
	}

	h.Posts.Invalidate(id)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"saved":     res.Active,
		"saveCount": res.Count,
	})
}

func (h *Handler) FollowHandler(c *gin.Context) {
	actorID, ok := middleware.SessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	res, err := h.Coordinator.ToggleFollow(c.Request.Context(), actorID, c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.respondError(c, err, "Failed to follow/unfollow user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"following":      res.Following,
		"followerCount":  res.FollowerCount,
		"followingCount": res.FollowingCount,
	})
}

func (h *Handler) LikeCommentHandler(c *gin.Context) {
	actorID, ok := middleware.SessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	res, err := h.Coordinator.ToggleCommentLike(c.Request.Context(), actorID, c.Param("commentId"))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		h.respondError(c, err, "Failed to like/unlike comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"liked":     res.Active,
		"likeCount": res.Count,
	})
}
