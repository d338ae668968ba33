// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yapster-gg/yapster-api/internal/common"
	"github.com/yapster-gg/yapster-api/internal/middleware"
	"github.com/yapster-gg/yapster-api/internal/validation"
)

func (h *Handler) ListCommentsHandler(c *gin.Context) {
	comments, err := h.Coordinator.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		h.respondError(c, err, "Failed to fetch comments")
		return
	}

	c.JSON(http.StatusOK, comments)
}

type createCommentRequest struct {
	Text     string  `json:"text"`
	ParentID *string `json:"parentId"`
}

func (h *Handler) CreateCommentHandler(c *gin.Context) {
	actorID, ok := middleware.SessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	text, err := validation.CommentText(req.Text)
	if err != nil {
		h.respondError(c, err, "Failed to create comment")
		return
	}

	postID := c.Param("id")

	comment, err := h.Coordinator.CreateComment(c.Request.Context(), actorID, postID, text, req.ParentID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post or parent comment not found"})
			return
		}
		h.respondError(c, err, "Failed to create comment")
		return
	}

	h.Posts.Invalidate(postID)
	c.JSON(http.StatusOK, comment)
}

func (h *Handler) GetCommentHandler(c *gin.Context) {
	comment, err := h.Store.CommentByID(c.Request.Context(), c.Param("commentId"))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		h.respondError(c, err, "Failed to fetch comment")
		return
	}

	c.JSON(http.StatusOK, comment)
}
