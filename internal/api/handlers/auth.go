// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yapster-gg/yapster-api/internal/authhelp"
	"github.com/yapster-gg/yapster-api/internal/common"
	"github.com/yapster-gg/yapster-api/internal/models"
	"github.com/yapster-gg/yapster-api/internal/validation"
)

type createAccountRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Pronouns string `json:"pronouns"`
	Bio      string `json:"bio"`
}

func (h *Handler) CreateAccountHandler(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	username, err := validation.Username(req.Username)
	if err != nil {
		h.respondError(c, err, "Failed to create account")
		return
	}
	name, err := validation.Name(req.Name)
	if err != nil {
		h.respondError(c, err, "Failed to create account")
		return
	}
	pronouns, err := validation.Pronouns(req.Pronouns)
	if err != nil {
		h.respondError(c, err, "Failed to create account")
		return
	}
	bio, err := validation.Bio(req.Bio)
	if err != nil {
		h.respondError(c, err, "Failed to create account")
		return
	}
	if err := authhelp.ValidatePasswordStrength(req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": capitalize(err.Error())})
		return
	}

	ctx := c.Request.Context()

	if _, err := h.Store.UserByUsername(ctx, username); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is taken"})
		return
	} else if !errors.Is(err, common.ErrNotFound) {
		h.respondError(c, err, "Failed to create account")
		return
	}

	hash, err := authhelp.HashPassword(req.Password)
	if err != nil {
		h.respondError(c, err, "Failed to create account")
		return
	}

	user := &models.User{
		Username:      username,
		Name:          name,
		Pronouns:      pronouns,
		Bio:           bio,
		PasswordHash:  hash,
		Followers:     []string{},
		Following:     []string{},
		Posts:         []string{},
		Likes:         []string{},
		Saves:         []string{},
		Comments:      []string{},
		LikedComments: []string{},
	}

	id, err := h.Store.InsertUser(ctx, user)
	if err != nil {
		h.respondError(c, err, "Failed to create account")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", id)
	session.Set("username", username)
	session.Save()

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user.Public()})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	username, err := validation.Username(req.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	user, err := h.Store.UserByUsername(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		h.respondError(c, err, "Failed to log in")
		return
	}

	if !authhelp.CheckPasswordHash(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID.Hex())
	session.Set("username", user.Username)
	session.Save()

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user.Public()})
}

func (h *Handler) LogoutHandler(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"success": true})
}
