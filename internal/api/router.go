// SPDX-License-Identifier: AGPL-3.0-only
package api

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/yapster-gg/yapster-api/internal/api/handlers"
	"github.com/yapster-gg/yapster-api/internal/middleware"
)

// NewRouter builds the gin engine: cookie sessions, security headers,
// request IDs, the public account/health routes and the authenticated
// /api surface.
func NewRouter(h *handlers.Handler, sessionSecret string) *gin.Engine {
	r := gin.Default()

	sessionStore := cookie.NewStore([]byte(sessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions("yapster_session", sessionStore))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RequestID())

	r.GET("/health", h.HealthCheckHandler)

	account := r.Group("/account")
	{
		account.POST("/create", h.CreateAccountHandler)
		account.POST("/login", h.LoginHandler)
		account.POST("/logout", h.LogoutHandler)
	}

	apiGroup := r.Group("/api", middleware.RequireAuth())
	{
		apiGroup.GET("/me", h.MeHandler)
		apiGroup.PATCH("/me", h.UpdateProfileHandler)
		apiGroup.POST("/me/post", h.CreatePostHandler)
		apiGroup.PATCH("/me/post/:id/like", h.LikePostHandler)
		apiGroup.DELETE("/me/post/:id/like", h.RemovePostLikeHandler)
		apiGroup.PATCH("/me/post/:id/save", h.SavePostHandler)
		apiGroup.PATCH("/me/user/:id/follow", h.FollowHandler)

		apiGroup.GET("/post/:id", h.GetPostHandler)
		apiGroup.DELETE("/post/:id", h.DeletePostHandler)
		apiGroup.GET("/post/:id/comments", h.ListCommentsHandler)
		apiGroup.POST("/post/:id/comments", h.CreateCommentHandler)
		apiGroup.GET("/post/:id/comments/:commentId", h.GetCommentHandler)
		apiGroup.PATCH("/post/:id/comments/:commentId/like", h.LikeCommentHandler)

		apiGroup.GET("/user/username/:username", h.UserByUsernameHandler)
		apiGroup.GET("/user/id/:id", h.UserByIDHandler)
		apiGroup.POST("/user/batch", h.UserBatchHandler)
		apiGroup.GET("/user/discover", h.DiscoverHandler)

		apiGroup.POST("/image", h.UploadImageHandler)
		apiGroup.GET("/image/:id", h.ServeImageHandler)
	}

	return r
}
