// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gen2brain/webp"
	"github.com/gin-gonic/gin"
	"golang.org/x/image/draw"

	"github.com/yapster-gg/yapster-api/internal/common"
	"github.com/yapster-gg/yapster-api/internal/middleware"
)

const (
	maxImageUpload = 25 * 1024 * 1024
	avatarSize     = 512
	bannerWidth    = 1200
	bannerHeight   = 400
)

// UploadImageHandler accepts a profile image (?avatar=true or
// ?banner=true), center-crops and scales it, re-encodes as WebP and stores
// it base64-encoded on the caller's user document.
func (h *Handler) UploadImageHandler(c *gin.Context) {
	actorID, ok := middleware.SessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	isAvatar := c.Query("avatar") == "true"
	isBanner := c.Query("banner") == "true"
	if isAvatar == isBanner {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Specify exactly one of avatar=true or banner=true"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}
	defer file.Close()

	if header.Size > maxImageUpload {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size too large (max 25MB)"})
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".gif" && ext != ".webp" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type (allowed: jpg, jpeg, png, gif, webp)"})
		return
	}

	img, _, err := image.Decode(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to decode image"})
		return
	}

	field := "image"
	targetW, targetH := avatarSize, avatarSize
	if isBanner {
		field = "banner"
		targetW, targetH = bannerWidth, bannerHeight
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, centerCrop(img.Bounds(), targetW, targetH), draw.Over, nil)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, webp.Options{Lossless: false, Quality: 85}); err != nil {
		h.respondError(c, err, "Failed to encode image to WebP")
		return
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	if err := h.Store.SetUserFields(c.Request.Context(), actorID, map[string]any{field: encoded}); err != nil {
		h.respondError(c, err, "Failed to store image")
		return
	}

	url := "/api/image/" + actorID
	if isBanner {
		url += "?banner=true"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}

// ServeImageHandler streams a user's stored avatar or banner.
func (h *Handler) ServeImageHandler(c *gin.Context) {
	user, err := h.Store.UserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.respondError(c, err, "Failed to fetch image")
		return
	}

	encoded := user.Image
	if c.Query("banner") == "true" {
		encoded = user.Banner
	}
	if encoded == "" {
		c.Status(http.StatusNotFound)
		return
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		h.respondError(c, err, "Failed to decode stored image")
		return
	}

	c.Header("Cache-Control", "public, max-age=172800")
	c.Header("Content-Type", "image/webp")
	c.Writer.Write(data)
}

// centerCrop picks the largest rectangle of the source matching the target
// aspect ratio, centered.
func centerCrop(bounds image.Rectangle, targetW, targetH int) image.Rectangle {
	w := bounds.Dx()
	h := bounds.Dy()

	cropW := w
	cropH := w * targetH / targetW
	if cropH > h {
		cropH = h
		cropW = h * targetW / targetH
	}

	x0 := bounds.Min.X + (w-cropW)/2
	y0 := bounds.Min.Y + (h-cropH)/2
	return image.Rect(x0, y0, x0+cropW, y0+cropH)
}
