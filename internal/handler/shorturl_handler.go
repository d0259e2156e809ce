package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shorturl-go/internal/apperrors"
	"shorturl-go/internal/dto"
	"shorturl-go/internal/middleware"
	"shorturl-go/internal/service"
)

// CreateShortURLHandler POST /shorten/
func CreateShortURLHandler(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		_ = c.Error(apperrors.UnauthorizedErrorDefault())
		return
	}

	var req dto.ShortenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zap.L().Warn("Request body binding failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		_ = c.Error(apperrors.InvalidRequestErrorDefault())
		return
	}

	resp, err := service.CreateShortURL(c.Request.Context(), user.ID, req.URL)
	if err != nil {
		zap.L().Warn("Short URL creation failed",
			zap.Error(err),
			zap.Uint("owner_id", user.ID),
		)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ResolveShortURLHandler GET /shorten/:code
func ResolveShortURLHandler(c *gin.Context) {
	code := c.Param("code")

	resp, err := service.ResolveShortURL(c.Request.Context(), code)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateShortURLHandler PATCH /shorten/:code
func UpdateShortURLHandler(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		_ = c.Error(apperrors.UnauthorizedErrorDefault())
		return
	}

	code := c.Param("code")

	var req dto.ShortenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.InvalidRequestErrorDefault())
		return
	}

	if err := service.UpdateShortURL(c.Request.Context(), code, user.ID, req.URL); err != nil {
		zap.L().Warn("Short URL update failed",
			zap.Error(err),
			zap.String("short_code", code),
			zap.Uint("owner_id", user.ID),
		)
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusResetContent)
}

// DeleteShortURLHandler DELETE /shorten/:code
func DeleteShortURLHandler(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		_ = c.Error(apperrors.UnauthorizedErrorDefault())
		return
	}

	code := c.Param("code")

	if err := service.DeleteShortURL(c.Request.Context(), code, user.ID); err != nil {
		zap.L().Warn("Short URL delete failed",
			zap.Error(err),
			zap.String("short_code", code),
			zap.Uint("owner_id", user.ID),
		)
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
