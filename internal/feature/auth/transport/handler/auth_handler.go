// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodgram_backend/internal/api"
	"foodgram_backend/internal/feature/auth/transport/http/dto"
	"foodgram_backend/internal/feature/auth/usecase"
	"foodgram_backend/internal/platform/http/respond"
	jwtmw "foodgram_backend/internal/platform/jwt"
	"foodgram_backend/internal/shared/validation"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Login はユーザーを認証し、成功時にトークンを返します。
	Login(ctx context.Context, email, password string, client usecase.ClientInfo) (string, error)
	// Logout は現在のセッションを失効させます。
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login はトークン発行APIエンドポイントを処理します。
// - バリデーションエラー、認証失敗時は400を返却
// - 成功時は{"auth_token": ...}で200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Bind(c, err)
		return
	}

	client := usecase.ClientInfo{UserAgent: c.Request.UserAgent(), IPAddress: c.ClientIP()}
	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password, client)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			// ユーザー列挙攻撃を防止するため、メールとパスワードのどちらが誤りかは返さない
			slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
			respond.Validation(c, validation.Field(validation.NonField, err.Error()))
			return
		}
		respond.Internal(c, "login failed", err)
		return
	}

	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{AuthToken: token})
}

// Logout は現在のトークンのセッションを失効させ、204を返却します。
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := jwtmw.SessionID(c)
	if sessionID == "" {
		respond.Error(c, http.StatusUnauthorized, "authentication credentials were not provided")
		return
	}
	if err := h.auth.Logout(c.Request.Context(), sessionID); err != nil &&
		!errors.Is(err, usecase.ErrSessionNotFound) {
		respond.Internal(c, "logout failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}
