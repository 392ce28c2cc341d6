// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodgram_backend/internal/api"
	"foodgram_backend/internal/feature/users/domain/entity"
	"foodgram_backend/internal/feature/users/transport/http/dto"
	"foodgram_backend/internal/feature/users/usecase"
	platformhttp "foodgram_backend/internal/platform/http"
	"foodgram_backend/internal/platform/http/pagination"
	"foodgram_backend/internal/platform/http/respond"
	jwtmw "foodgram_backend/internal/platform/jwt"
	"foodgram_backend/internal/platform/media"
	"foodgram_backend/internal/shared/validation"
)

// UserUsecase はユーザー操作のユースケースを定義します。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type UserUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
	List(ctx context.Context, viewerID uint, limit, offset int) ([]entity.Profile, int64, error)
	Get(ctx context.Context, viewerID, id uint) (*entity.Profile, error)
	SetPassword(ctx context.Context, userID uint, current, next string) error
	SetAvatar(ctx context.Context, userID uint, img *media.Image) (string, error)
	DeleteAvatar(ctx context.Context, userID uint) error
}

// UserHandler はユーザーとアバターに関するHTTPリクエストを処理します。
type UserHandler struct {
	uc   UserUsecase
	urls dto.URLResolver
}

// NewUserHandler は新しい UserHandler を作成します。
func NewUserHandler(uc UserUsecase, urls dto.URLResolver) *UserHandler {
	return &UserHandler{uc: uc, urls: urls}
}

// List はユーザー一覧をページ単位で返します。
func (h *UserHandler) List(c *gin.Context) {
	p, err := pagination.FromRequest(c)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "invalid page")
		return
	}
	viewerID, _ := jwtmw.UserID(c)

	profiles, total, err := h.uc.List(c.Request.Context(), viewerID, p.Limit, p.Offset())
	if err != nil {
		respond.Internal(c, "failed to list users", err)
		return
	}
	if err := p.Check(total); err != nil {
		respond.Error(c, http.StatusNotFound, "invalid page")
		return
	}

	out := make([]api.UserResponse, 0, len(profiles))
	for _, pr := range profiles {
		out = append(out, dto.NewUserResponse(c, h.urls, pr))
	}
	c.JSON(http.StatusOK, pagination.Build(c, p, total, out))
}

// Create は新規ユーザーを登録し、201を返します。
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Bind(c, err)
		return
	}

	user, err := h.uc.Register(c.Request.Context(), usecase.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		fail(c, "failed to register user", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewRegisterResponse(user))
}

// Retrieve は指定IDのユーザーを返します。
func (h *UserHandler) Retrieve(c *gin.Context) {
	id, ok := platformhttp.ParamID(c, "id")
	if !ok {
		respond.Error(c, http.StatusNotFound, "not found")
		return
	}
	viewerID, _ := jwtmw.UserID(c)
	h.render(c, viewerID, id)
}

// Me は認証済みユーザー自身を返します。
func (h *UserHandler) Me(c *gin.Context) {
	userID, _ := jwtmw.UserID(c)
	h.render(c, userID, userID)
}

func (h *UserHandler) render(c *gin.Context, viewerID, id uint) {
	profile, err := h.uc.Get(c.Request.Context(), viewerID, id)
	if err != nil {
		fail(c, "failed to get user", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(c, h.urls, *profile))
}

// SetPassword はパスワードを変更し、204を返します。すべてのセッションが失効します。
func (h *UserHandler) SetPassword(c *gin.Context) {
	var req dto.SetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Bind(c, err)
		return
	}
	userID, _ := jwtmw.UserID(c)

	if err := h.uc.SetPassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		fail(c, "failed to set password", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetAvatar はbase64データURIのアバターを保存し、そのURLを返します。
func (h *UserHandler) SetAvatar(c *gin.Context) {
	var req dto.AvatarReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Bind(c, err)
		return
	}
	img, err := media.DecodeDataURI(req.Avatar)
	if err != nil {
		respond.Validation(c, validation.Field("avatar", "Upload a valid image. The file you uploaded was either not an image or a corrupted image."))
		return
	}
	userID, _ := jwtmw.UserID(c)

	key, err := h.uc.SetAvatar(c.Request.Context(), userID, img)
	if err != nil {
		fail(c, "failed to set avatar", err)
		return
	}
	c.JSON(http.StatusOK, dto.AvatarResponse{Avatar: dto.MediaURL(c, h.urls, key)})
}

// DeleteAvatar はアバターを削除し、204を返します。
func (h *UserHandler) DeleteAvatar(c *gin.Context) {
	userID, _ := jwtmw.UserID(c)
	if err := h.uc.DeleteAvatar(c.Request.Context(), userID); err != nil {
		fail(c, "failed to delete avatar", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// fail はユースケースのエラーをHTTPステータスに変換します。
func fail(c *gin.Context, msg string, err error) {
	if verr, ok := validation.As(err); ok {
		respond.Validation(c, verr)
		return
	}
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		respond.Error(c, http.StatusNotFound, "not found")
	case errors.Is(err, usecase.ErrAlreadySubscribed),
		errors.Is(err, usecase.ErrSelfSubscription),
		errors.Is(err, usecase.ErrNotSubscribed):
		respond.Error(c, http.StatusBadRequest, err.Error())
	default:
		respond.Internal(c, msg, err)
	}
}
