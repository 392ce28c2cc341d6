package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"foodgram_backend/internal/api"
	"foodgram_backend/internal/feature/users/domain/entity"
	"foodgram_backend/internal/feature/users/transport/http/dto"
	platformhttp "foodgram_backend/internal/platform/http"
	"foodgram_backend/internal/platform/http/pagination"
	"foodgram_backend/internal/platform/http/respond"
	jwtmw "foodgram_backend/internal/platform/jwt"
)

// SubscriptionUsecase はフォロー操作のユースケースを定義します。
type SubscriptionUsecase interface {
	Subscribe(ctx context.Context, userID, authorID uint, recipesLimit int) (*entity.Author, error)
	Unsubscribe(ctx context.Context, userID, authorID uint) error
	Subscriptions(ctx context.Context, userID uint, limit, offset, recipesLimit int) ([]entity.Author, int64, error)
}

// SubscriptionHandler はフォローに関するHTTPリクエストを処理します。
type SubscriptionHandler struct {
	uc   SubscriptionUsecase
	urls dto.URLResolver
}

// NewSubscriptionHandler は新しい SubscriptionHandler を作成します。
func NewSubscriptionHandler(uc SubscriptionUsecase, urls dto.URLResolver) *SubscriptionHandler {
	return &SubscriptionHandler{uc: uc, urls: urls}
}

// recipesLimit は recipes_limit クエリを読みます。正の整数以外は無視されます。
func recipesLimit(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("recipes_limit"))
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// List はフォロー中の著者をページ単位で返します。
func (h *SubscriptionHandler) List(c *gin.Context) {
	p, err := pagination.FromRequest(c)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "invalid page")
		return
	}
	userID, _ := jwtmw.UserID(c)

	authors, total, err := h.uc.Subscriptions(c.Request.Context(), userID, p.Limit, p.Offset(), recipesLimit(c))
	if err != nil {
		respond.Internal(c, "failed to list subscriptions", err)
		return
	}
	if err := p.Check(total); err != nil {
		respond.Error(c, http.StatusNotFound, "invalid page")
		return
	}

	out := make([]api.AuthorResponse, 0, len(authors))
	for _, a := range authors {
		out = append(out, dto.NewAuthorResponse(c, h.urls, a))
	}
	c.JSON(http.StatusOK, pagination.Build(c, p, total, out))
}

// Subscribe は指定ユーザーをフォローし、201で著者カードを返します。
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	authorID, ok := platformhttp.ParamID(c, "id")
	if !ok {
		respond.Error(c, http.StatusNotFound, "not found")
		return
	}
	userID, _ := jwtmw.UserID(c)

	author, err := h.uc.Subscribe(c.Request.Context(), userID, authorID, recipesLimit(c))
	if err != nil {
		fail(c, "failed to subscribe", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAuthorResponse(c, h.urls, *author))
}

// Unsubscribe はフォローを解除し、204を返します。
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	authorID, ok := platformhttp.ParamID(c, "id")
	if !ok {
		respond.Error(c, http.StatusNotFound, "not found")
		return
	}
	userID, _ := jwtmw.UserID(c)

	if err := h.uc.Unsubscribe(c.Request.Context(), userID, authorID); err != nil {
		fail(c, "failed to unsubscribe", err)
		return
	}
	c.Status(http.StatusNoContent)
}
