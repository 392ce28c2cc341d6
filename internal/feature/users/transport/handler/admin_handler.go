package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"foodgram_backend/internal/feature/users/domain/entity"
	"foodgram_backend/internal/feature/users/transport/http/dto"
	"foodgram_backend/internal/platform/http/pagination"
	"foodgram_backend/internal/platform/http/respond"
)

// UserSearcher はスタッフ向けのユーザー検索です。
type UserSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]entity.User, error)
}

// AdminUserHandler はスタッフ専用のユーザー操作を処理します。
type AdminUserHandler struct {
	uc UserSearcher
}

// NewAdminUserHandler は新しい AdminUserHandler を作成します。
func NewAdminUserHandler(uc UserSearcher) *AdminUserHandler {
	return &AdminUserHandler{uc: uc}
}

// Search は ?search= でメールアドレスまたはユーザー名を部分一致検索します。
func (h *AdminUserHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("search"))
	if query == "" {
		respond.Error(c, http.StatusBadRequest, "search parameter is required")
		return
	}

	users, err := h.uc.Search(c.Request.Context(), query, pagination.MaxPageSize)
	if err != nil {
		respond.Internal(c, "failed to search users", err)
		return
	}

	out := make([]dto.AdminUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.AdminUserResponse{ID: u.ID, Email: u.Email, Username: u.Username, IsStaff: u.IsStaff})
	}
	c.JSON(http.StatusOK, out)
}
