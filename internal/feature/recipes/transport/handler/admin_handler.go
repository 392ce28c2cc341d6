package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"foodgram_backend/internal/feature/recipes/domain/entity"
	"foodgram_backend/internal/feature/recipes/transport/http/dto"
	"foodgram_backend/internal/platform/http/pagination"
	"foodgram_backend/internal/platform/http/respond"
)

// RecipeSearcher はスタッフ向けのレシピ検索です。
type RecipeSearcher interface {
	SearchStats(ctx context.Context, query string, limit int) ([]entity.RecipeStat, error)
}

// AdminRecipeHandler はスタッフ専用のレシピ操作を処理します。
type AdminRecipeHandler struct {
	uc RecipeSearcher
}

// NewAdminRecipeHandler は新しい AdminRecipeHandler を作成します。
func NewAdminRecipeHandler(uc RecipeSearcher) *AdminRecipeHandler {
	return &AdminRecipeHandler{uc: uc}
}

// Search は ?search= でレシピ名または作者名を部分一致検索し、お気に入り数の多い順に返します。
// search を省略すると全レシピが対象です。
func (h *AdminRecipeHandler) Search(c *gin.Context) {
	stats, err := h.uc.SearchStats(c.Request.Context(), strings.TrimSpace(c.Query("search")), pagination.MaxPageSize)
	if err != nil {
		respond.Internal(c, "failed to search recipes", err)
		return
	}

	out := make([]dto.RecipeStatResponse, 0, len(stats))
	for _, s := range stats {
		out = append(out, dto.NewRecipeStatResponse(s))
	}
	c.JSON(http.StatusOK, out)
}
