package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodgram_backend/internal/feature/recipes/domain/entity"
	"foodgram_backend/internal/feature/recipes/transport/http/dto"
	userdto "foodgram_backend/internal/feature/users/transport/http/dto"
	platformhttp "foodgram_backend/internal/platform/http"
	"foodgram_backend/internal/platform/http/respond"
	jwtmw "foodgram_backend/internal/platform/jwt"
)

// MembershipUsecase はお気に入り・買い物かごの追加と削除を定義します。
type MembershipUsecase interface {
	Add(ctx context.Context, userID, recipeID uint) (*entity.Recipe, error)
	Remove(ctx context.Context, userID, recipeID uint) error
}

// MembershipHandler は /favorite/ と /shopping_cart/ のPOST・DELETEを処理します。
type MembershipHandler struct {
	uc   MembershipUsecase
	urls userdto.URLResolver
}

// NewMembershipHandler は新しい MembershipHandler を作成します。
func NewMembershipHandler(uc MembershipUsecase, urls userdto.URLResolver) *MembershipHandler {
	return &MembershipHandler{uc: uc, urls: urls}
}

// Add はレシピを追加し、201とレシピの簡略表現を返します。
func (h *MembershipHandler) Add(c *gin.Context) {
	id, ok := platformhttp.ParamID(c, "id")
	if !ok {
		respond.Error(c, http.StatusNotFound, "not found")
		return
	}
	userID, _ := jwtmw.UserID(c)

	recipe, err := h.uc.Add(c.Request.Context(), userID, id)
	if err != nil {
		fail(c, "failed to add recipe", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewRecipeShortResponse(c, h.urls, recipe))
}

// Remove はレシピを取り除き、204を返します。
func (h *MembershipHandler) Remove(c *gin.Context) {
	id, ok := platformhttp.ParamID(c, "id")
	if !ok {
		respond.Error(c, http.StatusNotFound, "not found")
		return
	}
	userID, _ := jwtmw.UserID(c)

	if err := h.uc.Remove(c.Request.Context(), userID, id); err != nil {
		fail(c, "failed to remove recipe", err)
		return
	}
	c.Status(http.StatusNoContent)
}
