// Package handler はrecipesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"foodgram_backend/internal/feature/recipes/domain/entity"
	"foodgram_backend/internal/feature/recipes/transport/http/dto"
	"foodgram_backend/internal/feature/recipes/usecase"
	userdto "foodgram_backend/internal/feature/users/transport/http/dto"
	platformhttp "foodgram_backend/internal/platform/http"
	"foodgram_backend/internal/platform/http/pagination"
	"foodgram_backend/internal/platform/http/respond"
	jwtmw "foodgram_backend/internal/platform/jwt"
	"foodgram_backend/internal/platform/media"
	"foodgram_backend/internal/platform/metrics"
	"foodgram_backend/internal/shared/validation"
)

// RecipeUsecase はレシピ操作のユースケースを定義します。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type RecipeUsecase interface {
	Create(ctx context.Context, authorID uint, in usecase.RecipeInput) (*entity.Recipe, error)
	Update(ctx context.Context, userID, recipeID uint, in usecase.RecipeInput) (*entity.Recipe, error)
	Delete(ctx context.Context, userID, recipeID uint) error
	Get(ctx context.Context, viewerID, id uint) (*entity.Recipe, error)
	List(ctx context.Context, viewerID uint, filter entity.RecipeFilter, limit, offset int) ([]entity.Recipe, int64, error)
	ShortCode(ctx context.Context, id uint) (string, error)
	Resolve(ctx context.Context, code string) (uint, error)
	ShoppingList(ctx context.Context, userID uint) (*entity.ShoppingList, error)
}

// RecipeHandler はレシピ・短縮リンク・買い物リストに関するHTTPリクエストを処理します。
type RecipeHandler struct {
	uc   RecipeUsecase
	urls userdto.URLResolver
}

// NewRecipeHandler は新しい RecipeHandler を作成します。
func NewRecipeHandler(uc RecipeUsecase, urls userdto.URLResolver) *RecipeHandler {
	return &RecipeHandler{uc: uc, urls: urls}
}

// List はフィルタに一致するレシピをページ単位で返します。匿名ユーザーも利用できます。
func (h *RecipeHandler) List(c *gin.Context) {
	p, err := pagination.FromRequest(c)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "invalid page")
		return
	}
	filter, err := parseFilter(c)
	if err != nil {
		fail(c, "invalid recipe filter", err)
		return
	}
	viewerID, _ := jwtmw.UserID(c)

	recipes, total, err := h.uc.List(c.Request.Context(), viewerID, filter, p.Limit, p.Offset())
	if err != nil {
		respond.Internal(c, "failed to list recipes", err)
		return
	}
	if err := p.Check(total); err != nil {
		respond.Error(c, http.StatusNotFound, "invalid page")
		return
	}

	out := make([]dto.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, dto.NewRecipeResponse(c, h.urls, &recipes[i]))
	}
	c.JSON(http.StatusOK, pagination.Build(c, p, total, out))
}

// Retrieve は指定IDのレシピを返します。
func (h *RecipeHandler) Retrieve(c *gin.Context) {
	id, ok := platformhttp.ParamID(c, "id")
	if !ok {
		respond.Error(c, http.StatusNotFound, "not found")
		return
	}
	viewerID, _ := jwtmw.UserID(c)

	recipe, err := h.uc.Get(c.Request.Context(), viewerID, id)
	if err != nil {
		fail(c, "failed to get recipe", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRecipeResponse(c, h.urls, recipe))
}

// Create はレシピを作成し、201と作成されたレシピを返します。
func (h *RecipeHandler) Create(c *gin.Context) {
	var req dto.CreateRecipeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Bind(c, err)
		return
	}
	img, ok := decodeImage(c, req.Image)
	if !ok {
		return
	}
	userID, _ := jwtmw.UserID(c)

	recipe, err := h.uc.Create(c.Request.Context(), userID, req.Input(img))
	if err != nil {
		fail(c, "failed to create recipe", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewRecipeResponse(c, h.urls, recipe))
}

// Update は作者のみがレシピを更新できます。タグと材料は丸ごと置き換えられます。
func (h *RecipeHandler) Update(c *gin.Context) {
	id, ok := platformhttp.ParamID(c, "id")
	if !ok {
		respond.Error(c, http.StatusNotFound, "not found")
		return
	}
	var req dto.UpdateRecipeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Bind(c, err)
		return
	}
	var img *media.Image
	if req.Image != nil {
		if img, ok = decodeImage(c, *req.Image); !ok {
			return
		}
	}
	userID, _ := jwtmw.UserID(c)

	recipe, err := h.uc.Update(c.Request.Context(), userID, id, req.Input(img))
	if err != nil {
		fail(c, "failed to update recipe", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRecipeResponse(c, h.urls, recipe))
}

// Delete は作者のみがレシピを削除できます。
func (h *RecipeHandler) Delete(c *gin.Context) {
	id, ok := platformhttp.ParamID(c, "id")
	if !ok {
		respond.Error(c, http.StatusNotFound, "not found")
		return
	}
	userID, _ := jwtmw.UserID(c)

	if err := h.uc.Delete(c.Request.Context(), userID, id); err != nil {
		fail(c, "failed to delete recipe", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetLink はレシピの短縮リンクを絶対URLで返します。
func (h *RecipeHandler) GetLink(c *gin.Context) {
	id, ok := platformhttp.ParamID(c, "id")
	if !ok {
		respond.Error(c, http.StatusNotFound, "not found")
		return
	}
	code, err := h.uc.ShortCode(c.Request.Context(), id)
	if err != nil {
		fail(c, "failed to get short link", err)
		return
	}
	c.JSON(http.StatusOK, dto.ShortLinkResponse{ShortLink: platformhttp.AbsoluteURL(c, "/s/"+code+"/")})
}

// Redirect は短縮コードをレシピページへの302リダイレクトに解決します。
func (h *RecipeHandler) Redirect(c *gin.Context) {
	id, err := h.uc.Resolve(c.Request.Context(), c.Param("code"))
	if err != nil {
		fail(c, "failed to resolve short link", err)
		return
	}
	c.Redirect(http.StatusFound, platformhttp.AbsoluteURL(c, "/recipes/"+strconv.FormatUint(uint64(id), 10)+"/"))
}

// DownloadShoppingCart は買い物かごの材料合計をテキストファイルとして返します。
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID, _ := jwtmw.UserID(c)

	list, err := h.uc.ShoppingList(c.Request.Context(), userID)
	if err != nil {
		respond.Internal(c, "failed to build shopping list", err)
		return
	}
	metrics.ShoppingListDownloads.Inc()
	c.Header("Content-Disposition", `attachment; filename="`+dto.ShoppingListFilename(list.Username)+`"`)
	c.Data(http.StatusOK, dto.ShoppingListContentType, []byte(dto.RenderShoppingList(list)))
}

// decodeImage はデータURIをデコードします。失敗時は400を書き込みfalseを返します。
func decodeImage(c *gin.Context, dataURI string) (*media.Image, bool) {
	img, err := media.DecodeDataURI(dataURI)
	if err != nil {
		respond.Validation(c, validation.Field("image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image."))
		return nil, false
	}
	return img, true
}

// fail はユースケースのエラーをHTTPステータスに変換します。
func fail(c *gin.Context, msg string, err error) {
	if verr, ok := validation.As(err); ok {
		respond.Validation(c, verr)
		return
	}
	switch {
	case errors.Is(err, usecase.ErrRecipeNotFound):
		respond.Error(c, http.StatusNotFound, "not found")
	case errors.Is(err, usecase.ErrForbidden):
		respond.Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, usecase.ErrAlreadyFavorited),
		errors.Is(err, usecase.ErrNotFavorited),
		errors.Is(err, usecase.ErrAlreadyInCart),
		errors.Is(err, usecase.ErrNotInCart):
		respond.Error(c, http.StatusBadRequest, err.Error())
	default:
		respond.Internal(c, msg, err)
	}
}
