package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodgram_backend/internal/api"
	"foodgram_backend/internal/feature/catalog/domain/entity"
	"foodgram_backend/internal/feature/catalog/transport/http/dto"
	platformhttp "foodgram_backend/internal/platform/http"
	"foodgram_backend/internal/platform/http/respond"
)

// IngredientUsecase は食材に関するユースケースのインターフェースです。
type IngredientUsecase interface {
	List(ctx context.Context, prefix string) ([]entity.Ingredient, error)
	Get(ctx context.Context, id uint) (*entity.Ingredient, error)
	Create(ctx context.Context, name, unit string) (*entity.Ingredient, error)
	Delete(ctx context.Context, id uint) error
}

// IngredientHandler は食材に関するHTTPリクエストを処理します。
type IngredientHandler struct {
	uc IngredientUsecase
}

// NewIngredientHandler は新しい IngredientHandler を作成します。
func NewIngredientHandler(uc IngredientUsecase) *IngredientHandler {
	return &IngredientHandler{uc: uc}
}

// List は食材をページングなしの配列で返します。
// ?name= または ?search= を指定すると名前の前方一致で絞り込みます。
func (h *IngredientHandler) List(c *gin.Context) {
	prefix := c.Query("name")
	if prefix == "" {
		prefix = c.Query("search")
	}

	ingredients, err := h.uc.List(c.Request.Context(), prefix)
	if err != nil {
		respond.Internal(c, "failed to list ingredients", err)
		return
	}
	out := make([]api.IngredientResponse, 0, len(ingredients))
	for _, i := range ingredients {
		out = append(out, dto.NewIngredientResponse(i))
	}
	c.JSON(http.StatusOK, out)
}

// Retrieve は指定IDの食材を返します。
func (h *IngredientHandler) Retrieve(c *gin.Context) {
	id, ok := platformhttp.ParamID(c, "id")
	if !ok {
		respond.Error(c, http.StatusNotFound, "not found")
		return
	}
	ingredient, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, "failed to get ingredient", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewIngredientResponse(*ingredient))
}

// Create は食材を作成し、201を返します（スタッフ専用）。
func (h *IngredientHandler) Create(c *gin.Context) {
	var req dto.IngredientReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Bind(c, err)
		return
	}
	ingredient, err := h.uc.Create(c.Request.Context(), req.Name, req.MeasurementUnit)
	if err != nil {
		fail(c, "failed to create ingredient", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewIngredientResponse(*ingredient))
}

// Delete は食材を削除し、204を返します（スタッフ専用）。
func (h *IngredientHandler) Delete(c *gin.Context) {
	id, ok := platformhttp.ParamID(c, "id")
	if !ok {
		respond.Error(c, http.StatusNotFound, "not found")
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		fail(c, "failed to delete ingredient", err)
		return
	}
	c.Status(http.StatusNoContent)
}
