// Package handler はcatalogフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodgram_backend/internal/api"
	"foodgram_backend/internal/feature/catalog/domain/entity"
	"foodgram_backend/internal/feature/catalog/transport/http/dto"
	"foodgram_backend/internal/feature/catalog/usecase"
	platformhttp "foodgram_backend/internal/platform/http"
	"foodgram_backend/internal/platform/http/respond"
	"foodgram_backend/internal/shared/validation"
)

// TagUsecase はタグに関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type TagUsecase interface {
	List(ctx context.Context) ([]entity.Tag, error)
	Get(ctx context.Context, id uint) (*entity.Tag, error)
	Create(ctx context.Context, name, slug string) (*entity.Tag, error)
	Update(ctx context.Context, id uint, name, slug string) (*entity.Tag, error)
	Delete(ctx context.Context, id uint) error
}

// TagHandler はタグに関するHTTPリクエストを処理します。
type TagHandler struct {
	uc TagUsecase
}

// NewTagHandler は新しい TagHandler を作成します。
func NewTagHandler(uc TagUsecase) *TagHandler {
	return &TagHandler{uc: uc}
}

// List はすべてのタグをページングなしの配列で返します。
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.uc.List(c.Request.Context())
	if err != nil {
		respond.Internal(c, "failed to list tags", err)
		return
	}
	out := make([]api.TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, dto.NewTagResponse(t))
	}
	c.JSON(http.StatusOK, out)
}

// Retrieve は指定IDのタグを返します。
func (h *TagHandler) Retrieve(c *gin.Context) {
	id, ok := platformhttp.ParamID(c, "id")
	if !ok {
		respond.Error(c, http.StatusNotFound, "not found")
		return
	}
	tag, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, "failed to get tag", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTagResponse(*tag))
}

// Create はタグを作成し、201を返します（スタッフ専用）。
func (h *TagHandler) Create(c *gin.Context) {
	var req dto.TagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Bind(c, err)
		return
	}
	tag, err := h.uc.Create(c.Request.Context(), req.Name, req.Slug)
	if err != nil {
		fail(c, "failed to create tag", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewTagResponse(*tag))
}

// Update はタグを更新します（スタッフ専用）。
func (h *TagHandler) Update(c *gin.Context) {
	id, ok := platformhttp.ParamID(c, "id")
	if !ok {
		respond.Error(c, http.StatusNotFound, "not found")
		return
	}
	var req dto.TagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Bind(c, err)
		return
	}
	tag, err := h.uc.Update(c.Request.Context(), id, req.Name, req.Slug)
	if err != nil {
		fail(c, "failed to update tag", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTagResponse(*tag))
}

// Delete はタグを削除し、204を返します（スタッフ専用）。
func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := platformhttp.ParamID(c, "id")
	if !ok {
		respond.Error(c, http.StatusNotFound, "not found")
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		fail(c, "failed to delete tag", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// fail はユースケースのエラーをHTTPステータスに変換します。
func fail(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, usecase.ErrTagNotFound), errors.Is(err, usecase.ErrIngredientNotFound):
		respond.Error(c, http.StatusNotFound, "not found")
	case errors.Is(err, usecase.ErrDuplicateTag), errors.Is(err, usecase.ErrDuplicateIngredient):
		respond.Validation(c, validation.Field(validation.NonField, err.Error()))
	default:
		respond.Internal(c, msg, err)
	}
}
