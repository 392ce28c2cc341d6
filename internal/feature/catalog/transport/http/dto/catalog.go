// Package dto はcatalogフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"foodgram_backend/internal/api"
	"foodgram_backend/internal/feature/catalog/domain/entity"
)

// TagReq はスタッフによるタグ作成・更新のリクエストボディです。
type TagReq struct {
	Name string `json:"name" binding:"required,max=32"`
	Slug string `json:"slug" binding:"required,max=32,slug"`
}

// IngredientReq はスタッフによる食材作成のリクエストボディです。
type IngredientReq struct {
	Name            string `json:"name" binding:"required,max=128"`
	MeasurementUnit string `json:"measurement_unit" binding:"required,max=64"`
}

// NewTagResponse はタグをレスポンスに変換します。
func NewTagResponse(t entity.Tag) api.TagResponse {
	return api.TagResponse{ID: t.ID, Name: t.Name, Slug: t.Slug}
}

// NewIngredientResponse は食材をレスポンスに変換します。
func NewIngredientResponse(i entity.Ingredient) api.IngredientResponse {
	return api.IngredientResponse{ID: i.ID, Name: i.Name, MeasurementUnit: i.MeasurementUnit}
}
