// Package dto はrecipesフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"foodgram_backend/internal/feature/recipes/usecase"
	"foodgram_backend/internal/platform/media"
)

// IngredientAmountReq はレシピの材料1行です。
type IngredientAmountReq struct {
	ID     uint `json:"id" binding:"required"`
	Amount *int `json:"amount" binding:"required,gte=1,lte=32000"`
}

// CreateRecipeReq は POST /api/recipes/ のリクエストボディです。
// タグと材料のリストに関する規則はユースケースで検証します。
type CreateRecipeReq struct {
	Ingredients []IngredientAmountReq `json:"ingredients" binding:"omitempty,dive"`
	Tags        []uint                `json:"tags"`
	Image       string                `json:"image" binding:"required"`
	Name        string                `json:"name" binding:"required,max=256"`
	Text        string                `json:"text" binding:"required"`
	CookingTime *int                  `json:"cooking_time" binding:"required,gte=1,lte=32000"`
}

// UpdateRecipeReq は PATCH /api/recipes/{id}/ のリクエストボディです。
// tags と ingredients は必須、それ以外は省略すると現在の値を保持します。
type UpdateRecipeReq struct {
	Ingredients []IngredientAmountReq `json:"ingredients" binding:"omitempty,dive"`
	Tags        []uint                `json:"tags"`
	Image       *string               `json:"image"`
	Name        *string               `json:"name" binding:"omitempty,max=256"`
	Text        *string               `json:"text"`
	CookingTime *int                  `json:"cooking_time" binding:"omitempty,gte=1,lte=32000"`
}

// Input はリクエストをユースケースの入力に変換します。imgはデコード済みの画像です。
func (r CreateRecipeReq) Input(img *media.Image) usecase.RecipeInput {
	return usecase.RecipeInput{
		Name:        &r.Name,
		Text:        &r.Text,
		CookingTime: r.CookingTime,
		Image:       img,
		TagIDs:      r.Tags,
		Ingredients: amounts(r.Ingredients),
	}
}

// Input はリクエストをユースケースの入力に変換します。画像を変更しない場合imgはnilです。
func (r UpdateRecipeReq) Input(img *media.Image) usecase.RecipeInput {
	return usecase.RecipeInput{
		Name:        r.Name,
		Text:        r.Text,
		CookingTime: r.CookingTime,
		Image:       img,
		TagIDs:      r.Tags,
		Ingredients: amounts(r.Ingredients),
	}
}

func amounts(lines []IngredientAmountReq) []usecase.IngredientAmount {
	out := make([]usecase.IngredientAmount, 0, len(lines))
	for _, l := range lines {
		out = append(out, usecase.IngredientAmount{ID: l.ID, Amount: *l.Amount})
	}
	return out
}
