package dto

import (
	"time"

	"github.com/gin-gonic/gin"

	"foodgram_backend/internal/api"
	catalogdto "foodgram_backend/internal/feature/catalog/transport/http/dto"
	"foodgram_backend/internal/feature/recipes/domain/entity"
	userentity "foodgram_backend/internal/feature/users/domain/entity"
	userdto "foodgram_backend/internal/feature/users/transport/http/dto"
)

// RecipeIngredientResponse はレシピ内の材料1行の表現です。IDは材料のIDです。
type RecipeIngredientResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeResponse はレシピの読み取り用表現です。
type RecipeResponse struct {
	ID               uint                       `json:"id"`
	Tags             []api.TagResponse          `json:"tags"`
	Author           api.UserResponse           `json:"author"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
}

// ShortLinkResponse は GET /api/recipes/{id}/get-link/ のレスポンスです。
type ShortLinkResponse struct {
	ShortLink string `json:"short-link"`
}

// RecipeStatResponse はスタッフ向けレシピ検索結果の1件です。
type RecipeStatResponse struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	AuthorID       uint      `json:"author_id"`
	Author         string    `json:"author"`
	FavoritesCount int64     `json:"favorites_count"`
	PubDate        time.Time `json:"pub_date"`
}

// NewRecipeResponse はレシピをレスポンスに変換します。作者のis_subscribedは閲覧ユーザー基準です。
func NewRecipeResponse(c *gin.Context, urls userdto.URLResolver, r *entity.Recipe) RecipeResponse {
	tags := make([]api.TagResponse, 0, len(r.Tags))
	for _, t := range r.Tags {
		tags = append(tags, catalogdto.NewTagResponse(t))
	}
	ingredients := make([]RecipeIngredientResponse, 0, len(r.Ingredients))
	for _, l := range r.Ingredients {
		ingredients = append(ingredients, RecipeIngredientResponse{
			ID:              l.IngredientID,
			Name:            l.Ingredient.Name,
			MeasurementUnit: l.Ingredient.MeasurementUnit,
			Amount:          l.Amount,
		})
	}
	author := userentity.Profile{User: r.Author, IsSubscribed: r.AuthorSubscribed}

	return RecipeResponse{
		ID:               r.ID,
		Tags:             tags,
		Author:           userdto.NewUserResponse(c, urls, author),
		Ingredients:      ingredients,
		IsFavorited:      r.IsFavorited,
		IsInShoppingCart: r.IsInShoppingCart,
		Name:             r.Name,
		Image:            userdto.MediaURL(c, urls, r.Image),
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
}

// NewRecipeShortResponse はレシピを簡略表現に変換します。
func NewRecipeShortResponse(c *gin.Context, urls userdto.URLResolver, r *entity.Recipe) api.RecipeShortResponse {
	return api.RecipeShortResponse{
		ID:          r.ID,
		Name:        r.Name,
		Image:       userdto.MediaURL(c, urls, r.Image),
		CookingTime: r.CookingTime,
	}
}

// NewRecipeStatResponse は集計行をレスポンスに変換します。
func NewRecipeStatResponse(s entity.RecipeStat) RecipeStatResponse {
	return RecipeStatResponse{
		ID:             s.ID,
		Name:           s.Name,
		AuthorID:       s.AuthorID,
		Author:         s.AuthorUsername,
		FavoritesCount: s.FavoritesCount,
		PubDate:        s.PubDate,
	}
}
