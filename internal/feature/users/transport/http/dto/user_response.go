package dto

import (
	"github.com/gin-gonic/gin"

	"foodgram_backend/internal/api"
	"foodgram_backend/internal/feature/users/domain/entity"
	platformhttp "foodgram_backend/internal/platform/http"
)

// URLResolver は保存済みメディアのキーをURLに変換します。
type URLResolver interface {
	URL(key string) string
}

// RegisterResponse は登録直後のユーザー表現です。
type RegisterResponse struct {
	Email     string `json:"email"`
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// AvatarResponse はアバター更新のレスポンスです。
type AvatarResponse struct {
	Avatar string `json:"avatar"`
}

// AdminUserResponse はスタッフ向け検索結果の1件です。
type AdminUserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	IsStaff  bool   `json:"is_staff"`
}

// MediaURL はキーをリクエストのホストを基準とした絶対URLに変換します。キーが空なら空文字を返します。
func MediaURL(c *gin.Context, urls URLResolver, key string) string {
	if key == "" {
		return ""
	}
	return platformhttp.AbsoluteURL(c, urls.URL(key))
}

// NewRegisterResponse は登録されたユーザーをレスポンスに変換します。
func NewRegisterResponse(u *entity.User) RegisterResponse {
	return RegisterResponse{
		Email:     u.Email,
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// NewUserResponse はプロフィールを公開用のユーザー表現に変換します。
func NewUserResponse(c *gin.Context, urls URLResolver, p entity.Profile) api.UserResponse {
	var avatar *string
	if url := MediaURL(c, urls, p.Avatar); url != "" {
		avatar = &url
	}
	return api.UserResponse{
		Email:        p.Email,
		ID:           p.ID,
		Username:     p.Username,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		IsSubscribed: p.IsSubscribed,
		Avatar:       avatar,
	}
}

// NewAuthorResponse はフォロー中の著者をレシピのプレビュー付きで変換します。
func NewAuthorResponse(c *gin.Context, urls URLResolver, a entity.Author) api.AuthorResponse {
	recipes := make([]api.RecipeShortResponse, 0, len(a.Recipes))
	for _, r := range a.Recipes {
		recipes = append(recipes, api.RecipeShortResponse{
			ID:          r.ID,
			Name:        r.Name,
			Image:       MediaURL(c, urls, r.Image),
			CookingTime: r.CookingTime,
		})
	}
	return api.AuthorResponse{
		UserResponse: NewUserResponse(c, urls, a.Profile),
		Recipes:      recipes,
		RecipesCount: a.RecipesCount,
	}
}
