package handler

import (
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"foodgram_backend/internal/feature/recipes/domain/entity"
	"foodgram_backend/internal/shared/validation"
)

// filterParam は一覧フィルタのクエリパラメータとエラーメッセージです。
type filterParam struct {
	name string
	dest func(f *entity.RecipeFilter) any
	msg  string
}

var filterParams = []filterParam{
	{"author", func(f *entity.RecipeFilter) any { return &f.AuthorID }, "Enter a valid user id."},
	{"tags", func(f *entity.RecipeFilter) any { return &f.TagSlugs }, "Enter a list of tag slugs."},
	{"is_favorited", func(f *entity.RecipeFilter) any { return &f.IsFavorited }, "Enter a valid boolean (0, 1, true or false)."},
	{"is_in_shopping_cart", func(f *entity.RecipeFilter) any { return &f.IsInShoppingCart }, "Enter a valid boolean (0, 1, true or false)."},
}

// parseFilter は author, tags（複数指定可）, is_favorited, is_in_shopping_cart を読みます。
// 空の値は指定なしとして扱います。
func parseFilter(c *gin.Context) (entity.RecipeFilter, error) {
	query := url.Values{}
	for key, values := range c.Request.URL.Query() {
		for _, v := range values {
			if v != "" {
				query.Add(key, v)
			}
		}
	}

	var f entity.RecipeFilter
	verr := validation.New()
	for _, p := range filterParams {
		if err := runtime.BindQueryParameter("form", true, false, p.name, query, p.dest(&f)); err != nil {
			verr.Add(p.name, p.msg)
		}
	}
	return f, verr.Err()
}
