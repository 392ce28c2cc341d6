package adapters_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	catalogentity "foodgram_backend/internal/feature/catalog/domain/entity"
	"foodgram_backend/internal/feature/recipes/adapters"
	"foodgram_backend/internal/feature/recipes/domain/entity"
	"foodgram_backend/internal/feature/recipes/usecase"
	userentity "foodgram_backend/internal/feature/users/domain/entity"
	"foodgram_backend/internal/platform/db/dbtest"
)

// fixture はテスト用のユーザー・タグ・食材のセットです。
type fixture struct {
	db          *gorm.DB
	alice, bob  *userentity.User
	lunch, soup catalogentity.Tag
	flour, milk catalogentity.Ingredient
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb := dbtest.New(t)

	f := &fixture{db: gdb}
	f.alice = &userentity.User{Email: "alice@example.com", Username: "alice", FirstName: "A", LastName: "A", Password: "x"}
	f.bob = &userentity.User{Email: "bob@example.com", Username: "bob", FirstName: "B", LastName: "B", Password: "x"}
	require.NoError(t, gdb.Create(f.alice).Error)
	require.NoError(t, gdb.Create(f.bob).Error)

	f.lunch = catalogentity.Tag{Name: "Lunch", Slug: "lunch"}
	f.soup = catalogentity.Tag{Name: "Soup", Slug: "soup"}
	require.NoError(t, gdb.Create(&f.lunch).Error)
	require.NoError(t, gdb.Create(&f.soup).Error)

	f.flour = catalogentity.Ingredient{Name: "flour", MeasurementUnit: "g"}
	f.milk = catalogentity.Ingredient{Name: "milk", MeasurementUnit: "ml"}
	require.NoError(t, gdb.Create(&f.flour).Error)
	require.NoError(t, gdb.Create(&f.milk).Error)
	return f
}

var codeSeq int

// recipe はrepo.Createでレシピを保存します。短縮コードは連番から作ります。
func (f *fixture) recipe(t *testing.T, repo usecase.RecipeRepository, authorID uint, name string, tags []catalogentity.Tag, lines ...entity.RecipeIngredient) *entity.Recipe {
	t.Helper()

	codeSeq++
	recipe := &entity.Recipe{
		AuthorID:    authorID,
		Name:        name,
		Image:       "recipes/images/" + name + ".png",
		Text:        "text",
		CookingTime: 10,
		ShortCode:   fmt.Sprintf("%03d", codeSeq%1000),
		Tags:        tags,
		Ingredients: lines,
	}
	require.NoError(t, repo.Create(context.Background(), recipe))
	require.NotZero(t, recipe.ID)
	return recipe
}

func line(ingredientID uint, amount int) entity.RecipeIngredient {
	return entity.RecipeIngredient{IngredientID: ingredientID, Amount: amount}
}

func tagRef(tags ...catalogentity.Tag) []catalogentity.Tag {
	refs := make([]catalogentity.Tag, 0, len(tags))
	for _, tag := range tags {
		refs = append(refs, catalogentity.Tag{ID: tag.ID})
	}
	return refs
}

func TestRecipeRepository_CreateAndFind(t *testing.T) {
	f := newFixture(t)
	repo := adapters.NewRecipeRepository(f.db)
	ctx := context.Background()

	created := f.recipe(t, repo, f.alice.ID, "Pancakes", tagRef(f.soup, f.lunch), line(f.milk.ID, 200), line(f.flour.ID, 100))

	got, err := repo.FindByID(ctx, f.bob.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", got.Name)
	assert.Equal(t, "alice", got.Author.Username)
	assert.False(t, got.PubDate.IsZero())
	assert.Equal(t, created.ShortCode, got.ShortCode)

	require.Len(t, got.Tags, 2)
	assert.Equal(t, "Lunch", got.Tags[0].Name, "tags are ordered by name")
	assert.Equal(t, "Soup", got.Tags[1].Name)

	require.Len(t, got.Ingredients, 2)
	assert.Equal(t, "milk", got.Ingredients[0].Ingredient.Name, "lines keep insertion order")
	assert.Equal(t, 200, got.Ingredients[0].Amount)
	assert.Equal(t, "g", got.Ingredients[1].Ingredient.MeasurementUnit)

	var tagCount int64
	require.NoError(t, f.db.Model(&catalogentity.Tag{}).Count(&tagCount).Error)
	assert.Equal(t, int64(2), tagCount, "tag rows are referenced, not inserted")

	_, err = repo.FindByID(ctx, 0, 999)
	assert.ErrorIs(t, err, usecase.ErrRecipeNotFound)
}

func TestRecipeRepository_CreateShortCodeTaken(t *testing.T) {
	f := newFixture(t)
	repo := adapters.NewRecipeRepository(f.db)
	ctx := context.Background()

	first := f.recipe(t, repo, f.alice.ID, "Soup", tagRef(f.soup), line(f.flour.ID, 1))

	dup := &entity.Recipe{
		AuthorID: f.alice.ID, Name: "Other", Image: "i.png", Text: "t", CookingTime: 1,
		ShortCode:   first.ShortCode,
		Tags:        tagRef(f.soup),
		Ingredients: []entity.RecipeIngredient{line(f.flour.ID, 1)},
	}
	assert.ErrorIs(t, repo.Create(ctx, dup), usecase.ErrShortCodeTaken)
	assert.Zero(t, dup.ID)

	var lines int64
	require.NoError(t, f.db.Model(&entity.RecipeIngredient{}).Count(&lines).Error)
	assert.Equal(t, int64(1), lines, "failed create leaves no ingredient rows")

	taken, err := repo.ShortCodeExists(ctx, first.ShortCode)
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = repo.ShortCodeExists(ctx, "zzz")
	require.NoError(t, err)
	assert.False(t, taken)

	id, err := repo.FindIDByShortCode(ctx, first.ShortCode)
	require.NoError(t, err)
	assert.Equal(t, first.ID, id)
	_, err = repo.FindIDByShortCode(ctx, "zzz")
	assert.ErrorIs(t, err, usecase.ErrRecipeNotFound)
}

func TestRecipeRepository_Update(t *testing.T) {
	f := newFixture(t)
	repo := adapters.NewRecipeRepository(f.db)
	ctx := context.Background()

	created := f.recipe(t, repo, f.alice.ID, "Soup", tagRef(f.soup, f.lunch), line(f.flour.ID, 100))
	pubDate := created.PubDate

	recipe, err := repo.FindByID(ctx, f.alice.ID, created.ID)
	require.NoError(t, err)
	recipe.Name = "Milk soup"
	recipe.CookingTime = 45
	recipe.Tags = tagRef(f.lunch)
	recipe.Ingredients = []entity.RecipeIngredient{line(f.milk.ID, 500)}
	require.NoError(t, repo.Update(ctx, recipe))

	got, err := repo.FindByID(ctx, f.alice.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Milk soup", got.Name)
	assert.Equal(t, 45, got.CookingTime)
	assert.Equal(t, created.ShortCode, got.ShortCode)
	assert.WithinDuration(t, pubDate, got.PubDate, time.Second)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "lunch", got.Tags[0].Slug)
	require.Len(t, got.Ingredients, 1)
	assert.Equal(t, "milk", got.Ingredients[0].Ingredient.Name)
	assert.Equal(t, 500, got.Ingredients[0].Amount)

	var lines int64
	require.NoError(t, f.db.Model(&entity.RecipeIngredient{}).Count(&lines).Error)
	assert.Equal(t, int64(1), lines, "previous ingredient rows are removed")
}

func TestRecipeRepository_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	repo := adapters.NewRecipeRepository(f.db)
	favorites := adapters.NewMembershipRepository(f.db, entity.NewFavorite)
	carts := adapters.NewMembershipRepository(f.db, entity.NewShoppingCart)
	ctx := context.Background()

	recipe := f.recipe(t, repo, f.alice.ID, "Soup", tagRef(f.soup), line(f.flour.ID, 100))
	require.NoError(t, favorites.Add(ctx, f.bob.ID, recipe.ID))
	require.NoError(t, carts.Add(ctx, f.bob.ID, recipe.ID))

	require.NoError(t, repo.Delete(ctx, recipe.ID))
	assert.ErrorIs(t, repo.Delete(ctx, recipe.ID), usecase.ErrRecipeNotFound)

	for _, model := range []any{&entity.RecipeIngredient{}, &entity.Favorite{}, &entity.ShoppingCart{}} {
		var n int64
		require.NoError(t, f.db.Model(model).Count(&n).Error)
		assert.Zero(t, n, "%T rows must be removed", model)
	}
	var links int64
	require.NoError(t, f.db.Table("recipe_tags").Count(&links).Error)
	assert.Zero(t, links)
}

// TestRecipeRepository_ListFlagsAndFilters はフラグの計算とフィルタを検証します。
func TestRecipeRepository_ListFlagsAndFilters(t *testing.T) {
	f := newFixture(t)
	repo := adapters.NewRecipeRepository(f.db)
	favorites := adapters.NewMembershipRepository(f.db, entity.NewFavorite)
	carts := adapters.NewMembershipRepository(f.db, entity.NewShoppingCart)
	ctx := context.Background()

	r1 := f.recipe(t, repo, f.alice.ID, "Borscht", tagRef(f.soup), line(f.flour.ID, 1))
	r2 := f.recipe(t, repo, f.alice.ID, "Sandwich", tagRef(f.lunch), line(f.flour.ID, 1))
	r3 := f.recipe(t, repo, f.bob.ID, "Chowder", tagRef(f.soup, f.lunch), line(f.milk.ID, 1))

	require.NoError(t, favorites.Add(ctx, f.bob.ID, r1.ID))
	require.NoError(t, carts.Add(ctx, f.bob.ID, r2.ID))
	require.NoError(t, f.db.Create(&userentity.Subscription{UserID: f.bob.ID, FollowingID: f.alice.ID}).Error)

	ids := func(recipes []entity.Recipe) []uint {
		out := make([]uint, 0, len(recipes))
		for _, r := range recipes {
			out = append(out, r.ID)
		}
		return out
	}
	yes, no := true, false

	tests := []struct {
		name     string
		viewerID uint
		filter   entity.RecipeFilter
		want     []uint
	}{
		{name: "all in publish order", viewerID: f.bob.ID, want: []uint{r1.ID, r2.ID, r3.ID}},
		{name: "by author", viewerID: 0, filter: entity.RecipeFilter{AuthorID: &f.alice.ID}, want: []uint{r1.ID, r2.ID}},
		{name: "tags match any", filter: entity.RecipeFilter{TagSlugs: []string{"soup", "lunch"}}, want: []uint{r1.ID, r2.ID, r3.ID}},
		{name: "single tag", filter: entity.RecipeFilter{TagSlugs: []string{"lunch"}}, want: []uint{r2.ID, r3.ID}},
		{name: "unknown tag", filter: entity.RecipeFilter{TagSlugs: []string{"dessert"}}, want: []uint{}},
		{name: "favorited", viewerID: f.bob.ID, filter: entity.RecipeFilter{IsFavorited: &yes}, want: []uint{r1.ID}},
		{name: "not favorited", viewerID: f.bob.ID, filter: entity.RecipeFilter{IsFavorited: &no}, want: []uint{r2.ID, r3.ID}},
		{name: "in cart", viewerID: f.bob.ID, filter: entity.RecipeFilter{IsInShoppingCart: &yes}, want: []uint{r2.ID}},
		{name: "anonymous favorited is empty", viewerID: 0, filter: entity.RecipeFilter{IsFavorited: &yes}, want: []uint{}},
		{
			name: "combined", viewerID: f.bob.ID,
			filter: entity.RecipeFilter{AuthorID: &f.alice.ID, TagSlugs: []string{"lunch"}, IsInShoppingCart: &yes},
			want:   []uint{r2.ID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := repo.List(ctx, tt.viewerID, tt.filter, 10, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
			assert.Equal(t, int64(len(tt.want)), total)
		})
	}

	all, _, err := repo.List(ctx, f.bob.ID, entity.RecipeFilter{}, 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].IsFavorited)
	assert.False(t, all[0].IsInShoppingCart)
	assert.True(t, all[0].AuthorSubscribed)
	assert.False(t, all[1].IsFavorited)
	assert.True(t, all[1].IsInShoppingCart)
	assert.False(t, all[2].AuthorSubscribed)
	require.Len(t, all[2].Tags, 2)
	require.Len(t, all[2].Ingredients, 1)

	anon, _, err := repo.List(ctx, 0, entity.RecipeFilter{}, 10, 0)
	require.NoError(t, err)
	for _, r := range anon {
		assert.False(t, r.IsFavorited)
		assert.False(t, r.IsInShoppingCart)
		assert.False(t, r.AuthorSubscribed)
	}

	page, total, err := repo.List(ctx, 0, entity.RecipeFilter{}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []uint{r3.ID}, ids(page))
}

func TestRecipeRepository_MissingRefs(t *testing.T) {
	f := newFixture(t)
	repo := adapters.NewRecipeRepository(f.db)
	ctx := context.Background()

	missing, err := repo.MissingTags(ctx, []uint{f.soup.ID, 404, f.lunch.ID, 405})
	require.NoError(t, err)
	assert.Equal(t, []uint{404, 405}, missing)

	missing, err = repo.MissingIngredients(ctx, []uint{f.flour.ID, f.milk.ID})
	require.NoError(t, err)
	assert.Empty(t, missing)
}

// TestRecipeRepository_ShoppingList は複数レシピの同じ材料が合計されることを検証します。
func TestRecipeRepository_ShoppingList(t *testing.T) {
	f := newFixture(t)
	repo := adapters.NewRecipeRepository(f.db)
	carts := adapters.NewMembershipRepository(f.db, entity.NewShoppingCart)
	ctx := context.Background()

	bread := f.recipe(t, repo, f.alice.ID, "Bread", tagRef(f.lunch), line(f.flour.ID, 100))
	pie := f.recipe(t, repo, f.alice.ID, "Pie", tagRef(f.lunch), line(f.flour.ID, 50), line(f.milk.ID, 200))
	f.recipe(t, repo, f.alice.ID, "Cake", tagRef(f.lunch), line(f.flour.ID, 999))

	require.NoError(t, carts.Add(ctx, f.bob.ID, bread.ID))
	require.NoError(t, carts.Add(ctx, f.bob.ID, pie.ID))

	items, err := repo.ShoppingList(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []entity.ShoppingListItem{
		{Name: "flour", MeasurementUnit: "g", Total: 150},
		{Name: "milk", MeasurementUnit: "ml", Total: 200},
	}, items)

	items, err = repo.ShoppingList(ctx, f.alice.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRecipeRepository_SearchStats(t *testing.T) {
	f := newFixture(t)
	repo := adapters.NewRecipeRepository(f.db)
	favorites := adapters.NewMembershipRepository(f.db, entity.NewFavorite)
	ctx := context.Background()

	soup := f.recipe(t, repo, f.alice.ID, "Tomato soup", tagRef(f.soup), line(f.flour.ID, 1))
	stew := f.recipe(t, repo, f.bob.ID, "Stew", tagRef(f.soup), line(f.flour.ID, 1))
	require.NoError(t, favorites.Add(ctx, f.alice.ID, stew.ID))
	require.NoError(t, favorites.Add(ctx, f.bob.ID, stew.ID))
	require.NoError(t, favorites.Add(ctx, f.bob.ID, soup.ID))

	stats, err := repo.SearchStats(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, stew.ID, stats[0].ID)
	assert.Equal(t, int64(2), stats[0].FavoritesCount)
	assert.Equal(t, "bob", stats[0].AuthorUsername)
	assert.Equal(t, int64(1), stats[1].FavoritesCount)

	stats, err = repo.SearchStats(ctx, "SOUP", 10)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "Tomato soup", stats[0].Name)

	stats, err = repo.SearchStats(ctx, "alic", 10)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, soup.ID, stats[0].ID)
}

// TestMembershipRepository はお気に入りと買い物かごが別テーブルとして扱われることを検証します。
func TestMembershipRepository(t *testing.T) {
	f := newFixture(t)
	repo := adapters.NewRecipeRepository(f.db)
	favorites := adapters.NewMembershipRepository(f.db, entity.NewFavorite)
	carts := adapters.NewMembershipRepository(f.db, entity.NewShoppingCart)
	ctx := context.Background()

	recipe := f.recipe(t, repo, f.alice.ID, "Soup", tagRef(f.soup), line(f.flour.ID, 1))

	require.NoError(t, favorites.Add(ctx, f.bob.ID, recipe.ID))
	assert.ErrorIs(t, favorites.Add(ctx, f.bob.ID, recipe.ID), usecase.ErrMembershipExists)
	require.NoError(t, carts.Add(ctx, f.bob.ID, recipe.ID), "favorite does not block the cart")
	assert.ErrorIs(t, favorites.Add(ctx, f.bob.ID, 999), usecase.ErrRecipeNotFound)

	got, err := repo.FindByID(ctx, f.bob.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFavorited)
	assert.True(t, got.IsInShoppingCart)

	require.NoError(t, favorites.Remove(ctx, f.bob.ID, recipe.ID))
	assert.ErrorIs(t, favorites.Remove(ctx, f.bob.ID, recipe.ID), usecase.ErrMembershipMissing)

	got, err = repo.FindByID(ctx, f.bob.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, got.IsFavorited)
	assert.True(t, got.IsInShoppingCart)
}
