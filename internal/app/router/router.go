package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "foodgram_backend/internal/feature/auth/transport/handler"
	cataloghandler "foodgram_backend/internal/feature/catalog/transport/handler"
	recipehandler "foodgram_backend/internal/feature/recipes/transport/handler"
	userhandler "foodgram_backend/internal/feature/users/transport/handler"
	"foodgram_backend/internal/platform/http/handler"
	jwtmw "foodgram_backend/internal/platform/jwt"
	"foodgram_backend/internal/platform/metrics"
)

// Handlers is everything NewRouter mounts.
type Handlers struct {
	Auth          *authhandler.AuthHandler
	Users         *userhandler.UserHandler
	Subscriptions *userhandler.SubscriptionHandler
	AdminUsers    *userhandler.AdminUserHandler
	Tags          *cataloghandler.TagHandler
	Ingredients   *cataloghandler.IngredientHandler
	Recipes       *recipehandler.RecipeHandler
	Favorites     *recipehandler.MembershipHandler
	ShoppingCart  *recipehandler.MembershipHandler
	AdminRecipes  *recipehandler.AdminRecipeHandler
	Health        *handler.HealthHandler
}

// Options configures the middleware around the handlers.
type Options struct {
	Authenticator  *jwtmw.Authenticator
	Staff          jwtmw.StaffChecker
	AllowedOrigins []string
	// MediaURL and MediaDir are set only when uploads are served from the local disk.
	MediaURL string
	MediaDir string
}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), metrics.Middleware())
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.OPTIONS("/healthz", h.Health.Health)
	r.GET("/metrics", metrics.Handler())
	if opts.MediaDir != "" {
		r.Static(opts.MediaURL, opts.MediaDir)
	}

	// 短縮リンク
	r.GET("/s/:code/", h.Recipes.Redirect)

	required := opts.Authenticator.Required()
	optional := opts.Authenticator.Optional()

	api := r.Group("/api")

	// 認証
	api.POST("/auth/token/login/", h.Auth.Login)
	api.POST("/auth/token/logout/", required, h.Auth.Logout)

	// 認証不要（トークンがあればフラグに反映する）
	public := api.Group("/", optional)
	{
		public.GET("users/", h.Users.List)
		public.POST("users/", h.Users.Create)
		public.GET("users/:id/", h.Users.Retrieve)

		public.GET("tags/", h.Tags.List)
		public.GET("tags/:id/", h.Tags.Retrieve)
		public.GET("ingredients/", h.Ingredients.List)
		public.GET("ingredients/:id/", h.Ingredients.Retrieve)

		public.GET("recipes/", h.Recipes.List)
		public.GET("recipes/:id/", h.Recipes.Retrieve)
		public.GET("recipes/:id/get-link/", h.Recipes.GetLink)
	}

	// 認証必須のルート
	auth := api.Group("/", required)
	{
		auth.GET("users/me/", h.Users.Me)
		auth.POST("users/set_password/", h.Users.SetPassword)
		auth.PUT("users/me/avatar/", h.Users.SetAvatar)
		auth.DELETE("users/me/avatar/", h.Users.DeleteAvatar)
		auth.GET("users/subscriptions/", h.Subscriptions.List)
		auth.POST("users/:id/subscribe/", h.Subscriptions.Subscribe)
		auth.DELETE("users/:id/subscribe/", h.Subscriptions.Unsubscribe)

		auth.POST("recipes/", h.Recipes.Create)
		auth.PATCH("recipes/:id/", h.Recipes.Update)
		auth.DELETE("recipes/:id/", h.Recipes.Delete)
		auth.GET("recipes/download_shopping_cart/", h.Recipes.DownloadShoppingCart)
		auth.POST("recipes/:id/favorite/", h.Favorites.Add)
		auth.DELETE("recipes/:id/favorite/", h.Favorites.Remove)
		auth.POST("recipes/:id/shopping_cart/", h.ShoppingCart.Add)
		auth.DELETE("recipes/:id/shopping_cart/", h.ShoppingCart.Remove)
	}

	// 管理者のみ
	admin := api.Group("/admin", required, jwtmw.RequireStaff(opts.Staff))
	{
		admin.GET("/users/", h.AdminUsers.Search)
		admin.GET("/recipes/", h.AdminRecipes.Search)
		admin.POST("/tags/", h.Tags.Create)
		admin.PUT("/tags/:id/", h.Tags.Update)
		admin.PATCH("/tags/:id/", h.Tags.Update)
		admin.DELETE("/tags/:id/", h.Tags.Delete)
		admin.POST("/ingredients/", h.Ingredients.Create)
		admin.DELETE("/ingredients/:id/", h.Ingredients.Delete)
	}

	return r
}
