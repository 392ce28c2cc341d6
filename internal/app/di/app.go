// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"foodgram_backend/internal/app/router"
	authhandler "foodgram_backend/internal/feature/auth/transport/handler"
	authusecase "foodgram_backend/internal/feature/auth/usecase"
	catalogadapters "foodgram_backend/internal/feature/catalog/adapters"
	cataloghandler "foodgram_backend/internal/feature/catalog/transport/handler"
	catalogusecase "foodgram_backend/internal/feature/catalog/usecase"
	recipeadapters "foodgram_backend/internal/feature/recipes/adapters"
	recipeentity "foodgram_backend/internal/feature/recipes/domain/entity"
	recipehandler "foodgram_backend/internal/feature/recipes/transport/handler"
	recipeusecase "foodgram_backend/internal/feature/recipes/usecase"
	useradapters "foodgram_backend/internal/feature/users/adapters"
	userhandler "foodgram_backend/internal/feature/users/transport/handler"
	userusecase "foodgram_backend/internal/feature/users/usecase"
	"foodgram_backend/internal/platform/config"
	"foodgram_backend/internal/platform/http/handler"
	jwtmw "foodgram_backend/internal/platform/jwt"
	"foodgram_backend/internal/platform/media"
)

// NewHandlers wires repositories, usecases and handlers for the API server.
// rdb may be nil, in which case sessions are kept in the relational store.
func NewHandlers(cfg *config.Config, db *gorm.DB, rdb *redis.Client, storage media.Storage) (router.Handlers, router.Options, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return router.Handlers{}, router.Options{}, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Repository
	userRepo := useradapters.NewUserRepository(db)
	subscriptionRepo := useradapters.NewSubscriptionRepository(db)
	summaryRepo := useradapters.NewRecipeSummaryRepository(db)
	tagRepo := catalogadapters.NewTagRepository(db)
	ingredientRepo := catalogadapters.NewIngredientRepository(db)
	recipeRepo := recipeadapters.NewRecipeRepository(db)
	favoriteRepo := recipeadapters.NewMembershipRepository(db, recipeentity.NewFavorite)
	cartRepo := recipeadapters.NewMembershipRepository(db, recipeentity.NewShoppingCart)
	sessionRepo := NewSessionRepository(rdb, db)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo,
		jwtmw.NewGenerator(cfg.JWT.Secret, cfg.JWT.TTL), cfg.JWT.TTL, cfg.JWT.MaxSessions)
	userUC := userusecase.NewUserUsecase(userRepo, authUC, storage)
	subscriptionUC := userusecase.NewSubscriptionUsecase(userRepo, subscriptionRepo, summaryRepo)
	tagUC := catalogusecase.NewTagUsecase(tagRepo)
	ingredientUC := catalogusecase.NewIngredientUsecase(ingredientRepo)
	codes := recipeusecase.NewShortCodeGenerator(cfg.ShortCode.Alphabet, cfg.ShortCode.MaxAttempts)
	recipeUC := recipeusecase.NewRecipeUsecase(recipeRepo, codes, storage, userRepo)
	favoriteUC := recipeusecase.NewFavoriteUsecase(favoriteRepo, recipeRepo)
	cartUC := recipeusecase.NewShoppingCartUsecase(cartRepo, recipeRepo)

	// Handler
	h := router.Handlers{
		Auth:          authhandler.NewAuthHandler(authUC),
		Users:         userhandler.NewUserHandler(userUC, storage),
		Subscriptions: userhandler.NewSubscriptionHandler(subscriptionUC, storage),
		AdminUsers:    userhandler.NewAdminUserHandler(userUC),
		Tags:          cataloghandler.NewTagHandler(tagUC),
		Ingredients:   cataloghandler.NewIngredientHandler(ingredientUC),
		Recipes:       recipehandler.NewRecipeHandler(recipeUC, storage),
		Favorites:     recipehandler.NewMembershipHandler(favoriteUC, storage),
		ShoppingCart:  recipehandler.NewMembershipHandler(cartUC, storage),
		AdminRecipes:  recipehandler.NewAdminRecipeHandler(recipeUC),
		Health:        handler.NewHealthHandler(sqlDB),
	}

	opts := router.Options{
		Authenticator:  jwtmw.NewAuthenticator(cfg.JWT.Secret, authUC),
		Staff:          userUC,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	}
	if local, ok := storage.(*media.LocalStorage); ok {
		opts.MediaURL = cfg.Media.URL
		opts.MediaDir = local.Root()
	}
	return h, opts, nil
}
