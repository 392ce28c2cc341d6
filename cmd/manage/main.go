// Command manage runs one-off administrative tasks against the database.
//
//	manage import-ingredients -file data/ingredients.json
//	manage create-admin -email admin@example.com -username admin -password ...
//	manage purge-sessions
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	authadapters "foodgram_backend/internal/feature/auth/adapters"
	catalogadapters "foodgram_backend/internal/feature/catalog/adapters"
	catalogentity "foodgram_backend/internal/feature/catalog/domain/entity"
	catalogusecase "foodgram_backend/internal/feature/catalog/usecase"
	useradapters "foodgram_backend/internal/feature/users/adapters"
	userentity "foodgram_backend/internal/feature/users/domain/entity"
	userusecase "foodgram_backend/internal/feature/users/usecase"
	"foodgram_backend/internal/platform/config"
	infradb "foodgram_backend/internal/platform/db"
)

type command func(ctx context.Context, db *gorm.DB, args []string) error

var commands = map[string]command{
	"import-ingredients": importIngredientsCmd,
	"create-admin":       createAdminCmd,
	"purge-sessions":     purgeSessionsCmd,
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, config.Usage())
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	db, err := infradb.Open(cfg.Database)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}

	if err := cmd(context.Background(), db, os.Args[2:]); err != nil {
		slog.Error(os.Args[1]+" failed", "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: manage <import-ingredients|create-admin|purge-sessions> [flags]")
}

// IngredientImporter stores a batch of ingredients atomically.
type IngredientImporter interface {
	Import(ctx context.Context, ingredients []catalogentity.Ingredient) (int, error)
}

func importIngredientsCmd(ctx context.Context, db *gorm.DB, args []string) error {
	fs := flag.NewFlagSet("import-ingredients", flag.ContinueOnError)
	path := fs.String("file", "data/ingredients.json", "path to a JSON array of {name, measurement_unit}")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := os.Open(*path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", *path, err)
	}
	defer f.Close()

	slog.Info("importing ingredients", "file", *path)
	uc := catalogusecase.NewIngredientUsecase(catalogadapters.NewIngredientRepository(db))
	return importIngredients(ctx, uc, f)
}

// importIngredients treats a batch that hits existing names as a no-op.
func importIngredients(ctx context.Context, importer IngredientImporter, r io.Reader) error {
	var rows []struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return fmt.Errorf("failed to decode ingredients: %w", err)
	}

	ingredients := make([]catalogentity.Ingredient, len(rows))
	for i, row := range rows {
		ingredients[i] = catalogentity.Ingredient{Name: row.Name, MeasurementUnit: row.MeasurementUnit}
	}

	n, err := importer.Import(ctx, ingredients)
	if errors.Is(err, catalogusecase.ErrIngredientsExist) {
		slog.Warn("ingredients already exist")
		return nil
	}
	if err != nil {
		return err
	}
	slog.Info("import finished", "count", n)
	return nil
}

// AdminRegistrar creates accounts.
type AdminRegistrar interface {
	Register(ctx context.Context, in userusecase.RegisterInput) (*userentity.User, error)
}

func createAdminCmd(ctx context.Context, db *gorm.DB, args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	in := userusecase.RegisterInput{IsStaff: true}
	fs.StringVar(&in.Email, "email", "", "email address (required)")
	fs.StringVar(&in.Username, "username", "admin", "username")
	fs.StringVar(&in.FirstName, "first-name", "Admin", "first name")
	fs.StringVar(&in.LastName, "last-name", "Admin", "last name")
	fs.StringVar(&in.Password, "password", os.Getenv("ADMIN_PASSWORD"), "password (defaults to $ADMIN_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Register は sessions / storage を使わない
	uc := userusecase.NewUserUsecase(useradapters.NewUserRepository(db), nil, nil)
	return createAdmin(ctx, uc, in)
}

func createAdmin(ctx context.Context, registrar AdminRegistrar, in userusecase.RegisterInput) error {
	if in.Email == "" || in.Password == "" {
		return errors.New("-email and -password are required")
	}
	in.IsStaff = true
	user, err := registrar.Register(ctx, in)
	if err != nil {
		return err
	}
	slog.Info("admin created", "id", user.ID, "email", user.Email)
	return nil
}

func purgeSessionsCmd(ctx context.Context, db *gorm.DB, args []string) error {
	fs := flag.NewFlagSet("purge-sessions", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	n, err := authadapters.NewSessionGorm(db).DeleteExpired(ctx)
	if err != nil {
		return err
	}
	slog.Info("expired sessions deleted", "count", n)
	return nil
}
