package media

import "context"

// Key prefixes used by the features.
const (
	AvatarsDir = "avatars"
	RecipesDir = "recipes/images"
)

// Storage persists image bytes under a key and resolves keys to URLs.
type Storage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// Save stores img under a new key in dir and returns the key.
func Save(ctx context.Context, s Storage, dir string, img *Image) (string, error) {
	key := img.Key(dir)
	if err := s.Put(ctx, key, img.Data, img.ContentType); err != nil {
		return "", err
	}
	return key, nil
}
