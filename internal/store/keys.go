package store

// Document keys. Collections and the image cache live in the same key
// family so a single subscription prefix covers both.
const (
	importsFamily = "collectr_imports:"

	importsKey    = importsFamily + "main"
	imageCacheKey = importsFamily + "image_cache"
	binderKey     = "binders:main"

	wishlistPrefix = "wishlist:"
)
