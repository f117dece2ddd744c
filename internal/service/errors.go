package service

import "errors"

var (
	ErrRecipeNotFound       = errors.New("recipe not found")
	ErrGroceryListNotFound  = errors.New("grocery list not found")
	ErrGroceryItemNotFound  = errors.New("grocery list item not found")
	ErrNoRecipes            = errors.New("no valid recipes found")
	ErrInvalidRecipe        = errors.New("invalid recipe")
	ErrInvalidAPIKey        = errors.New("invalid API key")
	ErrImageTooLarge        = errors.New("image exceeds the 5 MiB limit")
	ErrUnsupportedImageType = errors.New("unsupported image type")
	ErrStorageUnavailable   = errors.New("image storage is not configured")
	ErrUnsupportedSource    = errors.New("unsupported recipe source")
)
