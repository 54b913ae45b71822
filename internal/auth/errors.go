package auth

import "errors"

var (
	ErrMissingConnectionURI = errors.New("auth core connection URI is missing or not an absolute URL")
	ErrUnsupportedFramework = errors.New("unsupported framework")
	ErrInvalidAppInfo       = errors.New("invalid app info")
	ErrInvalidProvider      = errors.New("invalid third-party provider")
	ErrDuplicateRecipe      = errors.New("recipe initialised more than once")
	ErrRecipeNotInitialised = errors.New("recipe not initialised")
	ErrMissingEmailDelivery = errors.New("default email delivery is required")

	ErrUnknownProvider   = errors.New("unknown third-party provider")
	ErrUnknownClientType = errors.New("unknown client type")
	ErrInvalidEmail      = errors.New("invalid email address")
)
