// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// User management
	KeyUserNotFound       = "user.not_found"
	KeyUserProfileUpdated = "user.profile_updated"

	// Catalog
	KeyProductNotFound  = "product.not_found"
	KeyCategoryNotFound = "category.not_found"
	KeySellerNotFound   = "seller.not_found"
	KeyBadSortKey       = "catalog.bad_sort_key"

	// Cart and favorites
	KeyCartWeightUnavailable = "cart.weight_unavailable"
	KeyCartItemAdded         = "cart.item_added"
	KeyCartCleared           = "cart.cleared"

	// Validation
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationRequired = "validation.required"

	// Rate limiting
	KeyRateLimitExceeded = "rate_limit.exceeded"
)
