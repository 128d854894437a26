package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyUnauthorized indicates missing or invalid authentication.
	ErrKeyUnauthorized = "error.unauthorized"
	// ErrKeyInvalidCredentials indicates a wrong admin username or password.
	ErrKeyInvalidCredentials = "error.invalid_credentials"
	// ErrKeyAdminDisabled indicates admin login is not configured.
	ErrKeyAdminDisabled = "error.admin_disabled"
	// ErrKeyAPIKeyRequired indicates that an API key is required.
	ErrKeyAPIKeyRequired = "error.api_key_required"
	// ErrKeyInvalidAPIKey indicates an invalid API key.
	ErrKeyInvalidAPIKey = "error.invalid_api_key"
	// ErrKeyForbidden indicates insufficient permissions.
	ErrKeyForbidden = "error.forbidden"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyCollegeNotFound indicates an unknown college.
	ErrKeyCollegeNotFound = "error.college_not_found"
	// ErrKeyDraftNotFound indicates a missing or expired draft.
	ErrKeyDraftNotFound = "error.draft_not_found"
	// ErrKeyOrderNotFound indicates an unknown order number.
	ErrKeyOrderNotFound = "error.order_not_found"
	// ErrKeyProductNotFound indicates an image path that is not in the catalog.
	ErrKeyProductNotFound = "error.product_not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates a conflict with current state.
	ErrKeyConflict = "error.conflict"
	// ErrKeyInvalidTransition indicates a page action not allowed from the current page.
	ErrKeyInvalidTransition = "error.invalid_transition"
	// ErrKeyValidationFailed indicates the order failed pack size or store checks.
	ErrKeyValidationFailed = "error.validation_failed"
	// ErrKeyEmptyOrder indicates an order without any product.
	ErrKeyEmptyOrder = "error.empty_order"
	// ErrKeyInvalidMutation indicates a selection change that does not fit the product.
	ErrKeyInvalidMutation = "error.invalid_mutation"
	// ErrKeyInvalidPackRules indicates a pack size rule set with a size below one.
	ErrKeyInvalidPackRules = "error.invalid_pack_rules"
	// ErrKeyInvalidOrderStatus indicates an unknown order status.
	ErrKeyInvalidOrderStatus = "error.invalid_order_status"
	// ErrKeyEmailFailed indicates the order email could not be sent.
	ErrKeyEmailFailed = "error.email_failed"
	// ErrKeyUpstreamFailed indicates the college API call failed.
	ErrKeyUpstreamFailed = "error.upstream_failed"
	// ErrKeyInvalidImageURL indicates an image URL that cannot be proxied.
	ErrKeyInvalidImageURL = "error.invalid_image_url"
	// ErrKeyServiceUnavailable indicates a dependency that is not configured.
	ErrKeyServiceUnavailable = "error.service_unavailable"
	// ErrKeyInvalidToken indicates an invalid or expired JWT token.
	ErrKeyInvalidToken = "error.invalid_token"
	// ErrKeyTokenRequired indicates that a JWT token is required.
	ErrKeyTokenRequired = "error.token_required"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
)

// Success message translation keys.
const (
	// SuccessKeyOrderConfirmed indicates the order email was sent.
	SuccessKeyOrderConfirmed = "success.order_confirmed"
)
