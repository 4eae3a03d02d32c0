package httputil

// Machine-readable error codes returned in ErrorResponse.Code
const (
	CodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeInternalError      = "INTERNAL_ERROR"
	CodeRouteNotFound      = "ROUTE_NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"

	// Auth
	CodeEmailAlreadyExists = "EMAIL_ALREADY_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeMissingAuth        = "MISSING_AUTH"
	CodeInvalidAuthHeader  = "INVALID_AUTH_HEADER"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeInvalidTokenUserID = "INVALID_TOKEN_USER_ID"
	CodeForbidden          = "FORBIDDEN"

	// Catalog
	CodeBookNotFound  = "BOOK_NOT_FOUND"
	CodeQueryRequired = "QUERY_REQUIRED"
	CodeInvalidBook   = "INVALID_BOOK"
)
