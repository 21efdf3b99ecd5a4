package domain

// Error represents a domain-level error with a stable machine-readable code.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// NewError creates a new domain error.
func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Error codes used across services. Handlers map them to HTTP statuses.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeAlreadyExists     = "ALREADY_EXISTS"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeUnavailable       = "UNAVAILABLE"
	CodeInternal          = "INTERNAL_ERROR"
)

// Common domain errors
var (
	ErrProductNotFound    = NewError(CodeNotFound, "Product not found")
	ErrCartItemNotFound   = NewError(CodeNotFound, "Cart item not found")
	ErrOrderNotFound      = NewError(CodeNotFound, "Order not found")
	ErrUserNotFound       = NewError(CodeNotFound, "User not found")
	ErrEmailTaken         = NewError(CodeAlreadyExists, "Email is already registered")
	ErrInvalidCredentials = NewError(CodeUnauthorized, "Invalid credentials")
	ErrForbidden          = NewError(CodeForbidden, "Not authorized to access this resource")
	ErrInsufficientStock  = NewError(CodeInsufficientStock, "Insufficient stock available")
	ErrEmptyCart          = NewError(CodeValidation, "Cart is empty")
	ErrUnavailable        = NewError(CodeUnavailable, "Service temporarily unavailable")
)

// NewValidationError creates a validation error with a specific message.
func NewValidationError(message string) *Error {
	return NewError(CodeValidation, message)
}
