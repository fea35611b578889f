package service

import "errors"

// Failure kinds surfaced to the HTTP layer. Handlers map these onto status
// codes; everything else becomes a 500.
var (
	// Validation
	ErrValidation = errors.New("validation failed")

	// Not found
	ErrUserNotFound        = errors.New("user not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrItemNotFound        = errors.New("item not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	// Conflict (duplicate unique key)
	ErrUsernameTaken  = errors.New("username already exists")
	ErrCategoryExists = errors.New("category already exists")
	ErrSKUExists      = errors.New("sku already exists")
	ErrItemExists     = errors.New("item already exists")

	// Business rules
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrItemExpired        = errors.New("item is expired and cannot be sold")
	ErrInsufficientStock  = errors.New("insufficient stock remaining")
	ErrInvalidOperation   = errors.New("invalid transaction type")
)
