package entities

import "errors"

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrInvalidOrder   = errors.New("invalid order data")
	ErrValidation     = errors.New("validation failed")
	ErrAuthentication = errors.New("payment verification failed")
	ErrForbidden      = errors.New("access denied")
	ErrAlreadyPaid    = errors.New("order already paid")
	ErrGateway        = errors.New("payment gateway error")
	ErrIntentNotFound = errors.New("payment intent not found")
	ErrUserNotFound   = errors.New("user not found")
)
