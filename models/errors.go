package models

import "errors"

var (
	// common errors
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// token-specific errors
	ErrTokenExpired    = errors.New("token expired")
	ErrInvalidPassword = errors.New("invalid password")

	// cart-specific errors
	ErrCartNotOwned = errors.New("cart does not belong to the user")

	// order-specific errors
	ErrUserNotFound  = errors.New("user not found")
	ErrPaymentFailed = errors.New("payment failed")
	ErrEmailFailed   = errors.New("confirmation email failed")
)
