package domain

import "errors"

var (
	ErrOutOfStock         = errors.New("no available instance for this model")
	ErrHoldExpired        = errors.New("instance is no longer reserved")
	ErrConflict           = errors.New("instance was claimed by a concurrent booking")
	ErrNotFound           = errors.New("not found")
	ErrInvalidID          = errors.New("invalid id")
	ErrInvalidWindow      = errors.New("invalid rental window")
	ErrEmptyCart          = errors.New("cart has no entries")
	ErrInvalidTotal       = errors.New("order total must be positive")
	ErrTotalMismatch      = errors.New("submitted total does not match computed total")
	ErrInstanceInUse      = errors.New("instance is reserved or rented")
	ErrInvalidMethod      = errors.New("unsupported payment method")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)
