package stripepay

import "errors"

var (
	ErrCreateIntent     = errors.New("stripepay: failed to create payment intent")
	ErrGetIntent        = errors.New("stripepay: failed to get payment intent")
	ErrInvalidSignature = errors.New("stripepay: invalid webhook signature")
	ErrNotConfigured    = errors.New("stripepay: secret key is not configured")
)
