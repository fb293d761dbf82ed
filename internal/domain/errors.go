package domain

import "errors"

var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrPaymentGateway      = errors.New("payment gateway error")
	ErrStore               = errors.New("store error")
	ErrDuplicateSubmission = errors.New("duplicate submission")
	ErrNotFound            = errors.New("not found")
)
