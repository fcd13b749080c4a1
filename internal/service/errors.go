package service

import "errors"

// Ошибки сервисного слоя. Оборачиваются через fmt.Errorf("%w: ...").
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("time slot conflict")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrForbidden          = errors.New("forbidden")
)
