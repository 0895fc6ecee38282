package repository

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrPurchaseNotFound  = errors.New("purchase not found")
	ErrTokenNotFound     = errors.New("refresh token not found")
)
