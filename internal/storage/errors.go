package storage

import "errors"

var (
	ErrDatabaseConnection = errors.New("database connection error")
	ErrTransactionFailed  = errors.New("transaction failed")
	ErrInvalidInput       = errors.New("invalid input")
)
