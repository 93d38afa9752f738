package lib

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Domain errors
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrStorage    = errors.New("storage failure")

	// ErrInsufficientStock is a validation failure; selling more than
	// is on hand must never drive quantity negative.
	ErrInsufficientStock = fmt.Errorf("%w: insufficient stock", ErrValidation)
)

// Auth errors
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("expired token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// MapPgError translates PostgreSQL constraint failures into domain
// errors so handlers can pick a status code without knowing SQLSTATEs.
func MapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503", // foreign_key_violation
			"23505": // unique_violation
			return ErrConflict
		case "23502", // not_null_violation
			"23514": // check_violation
			return ErrValidation
		case "P0002": // no_data_found
			return ErrNotFound
		}
	}
	return err
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
