package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrOverlap is returned when an insert would produce two active
	// appointments for the same doctor with intersecting intervals.
	ErrOverlap = errors.New("overlapping appointment")

	// ErrDuplicate is returned on unique constraint violations.
	ErrDuplicate = errors.New("duplicate row")
)

// Postgres error codes worth translating into repository errors.
const (
	codeUniqueViolation    = "23505"
	codeExclusionViolation = "23P01"
	codeSerializationFail  = "40001"
)

func isExclusionOrSerialization(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == codeExclusionViolation || pgErr.Code == codeSerializationFail
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}
