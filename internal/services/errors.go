package services

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUnauthenticated        = errors.New("unauthenticated")
	ErrForbidden              = errors.New("forbidden")
	ErrInvalidInput           = errors.New("invalid input")
	ErrTrainerNotFound        = errors.New("trainer not found")
	ErrTraineeNotFound        = errors.New("trainee not found")
	ErrRequestNotFound        = errors.New("request not found")
	ErrRequestExists          = errors.New("request already exists")
	ErrInvalidStateTransition = errors.New("request is no longer pending")
	ErrRoleConflict           = errors.New("account already registered with a different role")
	ErrUpstream               = errors.New("upstream service unavailable")
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
