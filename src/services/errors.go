package services

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// EditOutcome tells an edit that found nothing to change apart from one that succeeded.
type EditOutcome int

const (
	EditNotFound EditOutcome = iota
	EditSuccess
)

func (o EditOutcome) String() string {
	if o == EditSuccess {
		return "success"
	}
	return "not_found"
}

// IntegrityError reports stored data that breaks a relationship the services rely on, such as
// a grading record pointing at a missing item. Callers should treat it as fatal.
type IntegrityError struct {
	Entity string
	ID     int
	Detail string
	Err    error
}

func (e *IntegrityError) Error() string {
	msg := fmt.Sprintf("integrity error on %s %d: %s", e.Entity, e.ID, e.Detail)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateDBError turns constraint violations into IntegrityError and passes anything else through.
func translateDBError(entity string, id int, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation,
		errors.Is(err, gorm.ErrDuplicatedKey):
		return &IntegrityError{Entity: entity, ID: id, Detail: "duplicate key", Err: err}
	case errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation,
		errors.Is(err, gorm.ErrForeignKeyViolated):
		return &IntegrityError{Entity: entity, ID: id, Detail: "foreign key violated", Err: err}
	}
	return err
}
