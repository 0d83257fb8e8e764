package pgxkit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorCode classifies a failure into the domain taxonomy. Callers branch on
// the code (or the matching sentinel), never on the underlying driver type.
type ErrorCode string

const (
	CodeConnection    ErrorCode = "CONNECTION"
	CodeSchema        ErrorCode = "SCHEMA"
	CodePrimaryKey    ErrorCode = "PRIMARY_KEY"
	CodeValidation    ErrorCode = "VALIDATION"
	CodeQuery         ErrorCode = "QUERY"
	CodeTransaction   ErrorCode = "TRANSACTION"
	CodeMigration     ErrorCode = "MIGRATION"
	CodeRelationship  ErrorCode = "RELATIONSHIP"
	CodePool          ErrorCode = "POOL"
	CodeExtension     ErrorCode = "EXTENSION"
	CodeORM           ErrorCode = "ORM"
	CodeConfiguration ErrorCode = "CONFIGURATION"
)

// Sentinel errors for quick checks
var (
	ErrConnection    = errors.New("pgxkit: connection failed")
	ErrNotConnected  = errors.New("pgxkit: not connected to database")
	ErrSchema        = errors.New("pgxkit: schema validation failed")
	ErrPrimaryKey    = errors.New("pgxkit: primary key violation")
	ErrValidation    = errors.New("pgxkit: validation failed")
	ErrQuery         = errors.New("pgxkit: query execution failed")
	ErrTransaction   = errors.New("pgxkit: transaction failed")
	ErrMigration     = errors.New("pgxkit: migration failed")
	ErrRelationship  = errors.New("pgxkit: relationship operation failed")
	ErrPool          = errors.New("pgxkit: connection pool failure")
	ErrExtension     = errors.New("pgxkit: extension failure")
	ErrORM           = errors.New("pgxkit: orm operation failed")
	ErrConfiguration = errors.New("pgxkit: invalid configuration")
)

// Error is the single domain error type carried across the layer boundary.
type Error struct {
	Code    ErrorCode // Error classification
	Message string    // Human-readable message
	Op      string    // Operation that failed (e.g., "Connect", "Driver")
	Cause   error     // Underlying error
}

func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("pgxkit.%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("pgxkit: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for sentinel error matching. PRIMARY_KEY
// specializes SCHEMA, so it matches both sentinels; every other code matches
// its own sentinel only.
func (e *Error) Is(target error) bool {
	switch e.Code {
	case CodeConnection:
		return target == ErrConnection
	case CodeSchema:
		return target == ErrSchema
	case CodePrimaryKey:
		return target == ErrPrimaryKey || target == ErrSchema
	case CodeValidation:
		return target == ErrValidation
	case CodeQuery:
		return target == ErrQuery
	case CodeTransaction:
		return target == ErrTransaction
	case CodeMigration:
		return target == ErrMigration
	case CodeRelationship:
		return target == ErrRelationship
	case CodePool:
		return target == ErrPool
	case CodeExtension:
		return target == ErrExtension
	case CodeORM:
		return target == ErrORM
	case CodeConfiguration:
		return target == ErrConfiguration
	}
	return false
}

// wrapError converts a raw error to a domain Error
func wrapError(err error, op string) error {
	if err == nil {
		return nil
	}

	// Already wrapped
	var kitErr *Error
	if errors.As(err, &kitErr) {
		return err
	}

	// PostgreSQL specific errors
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return wrapPgError(pgErr, op)
	}

	// Generic wrapping: anything else reaching this layer is an execution
	// failure from the driver's point of view.
	return &Error{
		Code:    CodeQuery,
		Message: err.Error(),
		Op:      op,
		Cause:   err,
	}
}

// wrapPgError maps PostgreSQL SQLSTATEs onto the taxonomy.
// See: https://www.postgresql.org/docs/current/errcodes-appendix.html
func wrapPgError(pgErr *pgconn.PgError, op string) *Error {
	e := &Error{
		Op:      op,
		Message: pgErr.Message,
		Cause:   pgErr,
	}

	class := ""
	if len(pgErr.Code) >= 2 {
		class = pgErr.Code[:2]
	}

	switch {
	case pgErr.Code == "23505" && strings.HasSuffix(pgErr.ConstraintName, "_pkey"):
		e.Code = CodePrimaryKey
	case class == "23": // integrity constraint violations
		e.Code = CodeSchema
	case class == "22": // data exceptions
		e.Code = CodeValidation
	case class == "25", class == "40": // invalid tx state, tx rollback
		e.Code = CodeTransaction
	case class == "53": // insufficient resources (too many connections, ...)
		e.Code = CodePool
	case class == "08": // connection exceptions
		e.Code = CodeConnection
	case pgErr.Code == "0A000": // feature not supported
		e.Code = CodeExtension
	case class == "F0": // configuration file errors
		e.Code = CodeConfiguration
	default:
		e.Code = CodeQuery
	}

	return e
}

// IsConnection checks if error is a connection error
func IsConnection(err error) bool {
	return errors.Is(err, ErrConnection)
}

// IsNotConnected checks if error reports an accessor call on a handle that
// holds no live connection. These are CONNECTION-kind errors, distinct from a
// failed connect attempt.
func IsNotConnected(err error) bool {
	return errors.Is(err, ErrNotConnected)
}

// IsSchema checks if error is a schema error, including primary key violations
func IsSchema(err error) bool {
	return errors.Is(err, ErrSchema)
}

// IsPrimaryKey checks if error is a primary key violation
func IsPrimaryKey(err error) bool {
	return errors.Is(err, ErrPrimaryKey)
}

// IsValidation checks if error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsQuery checks if error is a query execution error
func IsQuery(err error) bool {
	return errors.Is(err, ErrQuery)
}

// IsTransaction checks if error is a transaction error
func IsTransaction(err error) bool {
	return errors.Is(err, ErrTransaction)
}

// IsMigration checks if error is a migration error
func IsMigration(err error) bool {
	return errors.Is(err, ErrMigration)
}

// IsRelationship checks if error is a relationship error
func IsRelationship(err error) bool {
	return errors.Is(err, ErrRelationship)
}

// IsPool checks if error is a connection pool error
func IsPool(err error) bool {
	return errors.Is(err, ErrPool)
}

// IsExtension checks if error is an extension error
func IsExtension(err error) bool {
	return errors.Is(err, ErrExtension)
}

// IsORM checks if error is an ORM error
func IsORM(err error) bool {
	return errors.Is(err, ErrORM)
}

// IsConfiguration checks if error is a configuration error
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// GetErrorCode extracts the error code if it's a pgxkit error
func GetErrorCode(err error) (ErrorCode, bool) {
	var kitErr *Error
	if errors.As(err, &kitErr) {
		return kitErr.Code, true
	}
	return "", false
}

// OpResult wraps a collaborator's result with error context so failures cross
// the layer boundary as taxonomy errors instead of raw driver errors.
type OpResult[T any] struct {
	result T
	err    error
	op     string
}

// Err returns the wrapped error with enhanced context.
// If there was no error, it returns nil.
func (r *OpResult[T]) Err() error {
	return wrapError(r.err, r.op)
}

// Unwrap returns the result and the wrapped error.
// Use this when you need both the result and the error.
func (r *OpResult[T]) Unwrap() (T, error) {
	return r.result, wrapError(r.err, r.op)
}

// Result returns only the result value.
// Use Err() to check for errors first.
func (r *OpResult[T]) Result() T {
	return r.result
}

// HasError returns true if there was an error.
func (r *OpResult[T]) HasError() bool {
	return r.err != nil
}

// WithErr wraps a result and error with operation context for enhanced error
// handling.
//
// Usage:
//
//	tag, err := pgxkit.WithErr(driver.Exec(ctx, sql, args...), "CreateUser").Unwrap()
func WithErr[T any](result T, err error, op string) *OpResult[T] {
	return &OpResult[T]{
		result: result,
		err:    err,
		op:     op,
	}
}

// WithErr1 is a convenience function for operations that return only an error.
//
// Usage:
//
//	err := pgxkit.WithErr1(rows.Scan(&id), "FindByID").Err()
func WithErr1(err error, op string) *OpResult[struct{}] {
	return &OpResult[struct{}]{
		result: struct{}{},
		err:    err,
		op:     op,
	}
}
