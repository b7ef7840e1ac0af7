package errors

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// reKeyField extracts the column from unique violation detail: "Key (field)=(value) already exists.".
var reKeyField = regexp.MustCompile(`Key \(([^)]+)\)=`)

// tableNames maps tables to the names users see in messages.
var tableNames = map[string]string{
	"users": "user",
	"jokes": "joke",
}

// MapDBError maps database errors to AppError instances:
//   - context deadline/cancel → Timeout/Canceled
//   - pgx.ErrNoRows → NotFound
//   - unique violations → Conflict (with Field when it can be determined)
//   - foreign key violations → ForeignKey
//   - check and NOT NULL violations → Validation
//   - invalid text representation (e.g. a malformed uuid) → NotFound
//
// Unrecognized errors are returned unchanged.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{Code: ErrCodeTimeout, Message: "Request timed out. Please try again.", Cause: err}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{Code: ErrCodeCanceled, Message: "Request was canceled.", Cause: err}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &AppError{Code: ErrCodeNotFound, Message: "Resource not found", Cause: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapPgError(pgErr)
	}
	return err
}

func mapPgError(pgErr *pgconn.PgError) error {
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		field := uniqueViolationField(pgErr)
		return &AppError{
			Code:    ErrCodeConflict,
			Message: "This value already exists. Please choose a different one.",
			Field:   field,
			Cause:   pgErr,
		}
	case pgerrcode.ForeignKeyViolation:
		return &AppError{
			Code:    ErrCodeForeignKey,
			Message: "Cannot complete operation because the referenced " + domainName(referencedTable(pgErr)) + " does not exist.",
			Cause:   pgErr,
		}
	case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
		return &AppError{
			Code:    ErrCodeValidation,
			Message: "Invalid data. Please check your input.",
			Field:   pgErr.ColumnName,
			Cause:   pgErr,
		}
	case pgerrcode.InvalidTextRepresentation:
		return &AppError{Code: ErrCodeNotFound, Message: "Resource not found", Cause: pgErr}
	default:
		return &AppError{
			Code:    ErrCodeInternal,
			Message: "A database error occurred. Please try again.",
			Cause:   pgErr,
		}
	}
}

// uniqueViolationField prefers column metadata, then the Detail message, then the
// constraint name ("users_username_key" → "username").
func uniqueViolationField(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	if m := reKeyField.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
		return m[1]
	}
	parts := strings.Split(pgErr.ConstraintName, "_")
	if len(parts) == 3 {
		return parts[1]
	}
	return ""
}

// referencedTable infers the parent table of a foreign key ("jokes_jokester_id_fkey" → users).
func referencedTable(pgErr *pgconn.PgError) string {
	if strings.Contains(pgErr.ConstraintName, "jokester") {
		return "users"
	}
	return pgErr.TableName
}

func domainName(table string) string {
	table = strings.ToLower(strings.TrimSpace(table))
	if name, ok := tableNames[table]; ok {
		return name
	}
	if table == "" {
		return "item"
	}
	return strings.ReplaceAll(table, "_", " ")
}
