package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapDBError_NilError(t *testing.T) {
	if err := MapDBError(nil); err != nil {
		t.Errorf("MapDBError(nil) = %v, want nil", err)
	}
}

func TestMapDBError_Codes(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  ErrorCode
		wantField string
	}{
		{name: "deadline exceeded", err: context.DeadlineExceeded, wantCode: ErrCodeTimeout},
		{name: "canceled", err: fmt.Errorf("query: %w", context.Canceled), wantCode: ErrCodeCanceled},
		{name: "no rows", err: pgx.ErrNoRows, wantCode: ErrCodeNotFound},
		{
			name: "unique violation from detail",
			err: &pgconn.PgError{
				Code:   pgerrcode.UniqueViolation,
				Detail: "Key (username)=(alice) already exists.",
			},
			wantCode:  ErrCodeConflict,
			wantField: "username",
		},
		{
			name:      "unique violation from constraint",
			err:       &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_username_key"},
			wantCode:  ErrCodeConflict,
			wantField: "username",
		},
		{
			name:      "unique violation column metadata wins",
			err:       &pgconn.PgError{Code: pgerrcode.UniqueViolation, ColumnName: "name", ConstraintName: "users_username_key"},
			wantCode:  ErrCodeConflict,
			wantField: "name",
		},
		{
			name:     "foreign key",
			err:      &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "jokes_jokester_id_fkey"},
			wantCode: ErrCodeForeignKey,
		},
		{
			name:      "check violation",
			err:       &pgconn.PgError{Code: pgerrcode.CheckViolation, ColumnName: "name"},
			wantCode:  ErrCodeValidation,
			wantField: "name",
		},
		{
			name:     "malformed uuid",
			err:      &pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation},
			wantCode: ErrCodeNotFound,
		},
		{
			name:     "unknown pg error",
			err:      &pgconn.PgError{Code: pgerrcode.DiskFull},
			wantCode: ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapDBError(tt.err)
			if GetCode(err) != tt.wantCode {
				t.Fatalf("MapDBError() code = %v, want %v", GetCode(err), tt.wantCode)
			}
			if GetField(err) != tt.wantField {
				t.Fatalf("MapDBError() field = %q, want %q", GetField(err), tt.wantField)
			}
			if !errors.Is(err, tt.err) {
				t.Fatalf("original error must remain reachable")
			}
		})
	}
}

func TestMapDBError_ForeignKeyMessage(t *testing.T) {
	err := MapDBError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "jokes_jokester_id_fkey"})
	want := "Cannot complete operation because the referenced user does not exist."
	if PublicMessage(err) != want {
		t.Fatalf("message = %q, want %q", PublicMessage(err), want)
	}
}

func TestMapDBError_StandardError(t *testing.T) {
	plain := errors.New("plain")
	if err := MapDBError(plain); err != plain {
		t.Fatalf("unrecognized errors must pass through unchanged, got %v", err)
	}
}
