package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err:  &AppError{Code: ErrCodeNotFound, Message: "joke not found"},
			want: "joke not found",
		},
		{
			name: "error with cause",
			err:  &AppError{Code: ErrCodeInternal, Message: "load user", Cause: errors.New("connection reset")},
			want: "load user: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConstructorsAndPredicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		code  ErrorCode
		check func(error) bool
	}{
		{name: "not found", err: NotFound("x"), code: ErrCodeNotFound, check: IsNotFound},
		{name: "not found formatted", err: NotFoundf("joke %s", "j1"), code: ErrCodeNotFound, check: IsNotFound},
		{name: "conflict", err: Conflictf("User with username %s already exists", "alice"), code: ErrCodeConflict, check: IsConflict},
		{name: "validation", err: ValidationField("name", "too short"), code: ErrCodeValidation, check: IsValidation},
		{name: "forbidden", err: Forbidden("not yours"), code: ErrCodeForbidden, check: IsForbidden},
		{name: "internal", err: Internal("boom"), code: ErrCodeInternal, check: IsInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(tt.err) {
				t.Fatalf("predicate failed for %v", tt.err)
			}
			if GetCode(tt.err) != tt.code {
				t.Fatalf("GetCode() = %v, want %v", GetCode(tt.err), tt.code)
			}
			wrapped := fmt.Errorf("outer: %w", tt.err)
			if !tt.check(wrapped) {
				t.Fatalf("predicate must see through wrapping")
			}
		})
	}
}

func TestForbiddenIsDistinctFromNotFound(t *testing.T) {
	err := Forbidden("Pssh, nice try. That's not your joke")
	if IsNotFound(err) {
		t.Fatalf("forbidden must not be reported as not found")
	}
	if IsForbidden(NotFound("missing")) {
		t.Fatalf("not found must not be reported as forbidden")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, ErrCodeInternal, "x") != nil {
		t.Fatalf("Wrap(nil) must return nil")
	}
	cause := errors.New("dial tcp: refused")
	err := Wrapf(cause, ErrCodeInternal, "find user %s", "u1")
	if !errors.Is(err, cause) {
		t.Fatalf("cause must be reachable with errors.Is")
	}
	if err.Message != "find user u1" {
		t.Fatalf("unexpected message %q", err.Message)
	}
}

func TestGetField(t *testing.T) {
	if got := GetField(ValidationField("username", "taken")); got != "username" {
		t.Fatalf("GetField() = %q", got)
	}
	if got := GetField(errors.New("plain")); got != "" {
		t.Fatalf("GetField() on plain error = %q", got)
	}
}

func TestPublicMessage(t *testing.T) {
	err := Wrap(errors.New("pq: password authentication failed"), ErrCodeInternal, "Could not load joke")
	if got := PublicMessage(err); got != "Could not load joke" {
		t.Fatalf("PublicMessage() = %q", got)
	}
	if got := PublicMessage(errors.New("secret detail")); got == "secret detail" {
		t.Fatalf("plain errors must not leak")
	}
}
