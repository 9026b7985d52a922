package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	err := New(Conflict, "username taken")

	if KindOf(err) != Conflict {
		t.Fatalf("got %v, want Conflict", KindOf(err))
	}

	// wrapped app errors keep their kind
	wrapped := fmt.Errorf("creating user: %w", err)

	if KindOf(wrapped) != Conflict {
		t.Fatalf("wrapped: got %v, want Conflict", KindOf(wrapped))
	}

	if KindOf(errors.New("plain")) != Internal {
		t.Fatal("non-app errors should classify as Internal")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{Validation, http.StatusBadRequest},
		// conflicts answer 400 to preserve the deployed contract
		{Conflict, http.StatusBadRequest},
		{TokenExpired, http.StatusUnauthorized},
		{TokenInvalid, http.StatusUnauthorized},
		{Unauthenticated, http.StatusUnauthorized},
		{Forbidden, http.StatusForbidden},
		{NotFound, http.StatusNotFound},
		{Internal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := tc.kind.HTTPStatus(); got != tc.want {
			t.Fatalf("%v.HTTPStatus() = %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("duplicate key value violates unique constraint")
	err := Wrap(Conflict, "username or email already in use", cause)

	if !errors.Is(err, cause) {
		t.Fatal("wrapped cause should survive errors.Is")
	}
}
