package observability

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveDBPropagatesError(t *testing.T) {
	p := NewProm()

	sentinel := errors.New("boom")

	err := p.ObserveDB("ping", func() error { return sentinel })

	if !errors.Is(err, sentinel) {
		t.Fatalf("ObserveDB = %v, want the wrapped error", err)
	}

	if got := testutil.ToFloat64(p.DbErrorsTotal.WithLabelValues("ping", "unknown")); got != 1 {
		t.Fatalf("error counter = %v, want 1", got)
	}
}

func TestClassifyDBErr(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"unique violation", &pgconn.PgError{Code: "23505"}, "unique_violation"},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, "serialization_failure"},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, "deadlock"},
		{"query canceled", &pgconn.PgError{Code: "57014"}, "query_canceled"},
		{"other pg code", &pgconn.PgError{Code: "22001"}, "pg_22001"},
		{"context deadline", errors.New("context deadline exceeded"), "timeout"},
		{"connection refused", errors.New("connection refused"), "connection"},
		{"anything else", errors.New("boom"), "unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyDBErr(tc.err); got != tc.want {
				t.Fatalf("classifyDBErr = %q, want %q", got, tc.want)
			}
		})
	}
}
