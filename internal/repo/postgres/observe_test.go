package postgres

import (
	"errors"
	"testing"

	"github.com/gestionrodar/filmoteca/internal/observability"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveWithoutProm(t *testing.T) {
	repo := NewUsersRepo(nil, nil)

	sentinel := errors.New("connection refused")

	err := repo.observe("users.create", func() error { return sentinel })

	if !errors.Is(err, sentinel) {
		t.Fatalf("observe = %v, want the op's own error", err)
	}

	if err := repo.observe("users.list", func() error { return nil }); err != nil {
		t.Fatalf("observe = %v, want nil", err)
	}
}

func TestObserveRecordsMetrics(t *testing.T) {
	prom := observability.NewProm()
	repo := NewFilmsRepo(nil, prom)

	if err := repo.observe("films.list", func() error { return nil }); err != nil {
		t.Fatalf("observe = %v", err)
	}

	pgErr := &pgconn.PgError{Code: "23505"}

	err := repo.observe("films.create", func() error { return pgErr })

	if !errors.Is(err, pgErr) {
		t.Fatalf("observe = %v, want the pg error back", err)
	}

	got := testutil.ToFloat64(prom.DbErrorsTotal.WithLabelValues("films.create", "unique_violation"))

	if got != 1 {
		t.Fatalf("unique_violation counter = %v, want 1", got)
	}

	// successful ops land in the duration histogram, not the error counter
	if n := testutil.CollectAndCount(prom.DbQueryDuration); n == 0 {
		t.Fatal("query duration histogram recorded nothing")
	}
}
