package postgres

import (
	"context"
	"errors"

	"github.com/gestionrodar/filmoteca/internal/apperr"
	"github.com/gestionrodar/filmoteca/internal/domain/user"
	"github.com/gestionrodar/filmoteca/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{pool: pool, prom: prom}
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}

	return fn()
}

// Create inserts in a single statement and lets the unique indexes on
// username/email arbitrate duplicates. No existence pre-check: under
// concurrent registration the database decides which write wins.
func (r *UsersRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	err := r.observe("users.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO users (id, username, email, password_hash, role, is_active, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			u.ID, u.Username, u.Email, u.PasswordHash, u.Role, u.IsActive, u.CreatedAt, u.UpdatedAt,
		)

		return err
	})

	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, apperr.Wrap(apperr.Conflict, "username or email already in use", err)
		}

		return user.User{}, err
	}

	return u, nil
}

// GetByUsernameOrEmail returns the full record, hash included; it exists for
// the login path only, which needs the hash to verify the password.
func (r *UsersRepo) GetByUsernameOrEmail(ctx context.Context, identifier string) (user.User, error) {
	var u user.User

	err := r.observe("users.get_by_identifier", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT id, username, email, password_hash, role, is_active, last_login_at, created_at, updated_at
			 FROM users
			 WHERE username = $1 OR email = lower($1)`,
			identifier,
		).Scan(
			&u.ID,
			&u.Username,
			&u.Email,
			&u.PasswordHash,
			&u.Role,
			&u.IsActive,
			&u.LastLoginAt,
			&u.CreatedAt,
			&u.UpdatedAt,
		)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

// GetByID returns a hash-free projection. Everything downstream of the auth
// middleware only ever sees this shape.
func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	var u user.User

	err := r.observe("users.get_by_id", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT id, username, email, role, is_active, last_login_at, created_at, updated_at
			 FROM users
			 WHERE id = $1`,
			id,
		).Scan(
			&u.ID,
			&u.Username,
			&u.Email,
			&u.Role,
			&u.IsActive,
			&u.LastLoginAt,
			&u.CreatedAt,
			&u.UpdatedAt,
		)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) TouchLastLogin(ctx context.Context, id string) error {
	return r.observe("users.touch_last_login", func() error {
		_, err := r.pool.Exec(ctx,
			`UPDATE users SET last_login_at = NOW(), updated_at = NOW() WHERE id = $1`,
			id,
		)

		return err
	})
}

func (r *UsersRepo) SetActive(ctx context.Context, id string, active bool) error {
	var tag pgconn.CommandTag

	err := r.observe("users.set_active", func() error {
		var err error

		tag, err = r.pool.Exec(ctx,
			`UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1`,
			id, active,
		)

		return err
	})

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}

	return nil
}

// List returns all users, hash-free, newest first.
func (r *UsersRepo) List(ctx context.Context) ([]user.User, error) {
	out := make([]user.User, 0)

	err := r.observe("users.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, username, email, role, is_active, last_login_at, created_at, updated_at
			 FROM users
			 ORDER BY created_at DESC`,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var u user.User

			err = rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.IsActive, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)

			if err != nil {
				return err
			}

			out = append(out, u)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
