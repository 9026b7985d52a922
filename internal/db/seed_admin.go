package db

import (
	"context"
	"time"

	"github.com/gestionrodar/filmoteca/internal/config"
	"github.com/gestionrodar/filmoteca/internal/domain/user"
	"github.com/gestionrodar/filmoteca/internal/security"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureAdminUser seeds the bootstrap admin if its username is still free.
// ON CONFLICT DO NOTHING makes the seed idempotent and race-free: two
// processes booting at once cannot both insert.
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) (created bool, err error) {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return false, nil
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return false, err
	}

	now := time.Now().UTC()

	u := user.User{
		ID:           uuid.NewString(),
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         user.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	tag, err := pool.Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash, role, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (username) DO NOTHING`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.Role, u.IsActive, u.CreatedAt, u.UpdatedAt,
	)

	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}
