package postgres

import (
	"context"
	"errors"

	"github.com/gestionrodar/filmoteca/internal/domain/film"
	"github.com/gestionrodar/filmoteca/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FilmsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewFilmsRepo(pool *pgxpool.Pool, prom *observability.Prom) *FilmsRepo {
	return &FilmsRepo{pool: pool, prom: prom}
}

func (r *FilmsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}

	return fn()
}

const filmColumns = `f.id, f.tipo, f.fecha, f.duracion, f.titulo, f.titulo_en, f.titulo_cat,
	f.sinopsis, f.sinopsis_en, f.sinopsis_cat, f.genero, f.genero_en, f.genero_cat,
	f.director, f.guionistas, f.reparto, f.url_poster, f.link_imdb, f.url_youtube,
	f.url_making_of, f.plataformas, COALESCE(f.created_by, ''), COALESCE(u.username, ''), f.created_at, f.updated_at`

func scanFilm(row pgx.Row) (film.Film, error) {
	var f film.Film

	err := row.Scan(
		&f.ID, &f.Type, &f.Year, &f.Duration, &f.Title, &f.TitleEn, &f.TitleCat,
		&f.Synopsis, &f.SynopsisEn, &f.SynopsisCat, &f.Genre, &f.GenreEn, &f.GenreCat,
		&f.Director, &f.Writers, &f.Cast, &f.PosterURL, &f.IMDBLink, &f.YoutubeURL,
		&f.MakingOfURL, &f.Platforms, &f.CreatedBy.ID, &f.CreatedBy.Username, &f.CreatedAt, &f.UpdatedAt,
	)

	return f, err
}

func (r *FilmsRepo) Create(ctx context.Context, f film.Film) (film.Film, error) {
	err := r.observe("films.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO films (
				id, tipo, fecha, duracion, titulo, titulo_en, titulo_cat,
				sinopsis, sinopsis_en, sinopsis_cat, genero, genero_en, genero_cat,
				director, guionistas, reparto, url_poster, link_imdb, url_youtube,
				url_making_of, plataformas, created_by, created_at, updated_at
			) VALUES (
				$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24
			)`,
			f.ID, f.Type, f.Year, f.Duration, f.Title, f.TitleEn, f.TitleCat,
			f.Synopsis, f.SynopsisEn, f.SynopsisCat, f.Genre, f.GenreEn, f.GenreCat,
			f.Director, f.Writers, f.Cast, f.PosterURL, f.IMDBLink, f.YoutubeURL,
			f.MakingOfURL, f.Platforms, f.CreatedBy.ID, f.CreatedAt, f.UpdatedAt,
		)

		return err
	})

	if err != nil {
		return film.Film{}, err
	}

	return f, nil
}

// List returns the whole catalog, newest first, with the creator username
// joined in. The collection is small and admin-curated; no pagination.
func (r *FilmsRepo) List(ctx context.Context) ([]film.Film, error) {
	out := make([]film.Film, 0)

	err := r.observe("films.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+filmColumns+`
			 FROM films f
			 LEFT JOIN users u ON u.id = f.created_by
			 ORDER BY f.created_at DESC`,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			f, err := scanFilm(rows)

			if err != nil {
				return err
			}

			out = append(out, f)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *FilmsRepo) GetByID(ctx context.Context, id string) (film.Film, error) {
	var f film.Film

	err := r.observe("films.get_by_id", func() error {
		var err error

		f, err = scanFilm(r.pool.QueryRow(ctx,
			`SELECT `+filmColumns+`
			 FROM films f
			 LEFT JOIN users u ON u.id = f.created_by
			 WHERE f.id = $1`,
			id,
		))

		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return film.Film{}, film.ErrNotFound
		}

		return film.Film{}, err
	}

	return f, nil
}

func (r *FilmsRepo) Update(ctx context.Context, id string, req film.UpdateFilmRequest) (film.Film, error) {
	poster := req.PosterURL

	if poster == "" {
		poster = film.DefaultPosterURL
	}

	var tag pgconn.CommandTag

	err := r.observe("films.update", func() error {
		var err error

		tag, err = r.pool.Exec(ctx,
			`UPDATE films
			SET tipo = $2,
				fecha = $3,
				duracion = $4,
				titulo = $5,
				titulo_en = $6,
				titulo_cat = $7,
				sinopsis = $8,
				sinopsis_en = $9,
				sinopsis_cat = $10,
				genero = $11,
				genero_en = $12,
				genero_cat = $13,
				director = $14,
				guionistas = $15,
				reparto = $16,
				url_poster = $17,
				link_imdb = $18,
				url_youtube = $19,
				url_making_of = $20,
				plataformas = $21,
				updated_at = NOW()
			 WHERE id = $1`,
			id,
			req.Type, req.Year, req.Duration, req.Title, req.TitleEn, req.TitleCat,
			req.Synopsis, req.SynopsisEn, req.SynopsisCat, req.Genre, req.GenreEn, req.GenreCat,
			req.Director, req.Writers, req.Cast, poster, req.IMDBLink, req.YoutubeURL,
			req.MakingOfURL, req.Platforms,
		)

		return err
	})

	if err != nil {
		return film.Film{}, err
	}

	if tag.RowsAffected() == 0 {
		return film.Film{}, film.ErrNotFound
	}

	// re-read with the creator join so the response matches List/Get
	return r.GetByID(ctx, id)
}

func (r *FilmsRepo) Delete(ctx context.Context, id string) error {
	var tag pgconn.CommandTag

	err := r.observe("films.delete", func() error {
		var err error

		tag, err = r.pool.Exec(ctx, `DELETE FROM films WHERE id = $1`, id)

		return err
	})

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return film.ErrNotFound
	}

	return nil
}

// Stats aggregates the dashboard numbers and the five most recent records.
func (r *FilmsRepo) Stats(ctx context.Context) (film.Stats, error) {
	var s film.Stats

	err := r.observe("films.stats", func() error {
		err := r.pool.QueryRow(ctx,
			`SELECT COUNT(*),
				COUNT(*) FILTER (WHERE tipo = $1),
				COUNT(*) FILTER (WHERE tipo = $2)
			 FROM films`,
			film.TypeMovie, film.TypeSeries,
		).Scan(&s.Total, &s.Movies, &s.Series)

		if err != nil {
			return err
		}

		rows, err := r.pool.Query(ctx,
			`SELECT `+filmColumns+`
			 FROM films f
			 LEFT JOIN users u ON u.id = f.created_by
			 ORDER BY f.created_at DESC
			 LIMIT 5`,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		s.Recent = make([]film.Film, 0, 5)

		for rows.Next() {
			f, err := scanFilm(rows)

			if err != nil {
				return err
			}

			s.Recent = append(s.Recent, f)
		}

		return rows.Err()
	})

	if err != nil {
		return film.Stats{}, err
	}

	return s, nil
}
