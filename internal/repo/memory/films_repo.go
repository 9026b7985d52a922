package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gestionrodar/filmoteca/internal/domain/film"
)

type FilmsRepo struct {
	mu    sync.RWMutex
	films map[string]film.Film
}

func NewFilmsRepo() *FilmsRepo {
	return &FilmsRepo{films: make(map[string]film.Film)}
}

func (r *FilmsRepo) Create(_ context.Context, f film.Film) (film.Film, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.films[f.ID] = f

	return f, nil
}

func (r *FilmsRepo) List(_ context.Context) ([]film.Film, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]film.Film, 0, len(r.films))

	for _, f := range r.films {
		out = append(out, f)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *FilmsRepo) GetByID(_ context.Context, id string) (film.Film, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.films[id]

	if !ok {
		return film.Film{}, film.ErrNotFound
	}

	return f, nil
}

func (r *FilmsRepo) Update(_ context.Context, id string, req film.UpdateFilmRequest) (film.Film, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.films[id]

	if !ok {
		return film.Film{}, film.ErrNotFound
	}

	poster := req.PosterURL

	if poster == "" {
		poster = film.DefaultPosterURL
	}

	f.Type = req.Type
	f.Year = req.Year
	f.Duration = req.Duration
	f.Title = req.Title
	f.TitleEn = req.TitleEn
	f.TitleCat = req.TitleCat
	f.Synopsis = req.Synopsis
	f.SynopsisEn = req.SynopsisEn
	f.SynopsisCat = req.SynopsisCat
	f.Genre = req.Genre
	f.GenreEn = req.GenreEn
	f.GenreCat = req.GenreCat
	f.Director = req.Director
	f.Writers = req.Writers
	f.Cast = req.Cast
	f.PosterURL = poster
	f.IMDBLink = req.IMDBLink
	f.YoutubeURL = req.YoutubeURL
	f.MakingOfURL = req.MakingOfURL
	f.Platforms = req.Platforms
	f.UpdatedAt = time.Now().UTC()

	r.films[id] = f

	return f, nil
}

func (r *FilmsRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.films[id]

	if !ok {
		return film.ErrNotFound
	}

	delete(r.films, id)

	return nil
}

func (r *FilmsRepo) Stats(_ context.Context) (film.Stats, error) {
	all, _ := r.List(context.Background())

	s := film.Stats{Recent: make([]film.Film, 0, 5)}

	for _, f := range all {
		s.Total++

		switch f.Type {
		case film.TypeMovie:
			s.Movies++
		case film.TypeSeries:
			s.Series++
		}

		if len(s.Recent) < 5 {
			s.Recent = append(s.Recent, f)
		}
	}

	return s, nil
}
