package film

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(req CreateFilmRequest, createdBy Creator) Film {
	now := time.Now().UTC()

	poster := strings.TrimSpace(req.PosterURL)

	if poster == "" {
		poster = DefaultPosterURL
	}

	return Film{
		ID:          uuid.NewString(),
		Type:        req.Type,
		Year:        req.Year,
		Duration:    req.Duration,
		Title:       req.Title,
		TitleEn:     req.TitleEn,
		TitleCat:    req.TitleCat,
		Synopsis:    req.Synopsis,
		SynopsisEn:  req.SynopsisEn,
		SynopsisCat: req.SynopsisCat,
		Genre:       req.Genre,
		GenreEn:     req.GenreEn,
		GenreCat:    req.GenreCat,
		Director:    req.Director,
		Writers:     req.Writers,
		Cast:        req.Cast,
		PosterURL:   poster,
		IMDBLink:    req.IMDBLink,
		YoutubeURL:  req.YoutubeURL,
		MakingOfURL: req.MakingOfURL,
		Platforms:   req.Platforms,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
