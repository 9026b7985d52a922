package film

import (
	"errors"
	"time"
)

const (
	TypeMovie  = "película"
	TypeSeries = "serie"
)

// DefaultPosterURL is served whenever a record is created without a poster.
const DefaultPosterURL = "https://res.cloudinary.com/dvoh9w1ro/image/upload/v1706542878/imagen_generica_bpgzg5.png"

// Creator is the joined author projection embedded in every record.
type Creator struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Film is a single filmography record. JSON keys keep the deployed wire
// names (the admin UI binds to them directly), including the trilingual
// title/synopsis/genre triples.
type Film struct {
	ID          string    `json:"id"`
	Type        string    `json:"tipo"`
	Year        int       `json:"fecha"`
	Duration    string    `json:"duracion,omitempty"`
	Title       string    `json:"titulo"`
	TitleEn     string    `json:"tituloEn,omitempty"`
	TitleCat    string    `json:"tituloCat,omitempty"`
	Synopsis    string    `json:"sinopsis"`
	SynopsisEn  string    `json:"sinopsisEn,omitempty"`
	SynopsisCat string    `json:"sinopsisCat,omitempty"`
	Genre       string    `json:"genero,omitempty"`
	GenreEn     string    `json:"generoEn,omitempty"`
	GenreCat    string    `json:"generoCat,omitempty"`
	Director    string    `json:"director,omitempty"`
	Writers     string    `json:"guionistas,omitempty"`
	Cast        string    `json:"reparto,omitempty"`
	PosterURL   string    `json:"urlPoster"`
	IMDBLink    string    `json:"linkImdb,omitempty"`
	YoutubeURL  string    `json:"urlYoutube,omitempty"`
	MakingOfURL string    `json:"urlMakingOf,omitempty"`
	Platforms   string    `json:"plataformas,omitempty"`
	CreatedBy   Creator   `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("film not found")

type CreateFilmRequest struct {
	Type        string `json:"tipo" binding:"required,oneof='película' 'serie'"`
	Year        int    `json:"fecha" binding:"required,min=1888,max=2100"`
	Duration    string `json:"duracion" binding:"omitempty,max=60"`
	Title       string `json:"titulo" binding:"required,min=1,max=200"`
	TitleEn     string `json:"tituloEn" binding:"omitempty,max=200"`
	TitleCat    string `json:"tituloCat" binding:"omitempty,max=200"`
	Synopsis    string `json:"sinopsis" binding:"required,max=5000"`
	SynopsisEn  string `json:"sinopsisEn" binding:"omitempty,max=5000"`
	SynopsisCat string `json:"sinopsisCat" binding:"omitempty,max=5000"`
	Genre       string `json:"genero" binding:"omitempty,max=120"`
	GenreEn     string `json:"generoEn" binding:"omitempty,max=120"`
	GenreCat    string `json:"generoCat" binding:"omitempty,max=120"`
	Director    string `json:"director" binding:"omitempty,max=200"`
	Writers     string `json:"guionistas" binding:"omitempty,max=400"`
	Cast        string `json:"reparto" binding:"omitempty,max=2000"`
	PosterURL   string `json:"urlPoster" binding:"omitempty,max=500"`
	IMDBLink    string `json:"linkImdb" binding:"omitempty,max=500"`
	YoutubeURL  string `json:"urlYoutube" binding:"omitempty,max=500"`
	MakingOfURL string `json:"urlMakingOf" binding:"omitempty,max=500"`
	Platforms   string `json:"plataformas" binding:"omitempty,max=400"`
}

// a full update payload; partial updates are not part of the contract.
type UpdateFilmRequest = CreateFilmRequest

// Stats is the dashboard aggregate for /api/estadisticas.
type Stats struct {
	Total  int    `json:"total"`
	Movies int    `json:"peliculas"`
	Series int    `json:"series"`
	Recent []Film `json:"recientes"`
}
