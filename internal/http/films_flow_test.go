package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gestionrodar/filmoteca/internal/domain/film"
)

type filmEnvelope struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    film.Film `json:"data"`
}

func createFilm(t *testing.T, env *testEnv, cookie *http.Cookie, body string) film.Film {
	t.Helper()

	w := doRequest(env.router, http.MethodPost, "/api/nuevaFilmografia", body, cookie)

	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body=%s", w.Code, w.Body.String())
	}

	var resp filmEnvelope
	mustReadJSON(t, w, &resp)

	if resp.Data.ID == "" {
		t.Fatal("created record has no id")
	}

	return resp.Data
}

func TestFilmRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/obtenerFilmografias"},
		{http.MethodGet, "/api/obtenerFilmografia/x"},
		{http.MethodGet, "/api/estadisticas"},
		{http.MethodPost, "/api/nuevaFilmografia"},
		{http.MethodPut, "/api/actualizarFilmografia/x"},
		{http.MethodDelete, "/api/eliminarFilmografia/x"},
	}

	for _, tc := range cases {
		w := doRequest(env.router, tc.method, tc.path, "")

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s status = %d, want 401", tc.method, tc.path, w.Code)
		}
	}
}

func TestFilmCreateDefaultsPosterAndAuthor(t *testing.T) {
	env := newTestEnv(t)

	_, cookie := login(t, env, adminUsername, adminPassword)

	created := createFilm(t, env, cookie,
		`{"tipo":"película","fecha":2021,"titulo":"La Casa","sinopsis":"Un drama familiar."}`)

	if created.PosterURL != film.DefaultPosterURL {
		t.Fatalf("poster = %q, want the default image", created.PosterURL)
	}

	if created.CreatedBy.Username != adminUsername {
		t.Fatalf("createdBy = %+v, want the authenticated user", created.CreatedBy)
	}

	if created.Type != film.TypeMovie || created.Year != 2021 {
		t.Fatalf("unexpected record: %+v", created)
	}
}

func TestFilmCreateValidation(t *testing.T) {
	env := newTestEnv(t)

	_, cookie := login(t, env, adminUsername, adminPassword)

	cases := []struct {
		name string
		body string
	}{
		{"bad type", `{"tipo":"documental","fecha":2021,"titulo":"X","sinopsis":"Y"}`},
		{"year before cinema", `{"tipo":"película","fecha":1800,"titulo":"X","sinopsis":"Y"}`},
		{"missing title", `{"tipo":"película","fecha":2021,"sinopsis":"Y"}`},
		{"malformed json", `{"tipo":`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(env.router, http.MethodPost, "/api/nuevaFilmografia", tc.body, cookie)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400, body=%s", w.Code, w.Body.String())
			}
		})
	}
}

func TestFilmGetUpdateDelete(t *testing.T) {
	env := newTestEnv(t)

	_, cookie := login(t, env, adminUsername, adminPassword)

	created := createFilm(t, env, cookie,
		`{"tipo":"serie","fecha":2019,"titulo":"El Barrio","sinopsis":"Una serie."}`)

	// read it back
	w := doRequest(env.router, http.MethodGet, "/api/obtenerFilmografia/"+created.ID, "", cookie)

	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, body=%s", w.Code, w.Body.String())
	}

	var got film.Film
	mustReadJSON(t, w, &got)

	if got.Title != "El Barrio" || got.Type != film.TypeSeries {
		t.Fatalf("got %+v", got)
	}

	// full update replaces the record
	w = doRequest(env.router, http.MethodPut, "/api/actualizarFilmografia/"+created.ID,
		`{"tipo":"serie","fecha":2020,"titulo":"El Barrio","tituloEn":"The Hood","sinopsis":"Segunda temporada.","urlPoster":"https://example.com/p.png"}`,
		cookie)

	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body=%s", w.Code, w.Body.String())
	}

	var updated filmEnvelope
	mustReadJSON(t, w, &updated)

	if updated.Data.Year != 2020 || updated.Data.TitleEn != "The Hood" {
		t.Fatalf("update did not apply: %+v", updated.Data)
	}

	if updated.Data.PosterURL != "https://example.com/p.png" {
		t.Fatalf("poster = %q", updated.Data.PosterURL)
	}

	// delete, then the record is gone
	w = doRequest(env.router, http.MethodDelete, "/api/eliminarFilmografia/"+created.ID, "", cookie)

	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d, body=%s", w.Code, w.Body.String())
	}

	w = doRequest(env.router, http.MethodGet, "/api/obtenerFilmografia/"+created.ID, "", cookie)

	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete = %d, want 404", w.Code)
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}

	mustReadJSON(t, w, &resp)

	if resp.Success || resp.Message != "film record not found" {
		t.Fatalf("unexpected 404 body: %s", w.Body.String())
	}
}

func TestFilmNotFoundEnvelopes(t *testing.T) {
	env := newTestEnv(t)

	_, cookie := login(t, env, adminUsername, adminPassword)

	body := `{"tipo":"película","fecha":2021,"titulo":"X","sinopsis":"Y"}`

	checks := []*httptest.ResponseRecorder{
		doRequest(env.router, http.MethodGet, "/api/obtenerFilmografia/missing", "", cookie),
		doRequest(env.router, http.MethodPut, "/api/actualizarFilmografia/missing", body, cookie),
		doRequest(env.router, http.MethodDelete, "/api/eliminarFilmografia/missing", "", cookie),
	}

	for _, w := range checks {
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404, body=%s", w.Code, w.Body.String())
		}
	}
}

func TestFilmListOrderAndETag(t *testing.T) {
	env := newTestEnv(t)

	_, cookie := login(t, env, adminUsername, adminPassword)

	createFilm(t, env, cookie,
		`{"tipo":"película","fecha":2018,"titulo":"Primera","sinopsis":"Uno."}`)
	second := createFilm(t, env, cookie,
		`{"tipo":"serie","fecha":2022,"titulo":"Segunda","sinopsis":"Dos."}`)

	w := doRequest(env.router, http.MethodGet, "/api/obtenerFilmografias", "", cookie)

	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, body=%s", w.Code, w.Body.String())
	}

	var films []film.Film
	mustReadJSON(t, w, &films)

	if len(films) != 2 || films[0].ID != second.ID {
		t.Fatalf("list order wrong: %+v", films)
	}

	etag := w.Header().Get("ETag")

	if etag == "" {
		t.Fatal("list response missing ETag")
	}

	// replay with the tag: 304, empty body
	req := httptest.NewRequest(http.MethodGet, "/api/obtenerFilmografias", nil)
	req.AddCookie(cookie)
	req.Header.Set("If-None-Match", etag)

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotModified {
		t.Fatalf("replay status = %d, want 304", rec.Code)
	}

	if rec.Body.Len() != 0 {
		t.Fatalf("304 must carry no body, got %s", rec.Body.String())
	}
}

func TestFilmStatsCountsAndInvalidation(t *testing.T) {
	env := newTestEnv(t)

	_, cookie := login(t, env, adminUsername, adminPassword)

	createFilm(t, env, cookie,
		`{"tipo":"película","fecha":2018,"titulo":"Uno","sinopsis":"A."}`)
	createFilm(t, env, cookie,
		`{"tipo":"película","fecha":2019,"titulo":"Dos","sinopsis":"B."}`)
	serie := createFilm(t, env, cookie,
		`{"tipo":"serie","fecha":2022,"titulo":"Tres","sinopsis":"C."}`)

	var resp struct {
		Success bool       `json:"success"`
		Stats   film.Stats `json:"estadisticas"`
	}

	w := doRequest(env.router, http.MethodGet, "/api/estadisticas", "", cookie)

	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d, body=%s", w.Code, w.Body.String())
	}

	mustReadJSON(t, w, &resp)

	if resp.Stats.Total != 3 || resp.Stats.Movies != 2 || resp.Stats.Series != 1 {
		t.Fatalf("stats = %+v", resp.Stats)
	}

	if len(resp.Stats.Recent) != 3 || resp.Stats.Recent[0].ID != serie.ID {
		t.Fatalf("recent list wrong: %+v", resp.Stats.Recent)
	}

	// a delete invalidates the cached aggregate immediately
	w = doRequest(env.router, http.MethodDelete, "/api/eliminarFilmografia/"+serie.ID, "", cookie)

	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}

	w = doRequest(env.router, http.MethodGet, "/api/estadisticas", "", cookie)

	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d", w.Code)
	}

	mustReadJSON(t, w, &resp)

	if resp.Stats.Total != 2 || resp.Stats.Series != 0 {
		t.Fatalf("stats after delete = %+v", resp.Stats)
	}
}

func TestFilmEditorCanWrite(t *testing.T) {
	env := newTestEnv(t)

	_, adminCookie := login(t, env, adminUsername, adminPassword)

	w := doRequest(env.router, http.MethodPost, "/auth/register",
		`{"username":"editor1","email":"editor1@example.com","password":"secret-pass"}`, adminCookie)

	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d", w.Code)
	}

	_, editorCookie := login(t, env, "editor1", "secret-pass")

	created := createFilm(t, env, editorCookie,
		`{"tipo":"película","fecha":2023,"titulo":"Obra","sinopsis":"De un editor."}`)

	if created.CreatedBy.Username != "editor1" {
		t.Fatalf("createdBy = %+v", created.CreatedBy)
	}
}
