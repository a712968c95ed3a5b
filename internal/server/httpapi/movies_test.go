package httpapi

import (
	"errors"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/movieapi/internal/common"
	"github.com/dmitrijs2005/movieapi/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMovieBody() map[string]any {
	return map[string]any{
		"title":       "Alien",
		"releaseDate": "1979-05-25",
		"typeId":      1,
		"rating":      8.5,
		"duration":    117,
	}
}

func TestMovies_PublicReads(t *testing.T) {
	api := newTestAPI(t)
	api.movies.movies[1] = &models.Movie{ID: 1, Title: "Alien", TypeID: 1}

	rec, env := api.do(t, http.MethodGet, "/api/movies", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Movies retrieved successfully", env.Message)
	assert.Len(t, env.Data, 1)

	rec, env = api.do(t, http.MethodGet, "/api/movies/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Alien", dataMap(t, env)["title"])

	rec, env = api.do(t, http.MethodGet, "/api/movies/99", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgMovieNotFound, env.Message)

	rec, _ = api.do(t, http.MethodGet, "/api/movies/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateMovie(t *testing.T) {
	tests := []struct {
		name       string
		token      bool
		body       map[string]any
		wantStatus int
		wantMsg    string
	}{
		{name: "created", token: true, body: validMovieBody(), wantStatus: http.StatusOK, wantMsg: "Movie created successfully"},
		{name: "no token", token: false, body: validMovieBody(), wantStatus: http.StatusUnauthorized, wantMsg: msgNoToken},
		{
			name:  "missing title",
			token: true,
			body: func() map[string]any {
				b := validMovieBody()
				delete(b, "title")
				return b
			}(),
			wantStatus: http.StatusBadRequest,
			wantMsg:    msgMovieRequired,
		},
		{
			name:  "unknown type",
			token: true,
			body: func() map[string]any {
				b := validMovieBody()
				b["typeId"] = 9
				return b
			}(),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid movie type",
		},
		{
			name:  "rating out of range",
			token: true,
			body: func() map[string]any {
				b := validMovieBody()
				b["rating"] = 11
				return b
			}(),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid movie data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)

			token := ""
			if tt.token {
				token = api.token(t, "1")
			}

			rec, env := api.do(t, http.MethodPost, "/api/movies", token, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, env.Message)
		})
	}
}

func TestCreateMovie_PassesFieldsThrough(t *testing.T) {
	api := newTestAPI(t)

	rec, _ := api.do(t, http.MethodPost, "/api/movies", api.token(t, "1"), validMovieBody())
	require.Equal(t, http.StatusOK, rec.Code)

	in := api.movies.lastInput
	assert.Equal(t, "Alien", in.Title)
	assert.Equal(t, "1979-05-25", in.ReleaseDate)
	assert.Equal(t, int64(1), in.TypeID)
	require.NotNil(t, in.Rating)
	assert.InDelta(t, 8.5, *in.Rating, 0.001)
	require.NotNil(t, in.Duration)
	assert.Equal(t, int32(117), *in.Duration)
}

func TestCreateMovie_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "bad date", err: common.ErrInvalidReleaseDate, wantStatus: http.StatusBadRequest, wantMsg: "Invalid release date"},
		{name: "storage", err: errors.New("db down"), wantStatus: http.StatusInternalServerError, wantMsg: msgInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			api.movies.errOverride = tt.err

			rec, env := api.do(t, http.MethodPost, "/api/movies", api.token(t, "1"), validMovieBody())
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, env.Message)
		})
	}
}

func TestUpdateAndDeleteMovie(t *testing.T) {
	api := newTestAPI(t)
	token := api.token(t, "1")
	api.movies.movies[1] = &models.Movie{ID: 1, Title: "Old", TypeID: 1}

	rec, env := api.do(t, http.MethodPut, "/api/movies/1", token, validMovieBody())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Alien", dataMap(t, env)["title"])

	rec, env = api.do(t, http.MethodPut, "/api/movies/2", token, validMovieBody())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgMovieNotFound, env.Message)

	rec, _ = api.do(t, http.MethodDelete, "/api/movies/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env = api.do(t, http.MethodDelete, "/api/movies/1", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Movie deleted successfully", env.Message)

	rec, _ = api.do(t, http.MethodDelete, "/api/movies/1", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequestPosterUpload(t *testing.T) {
	api := newTestAPI(t)
	token := api.token(t, "1")
	api.movies.movies[1] = &models.Movie{ID: 1, Title: "Alien", TypeID: 1}

	rec, env := api.do(t, http.MethodPost, "/api/movies/1/poster", token, map[string]string{"contentType": "image/jpeg"})
	require.Equal(t, http.StatusOK, rec.Code)
	data := dataMap(t, env)
	assert.Equal(t, "http://s3/upload", data["uploadUrl"])
	assert.Equal(t, "http://s3/posters/1/x.jpg", data["posterUrl"])

	rec, _ = api.do(t, http.MethodPost, "/api/movies/1/poster", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = api.do(t, http.MethodPost, "/api/movies/2/poster", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	api.movies.posterErr = common.ErrUnsupportedMedia
	rec, _ = api.do(t, http.MethodPost, "/api/movies/1/poster", token, map[string]string{"contentType": "image/gif"})
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	api.movies.posterErr = common.ErrStorageDisabled
	rec, _ = api.do(t, http.MethodPost, "/api/movies/1/poster", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMovieLinks(t *testing.T) {
	api := newTestAPI(t)
	token := api.token(t, "1")
	api.movies.movies[1] = &models.Movie{ID: 1, Title: "Alien", TypeID: 1}

	rec, env := api.do(t, http.MethodPost, "/api/movies/1/links", token, map[string]string{"url": "https://example.com/trailer", "label": "Trailer"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Movie link created successfully", env.Message)
	assert.Equal(t, float64(1), dataMap(t, env)["movieId"])

	rec, env = api.do(t, http.MethodPost, "/api/movies/1/links", token, map[string]string{"label": "no url"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgLinkURL, env.Message)

	rec, _ = api.do(t, http.MethodPost, "/api/movies/1/links", token, map[string]string{"url": "not a url"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = api.do(t, http.MethodPost, "/api/movies/9/links", token, map[string]string{"url": "https://example.com"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgMovieNotFound, env.Message)

	rec, env = api.do(t, http.MethodGet, "/api/movies/1/links", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, env.Data, 1)

	rec, _ = api.do(t, http.MethodGet, "/api/movies/9/links", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = api.do(t, http.MethodPut, "/api/movie-links/1", token, map[string]string{"url": "https://example.com/new", "label": "New"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://example.com/new", dataMap(t, env)["url"])

	rec, env = api.do(t, http.MethodPut, "/api/movie-links/5", token, map[string]string{"url": "https://example.com"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgLinkNotFound, env.Message)

	rec, _ = api.do(t, http.MethodDelete, "/api/movie-links/1", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = api.do(t, http.MethodDelete, "/api/movie-links/1", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
