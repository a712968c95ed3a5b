package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/movieapi/internal/common"
	"github.com/dmitrijs2005/movieapi/internal/logging"
	"github.com/dmitrijs2005/movieapi/internal/server/auth"
	"github.com/dmitrijs2005/movieapi/internal/server/models"
	"github.com/dmitrijs2005/movieapi/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("httpapi-test-secret")

type fakeUsers struct {
	registerFn       func(email, name, password string) (*models.PublicUser, error)
	loginFn          func(email, password string) (string, error)
	changePasswordFn func(userID int64, oldPassword, newPassword string) error
	getUserInfoFn    func(userID int64) (*models.PublicUser, error)
	listUsersFn      func() ([]*models.PublicUser, error)
}

func (f *fakeUsers) Register(_ context.Context, email, name, password string) (*models.PublicUser, error) {
	return f.registerFn(email, name, password)
}

func (f *fakeUsers) Login(_ context.Context, email, password string) (string, error) {
	return f.loginFn(email, password)
}

func (f *fakeUsers) ChangePassword(_ context.Context, userID int64, oldPassword, newPassword string) error {
	return f.changePasswordFn(userID, oldPassword, newPassword)
}

func (f *fakeUsers) GetUserInfo(_ context.Context, userID int64) (*models.PublicUser, error) {
	return f.getUserInfoFn(userID)
}

func (f *fakeUsers) ListUsers(_ context.Context) ([]*models.PublicUser, error) {
	return f.listUsersFn()
}

// fakeMovies keeps movies and links in maps; errOverride, when set, is
// returned by every call.
type fakeMovies struct {
	movies      map[int64]*models.Movie
	links       map[int64]*models.MovieLink
	validTypes  map[int64]bool
	posterErr   error
	errOverride error
	lastInput   services.MovieInput
}

func newFakeMovies() *fakeMovies {
	return &fakeMovies{
		movies:     map[int64]*models.Movie{},
		links:      map[int64]*models.MovieLink{},
		validTypes: map[int64]bool{1: true},
	}
}

func (f *fakeMovies) ListMovies(context.Context) ([]*models.Movie, error) {
	if f.errOverride != nil {
		return nil, f.errOverride
	}
	list := make([]*models.Movie, 0, len(f.movies))
	for _, m := range f.movies {
		list = append(list, m)
	}
	return list, nil
}

func (f *fakeMovies) GetMovie(_ context.Context, id int64) (*models.Movie, error) {
	if f.errOverride != nil {
		return nil, f.errOverride
	}
	m, ok := f.movies[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return m, nil
}

func (f *fakeMovies) save(id int64, in services.MovieInput) (*models.Movie, error) {
	f.lastInput = in
	if f.errOverride != nil {
		return nil, f.errOverride
	}
	if !f.validTypes[in.TypeID] {
		return nil, common.ErrInvalidMovieType
	}
	m := &models.Movie{ID: id, Title: in.Title, TypeID: in.TypeID}
	f.movies[id] = m
	return m, nil
}

func (f *fakeMovies) CreateMovie(_ context.Context, in services.MovieInput) (*models.Movie, error) {
	return f.save(int64(len(f.movies)+1), in)
}

func (f *fakeMovies) UpdateMovie(_ context.Context, id int64, in services.MovieInput) (*models.Movie, error) {
	if _, ok := f.movies[id]; !ok {
		return nil, common.ErrorNotFound
	}
	return f.save(id, in)
}

func (f *fakeMovies) DeleteMovie(_ context.Context, id int64) error {
	if _, ok := f.movies[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.movies, id)
	return nil
}

func (f *fakeMovies) RequestPosterUpload(_ context.Context, movieID int64, contentType string) (*services.PosterUpload, error) {
	if f.posterErr != nil {
		return nil, f.posterErr
	}
	if _, ok := f.movies[movieID]; !ok {
		return nil, common.ErrorNotFound
	}
	return &services.PosterUpload{Key: "posters/1/x.jpg", UploadURL: "http://s3/upload", PosterURL: "http://s3/posters/1/x.jpg"}, nil
}

func (f *fakeMovies) ListMovieLinks(_ context.Context, movieID int64) ([]*models.MovieLink, error) {
	if _, ok := f.movies[movieID]; !ok {
		return nil, common.ErrorNotFound
	}
	var list []*models.MovieLink
	for _, l := range f.links {
		if l.MovieID == movieID {
			list = append(list, l)
		}
	}
	return list, nil
}

func (f *fakeMovies) CreateMovieLink(_ context.Context, movieID int64, url, label string) (*models.MovieLink, error) {
	if _, ok := f.movies[movieID]; !ok {
		return nil, common.ErrorNotFound
	}
	l := &models.MovieLink{ID: int64(len(f.links) + 1), MovieID: movieID, URL: url, Label: label}
	f.links[l.ID] = l
	return l, nil
}

func (f *fakeMovies) UpdateMovieLink(_ context.Context, id int64, url, label string) (*models.MovieLink, error) {
	l, ok := f.links[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	l.URL, l.Label = url, label
	return l, nil
}

func (f *fakeMovies) DeleteMovieLink(_ context.Context, id int64) error {
	if _, ok := f.links[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.links, id)
	return nil
}

type fakeMovieTypes struct {
	types  map[int64]*models.MovieType
	inUse  map[int64]bool
	nextID int64
}

func newFakeMovieTypes() *fakeMovieTypes {
	return &fakeMovieTypes{
		types:  map[int64]*models.MovieType{1: {ID: 1, Name: "Feature"}},
		inUse:  map[int64]bool{},
		nextID: 2,
	}
}

func (f *fakeMovieTypes) ListMovieTypes(context.Context) ([]*models.MovieType, error) {
	list := make([]*models.MovieType, 0, len(f.types))
	for _, t := range f.types {
		list = append(list, t)
	}
	return list, nil
}

func (f *fakeMovieTypes) GetMovieType(_ context.Context, id int64) (*models.MovieType, error) {
	t, ok := f.types[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

func (f *fakeMovieTypes) CreateMovieType(_ context.Context, name string) (*models.MovieType, error) {
	for _, t := range f.types {
		if t.Name == name {
			return nil, common.ErrorAlreadyExists
		}
	}
	t := &models.MovieType{ID: f.nextID, Name: name}
	f.types[t.ID] = t
	f.nextID++
	return t, nil
}

func (f *fakeMovieTypes) UpdateMovieType(_ context.Context, id int64, name string) (*models.MovieType, error) {
	t, ok := f.types[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	t.Name = name
	return t, nil
}

func (f *fakeMovieTypes) DeleteMovieType(_ context.Context, id int64) error {
	if _, ok := f.types[id]; !ok {
		return common.ErrorNotFound
	}
	if f.inUse[id] {
		return common.ErrorInUse
	}
	delete(f.types, id)
	return nil
}

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

type testAPI struct {
	router     *gin.Engine
	users      *fakeUsers
	movies     *fakeMovies
	movieTypes *fakeMovieTypes
	codec      *auth.Codec
	db         *fakePinger
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec, err := auth.NewCodec(testSecret)
	require.NoError(t, err)

	api := &testAPI{
		users:      &fakeUsers{},
		movies:     newFakeMovies(),
		movieTypes: newFakeMovieTypes(),
		codec:      codec,
		db:         &fakePinger{},
	}
	api.router = NewRouter(Deps{
		Users:      api.users,
		Movies:     api.movies,
		MovieTypes: api.movieTypes,
		Tokens:     codec,
		DB:         api.db,
		Logger:     logging.New(io.Discard, "debug"),
	})
	return api
}

func (a *testAPI) token(t *testing.T, subject string) string {
	t.Helper()
	tok, err := a.codec.Issue(subject, time.Hour)
	require.NoError(t, err)
	return tok
}

// do sends body as JSON; a non-empty token is sent as a bearer token.
func (a *testAPI) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req := newRequest(t, method, path, r)
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	return serve(t, a, req)
}

// dataMap decodes the envelope's data as a JSON object.
func dataMap(t *testing.T, env envelope) map[string]any {
	t.Helper()
	m, ok := env.Data.(map[string]any)
	require.True(t, ok, "data is %T", env.Data)
	return m
}

func newRequest(t *testing.T, method, path string, body io.Reader) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(t *testing.T, a *testAPI, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}
