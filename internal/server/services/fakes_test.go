package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/movieapi/internal/common"
	"github.com/dmitrijs2005/movieapi/internal/dbx"
	"github.com/dmitrijs2005/movieapi/internal/server/models"
	"github.com/dmitrijs2005/movieapi/internal/server/repositories/movielinks"
	"github.com/dmitrijs2005/movieapi/internal/server/repositories/movies"
	"github.com/dmitrijs2005/movieapi/internal/server/repositories/movietypes"
	"github.com/dmitrijs2005/movieapi/internal/server/repositories/users"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// --- users ---

type fakeUsersRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.User

	getErr    error
	createErr error
	updateErr error
	listErr   error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[int64]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	f.nextID++
	cp := *u
	cp.ID = f.nextID
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	f.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeUsersRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	u, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*models.User, 0, len(f.byID))
	for _, u := range f.byID {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- movie types ---

type fakeTypesRepo struct {
	nextID int64
	byID   map[int64]*models.MovieType
	inUse  map[int64]bool
	err    error
}

func newFakeTypesRepo() *fakeTypesRepo {
	return &fakeTypesRepo{byID: map[int64]*models.MovieType{}, inUse: map[int64]bool{}}
}

func (f *fakeTypesRepo) nameTaken(name string, except int64) bool {
	for id, t := range f.byID {
		if t.Name == name && id != except {
			return true
		}
	}
	return false
}

func (f *fakeTypesRepo) Create(ctx context.Context, t *models.MovieType) (*models.MovieType, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.nameTaken(t.Name, 0) {
		return nil, common.ErrorAlreadyExists
	}
	f.nextID++
	cp := *t
	cp.ID = f.nextID
	f.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeTypesRepo) GetByID(ctx context.Context, id int64) (*models.MovieType, error) {
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTypesRepo) List(ctx context.Context) ([]*models.MovieType, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*models.MovieType, 0, len(f.byID))
	for _, t := range f.byID {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeTypesRepo) Update(ctx context.Context, t *models.MovieType) (*models.MovieType, error) {
	if f.err != nil {
		return nil, f.err
	}
	existing, ok := f.byID[t.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if f.nameTaken(t.Name, t.ID) {
		return nil, common.ErrorAlreadyExists
	}
	existing.Name = t.Name
	cp := *existing
	return &cp, nil
}

func (f *fakeTypesRepo) Delete(ctx context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	if f.inUse[id] {
		return common.ErrorInUse
	}
	delete(f.byID, id)
	return nil
}

// --- movies ---

type fakeMoviesRepo struct {
	nextID int64
	byID   map[int64]*models.Movie
	types  *fakeTypesRepo
	err    error
}

func newFakeMoviesRepo(types *fakeTypesRepo) *fakeMoviesRepo {
	return &fakeMoviesRepo{byID: map[int64]*models.Movie{}, types: types}
}

func (f *fakeMoviesRepo) withType(m *models.Movie) *models.Movie {
	cp := *m
	if t, ok := f.types.byID[m.TypeID]; ok {
		tc := *t
		cp.Type = &tc
	}
	return &cp
}

func (f *fakeMoviesRepo) Create(ctx context.Context, m *models.Movie) (*models.Movie, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.types.byID[m.TypeID]; !ok {
		return nil, common.ErrorInvalidReference
	}
	f.nextID++
	m.ID = f.nextID
	cp := *m
	f.byID[m.ID] = &cp
	f.types.inUse[m.TypeID] = true
	return m, nil
}

func (f *fakeMoviesRepo) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	if f.err != nil {
		return nil, f.err
	}
	m, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return f.withType(m), nil
}

func (f *fakeMoviesRepo) List(ctx context.Context) ([]*models.Movie, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*models.Movie, 0, len(f.byID))
	for _, m := range f.byID {
		out = append(out, f.withType(m))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeMoviesRepo) Update(ctx context.Context, m *models.Movie) (*models.Movie, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.byID[m.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	cp := *m
	f.byID[m.ID] = &cp
	return m, nil
}

func (f *fakeMoviesRepo) SetPosterURL(ctx context.Context, id int64, url string) error {
	if f.err != nil {
		return f.err
	}
	m, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	m.PosterURL = url
	return nil
}

func (f *fakeMoviesRepo) Delete(ctx context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

// --- movie links ---

type fakeLinksRepo struct {
	nextID int64
	byID   map[int64]*models.MovieLink
	movies *fakeMoviesRepo
	err    error
}

func newFakeLinksRepo(m *fakeMoviesRepo) *fakeLinksRepo {
	return &fakeLinksRepo{byID: map[int64]*models.MovieLink{}, movies: m}
}

func (f *fakeLinksRepo) Create(ctx context.Context, l *models.MovieLink) (*models.MovieLink, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.movies.byID[l.MovieID]; !ok {
		return nil, common.ErrorInvalidReference
	}
	f.nextID++
	l.ID = f.nextID
	cp := *l
	f.byID[l.ID] = &cp
	return l, nil
}

func (f *fakeLinksRepo) GetByID(ctx context.Context, id int64) (*models.MovieLink, error) {
	l, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLinksRepo) ListByMovie(ctx context.Context, movieID int64) ([]*models.MovieLink, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*models.MovieLink, 0)
	for _, l := range f.byID {
		if l.MovieID == movieID {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeLinksRepo) Update(ctx context.Context, l *models.MovieLink) (*models.MovieLink, error) {
	existing, ok := f.byID[l.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	existing.URL, existing.Label = l.URL, l.Label
	cp := *existing
	return &cp, nil
}

func (f *fakeLinksRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

// --- manager ---

type fakeRepoManager struct {
	users  *fakeUsersRepo
	types  *fakeTypesRepo
	movies *fakeMoviesRepo
	links  *fakeLinksRepo
}

func newFakeRepoManager() *fakeRepoManager {
	types := newFakeTypesRepo()
	mv := newFakeMoviesRepo(types)
	return &fakeRepoManager{
		users:  newFakeUsersRepo(),
		types:  types,
		movies: mv,
		links:  newFakeLinksRepo(mv),
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error  { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository           { return m.users }
func (m *fakeRepoManager) Movies(db dbx.DBTX) movies.Repository         { return m.movies }
func (m *fakeRepoManager) MovieTypes(db dbx.DBTX) movietypes.Repository { return m.types }
func (m *fakeRepoManager) MovieLinks(db dbx.DBTX) movielinks.Repository { return m.links }
