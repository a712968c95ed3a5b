package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/movieapi/internal/client/api"
	"github.com/dmitrijs2005/movieapi/internal/client/config"
)

// APIClient is the part of *api.Client the commands use.
type APIClient interface {
	Register(ctx context.Context, email, name, password string) (*api.User, error)
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	UserInfo(ctx context.Context) (*api.User, error)
	Users(ctx context.Context) ([]api.User, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	Movies(ctx context.Context) ([]api.Movie, error)
	MovieTypes(ctx context.Context) ([]api.MovieType, error)
	CreateMovieType(ctx context.Context, name string) (*api.MovieType, error)
	UploadPoster(ctx context.Context, movieID int64, contentType string, data []byte) (string, error)
	Token() string
}

type App struct {
	config *config.Config
	client APIClient
	reader *bufio.Reader
	out    io.Writer
	email  string
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		client: api.NewClient(c.ServerURL, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) isLoggedIn() bool {
	return a.client.Token() != ""
}

func (a *App) status() string {
	if a.email == "" {
		return ""
	}
	return "(" + a.email + ")"
}

// Run starts the REPL on stdin and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	printlnFn("movieapi CLI, server " + a.config.ServerURL + " (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(a.reader))
}
