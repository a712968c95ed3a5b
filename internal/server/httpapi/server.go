// Package httpapi exposes the services over a JSON HTTP API built on gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/movieapi/internal/logging"
	"github.com/dmitrijs2005/movieapi/internal/server/auth"
	"github.com/dmitrijs2005/movieapi/internal/server/models"
	"github.com/dmitrijs2005/movieapi/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// UserService is satisfied by *services.UserService.
type UserService interface {
	Register(ctx context.Context, email, name, password string) (*models.PublicUser, error)
	Login(ctx context.Context, email, password string) (string, error)
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error
	GetUserInfo(ctx context.Context, userID int64) (*models.PublicUser, error)
	ListUsers(ctx context.Context) ([]*models.PublicUser, error)
}

// MovieService is satisfied by *services.MovieService.
type MovieService interface {
	ListMovies(ctx context.Context) ([]*models.Movie, error)
	GetMovie(ctx context.Context, id int64) (*models.Movie, error)
	CreateMovie(ctx context.Context, in services.MovieInput) (*models.Movie, error)
	UpdateMovie(ctx context.Context, id int64, in services.MovieInput) (*models.Movie, error)
	DeleteMovie(ctx context.Context, id int64) error
	RequestPosterUpload(ctx context.Context, movieID int64, contentType string) (*services.PosterUpload, error)
	ListMovieLinks(ctx context.Context, movieID int64) ([]*models.MovieLink, error)
	CreateMovieLink(ctx context.Context, movieID int64, url, label string) (*models.MovieLink, error)
	UpdateMovieLink(ctx context.Context, id int64, url, label string) (*models.MovieLink, error)
	DeleteMovieLink(ctx context.Context, id int64) error
}

// MovieTypeService is satisfied by *services.MovieTypeService.
type MovieTypeService interface {
	ListMovieTypes(ctx context.Context) ([]*models.MovieType, error)
	GetMovieType(ctx context.Context, id int64) (*models.MovieType, error)
	CreateMovieType(ctx context.Context, name string) (*models.MovieType, error)
	UpdateMovieType(ctx context.Context, id int64, name string) (*models.MovieType, error)
	DeleteMovieType(ctx context.Context, id int64) error
}

// Pinger reports database reachability; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the collaborators of the router. Registry defaults to a fresh
// one from NewRegistry.
type Deps struct {
	Users      UserService
	Movies     MovieService
	MovieTypes MovieTypeService
	Tokens     auth.TokenVerifier
	DB         Pinger
	Logger     logging.Logger
	Registry   *prometheus.Registry
}

type handler struct {
	users      UserService
	movies     MovieService
	movieTypes MovieTypeService
	gate       *auth.Gate
	db         Pinger
	logger     logging.Logger
	metrics    *Metrics
}

// NewRouter builds the gin engine with every route and middleware.
func NewRouter(d Deps) *gin.Engine {
	registry := d.Registry
	if registry == nil {
		registry = NewRegistry()
	}

	h := &handler{
		users:      d.Users,
		movies:     d.Movies,
		movieTypes: d.MovieTypes,
		gate:       auth.NewGate(d.Tokens),
		db:         d.DB,
		logger:     d.Logger.With("module", "http_server"),
		metrics:    NewMetrics(registry),
	}

	r := gin.New()
	r.Use(requestID(), requestLogger(h.logger), recovery(h.logger), h.metrics.Middleware())

	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.POST("/register", h.register)
	api.POST("/login", h.login)

	api.GET("/movies", h.listMovies)
	api.GET("/movies/:id", h.getMovie)
	api.GET("/movies/:id/links", h.listMovieLinks)
	api.GET("/movie-types", h.listMovieTypes)
	api.GET("/movie-types/:id", h.getMovieType)

	gated := api.Group("", h.authRequired())
	gated.POST("/logout", h.logout)
	gated.GET("/users", h.listUsers)
	gated.GET("/user-info", h.userInfo)
	gated.POST("/change-password", h.changePassword)

	gated.POST("/movies", h.createMovie)
	gated.PUT("/movies/:id", h.updateMovie)
	gated.DELETE("/movies/:id", h.deleteMovie)
	gated.POST("/movies/:id/poster", h.requestPosterUpload)
	gated.POST("/movies/:id/links", h.createMovieLink)
	gated.PUT("/movie-links/:id", h.updateMovieLink)
	gated.DELETE("/movie-links/:id", h.deleteMovieLink)

	gated.POST("/movie-types", h.createMovieType)
	gated.PUT("/movie-types/:id", h.updateMovieType)
	gated.DELETE("/movie-types/:id", h.deleteMovieType)

	return r
}

func (h *handler) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn(ctx, "health check failed", "error", err.Error())
		respond(c, http.StatusServiceUnavailable, "Database unavailable", nil)
		return
	}
	respond(c, http.StatusOK, "OK", nil)
}

// Server runs the API until its context is cancelled.
type Server struct {
	address string
	handler http.Handler
	logger  logging.Logger
}

func NewServer(address string, l logging.Logger, h http.Handler) *Server {
	return &Server{
		address: address,
		handler: h,
		logger:  l.With("module", "http_server"),
	}
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "HTTP server shutdown failed", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
