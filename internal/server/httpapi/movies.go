package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/movieapi/internal/common"
	"github.com/dmitrijs2005/movieapi/internal/server/services"
	"github.com/gin-gonic/gin"
)

type movieRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	ReleaseDate string   `json:"releaseDate" binding:"required"`
	Rating      *float64 `json:"rating" binding:"omitempty,min=0,max=10"`
	Genre       string   `json:"genre"`
	Director    string   `json:"director"`
	Duration    *int32   `json:"duration" binding:"omitempty,min=1"`
	Language    string   `json:"language"`
	Country     string   `json:"country"`
	PosterURL   string   `json:"posterUrl" binding:"omitempty,url"`
	TypeID      int64    `json:"typeId" binding:"required"`
}

func (r movieRequest) input() services.MovieInput {
	return services.MovieInput{
		Title:       r.Title,
		Description: r.Description,
		ReleaseDate: r.ReleaseDate,
		Rating:      r.Rating,
		Genre:       r.Genre,
		Director:    r.Director,
		Duration:    r.Duration,
		Language:    r.Language,
		Country:     r.Country,
		PosterURL:   r.PosterURL,
		TypeID:      r.TypeID,
	}
}

type posterRequest struct {
	ContentType string `json:"contentType"`
}

type linkRequest struct {
	URL   string `json:"url" binding:"required,url"`
	Label string `json:"label"`
}

const (
	msgMovieRequired = "Title, release date, and type are required"
	msgMovieNotFound = "Movie not found"
	msgLinkNotFound  = "Movie link not found"
	msgLinkURL       = "A valid URL is required"
)

func (h *handler) listMovies(c *gin.Context) {
	movies, err := h.movies.ListMovies(c.Request.Context())
	if err != nil {
		h.internalError(c, "list movies failed", err)
		return
	}
	respond(c, http.StatusOK, "Movies retrieved successfully", movies)
}

func (h *handler) getMovie(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	m, err := h.movies.GetMovie(c.Request.Context(), id)
	if err != nil {
		h.movieError(c, "get movie failed", err)
		return
	}
	respond(c, http.StatusOK, "Movie retrieved successfully", m)
}

func (h *handler) createMovie(c *gin.Context) {
	var req movieRequest
	if !h.bindMovie(c, &req) {
		return
	}

	m, err := h.movies.CreateMovie(c.Request.Context(), req.input())
	if err != nil {
		h.movieError(c, "create movie failed", err)
		return
	}
	respond(c, http.StatusOK, "Movie created successfully", m)
}

func (h *handler) updateMovie(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req movieRequest
	if !h.bindMovie(c, &req) {
		return
	}

	m, err := h.movies.UpdateMovie(c.Request.Context(), id, req.input())
	if err != nil {
		h.movieError(c, "update movie failed", err)
		return
	}
	respond(c, http.StatusOK, "Movie updated successfully", m)
}

func (h *handler) deleteMovie(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.movies.DeleteMovie(c.Request.Context(), id); err != nil {
		h.movieError(c, "delete movie failed", err)
		return
	}
	respond(c, http.StatusOK, "Movie deleted successfully", nil)
}

func (h *handler) requestPosterUpload(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req posterRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond(c, http.StatusBadRequest, "Invalid request body", nil)
			return
		}
	}

	upload, err := h.movies.RequestPosterUpload(c.Request.Context(), id, req.ContentType)
	switch {
	case err == nil:
		respond(c, http.StatusOK, "Poster upload URL created", upload)
	case errors.Is(err, common.ErrStorageDisabled):
		respond(c, http.StatusServiceUnavailable, "Poster storage is not configured", nil)
	case errors.Is(err, common.ErrUnsupportedMedia):
		respond(c, http.StatusUnsupportedMediaType, "Poster must be image/jpeg, image/png or image/webp", nil)
	default:
		h.movieError(c, "poster upload failed", err)
	}
}

func (h *handler) listMovieLinks(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	links, err := h.movies.ListMovieLinks(c.Request.Context(), id)
	if err != nil {
		h.movieError(c, "list movie links failed", err)
		return
	}
	respond(c, http.StatusOK, "Movie links retrieved successfully", links)
}

func (h *handler) createMovieLink(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug(c.Request.Context(), "invalid movie link request", "fields", invalidFields(err))
		respond(c, http.StatusBadRequest, msgLinkURL, nil)
		return
	}

	l, err := h.movies.CreateMovieLink(c.Request.Context(), id, req.URL, req.Label)
	switch {
	case err == nil:
		respond(c, http.StatusOK, "Movie link created successfully", l)
	case errors.Is(err, common.ErrMissingField):
		respond(c, http.StatusBadRequest, msgLinkURL, nil)
	default:
		h.movieError(c, "create movie link failed", err)
	}
}

func (h *handler) updateMovieLink(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug(c.Request.Context(), "invalid movie link request", "fields", invalidFields(err))
		respond(c, http.StatusBadRequest, msgLinkURL, nil)
		return
	}

	l, err := h.movies.UpdateMovieLink(c.Request.Context(), id, req.URL, req.Label)
	switch {
	case err == nil:
		respond(c, http.StatusOK, "Movie link updated successfully", l)
	case errors.Is(err, common.ErrMissingField):
		respond(c, http.StatusBadRequest, msgLinkURL, nil)
	case errors.Is(err, common.ErrorNotFound):
		respond(c, http.StatusNotFound, msgLinkNotFound, nil)
	default:
		h.internalError(c, "update movie link failed", err)
	}
}

func (h *handler) deleteMovieLink(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	err := h.movies.DeleteMovieLink(c.Request.Context(), id)
	switch {
	case err == nil:
		respond(c, http.StatusOK, "Movie link deleted successfully", nil)
	case errors.Is(err, common.ErrorNotFound):
		respond(c, http.StatusNotFound, msgLinkNotFound, nil)
	default:
		h.internalError(c, "delete movie link failed", err)
	}
}

func (h *handler) bindMovie(c *gin.Context, req *movieRequest) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	h.logger.Debug(c.Request.Context(), "invalid movie request", "fields", invalidFields(err))
	if missingRequired(err) {
		respond(c, http.StatusBadRequest, msgMovieRequired, nil)
	} else {
		respond(c, http.StatusBadRequest, "Invalid movie data", nil)
	}
	return false
}

// movieError maps the movie service errors shared by several routes.
func (h *handler) movieError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, common.ErrMissingField):
		respond(c, http.StatusBadRequest, msgMovieRequired, nil)
	case errors.Is(err, common.ErrInvalidReleaseDate):
		respond(c, http.StatusBadRequest, "Invalid release date", nil)
	case errors.Is(err, common.ErrInvalidMovieType):
		respond(c, http.StatusBadRequest, "Invalid movie type", nil)
	case errors.Is(err, common.ErrorNotFound):
		respond(c, http.StatusNotFound, msgMovieNotFound, nil)
	default:
		h.internalError(c, msg, err)
	}
}

func (h *handler) internalError(c *gin.Context, msg string, err error) {
	h.logger.Error(c.Request.Context(), msg, "error", err.Error())
	respond(c, http.StatusInternalServerError, msgInternal, nil)
}
