package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/movieapi/internal/common"
	"github.com/gin-gonic/gin"
)

type movieTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

const msgMovieTypeNotFound = "Movie type not found"

func (h *handler) listMovieTypes(c *gin.Context) {
	types, err := h.movieTypes.ListMovieTypes(c.Request.Context())
	if err != nil {
		h.internalError(c, "list movie types failed", err)
		return
	}
	respond(c, http.StatusOK, "Movie types retrieved successfully", types)
}

func (h *handler) getMovieType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	t, err := h.movieTypes.GetMovieType(c.Request.Context(), id)
	if err != nil {
		h.movieTypeError(c, "get movie type failed", err)
		return
	}
	respond(c, http.StatusOK, "Movie type retrieved successfully", t)
}

func (h *handler) createMovieType(c *gin.Context) {
	var req movieTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, "Name is required", nil)
		return
	}

	t, err := h.movieTypes.CreateMovieType(c.Request.Context(), req.Name)
	if err != nil {
		h.movieTypeError(c, "create movie type failed", err)
		return
	}
	respond(c, http.StatusOK, "Movie type created successfully", t)
}

func (h *handler) updateMovieType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req movieTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, "Name is required", nil)
		return
	}

	t, err := h.movieTypes.UpdateMovieType(c.Request.Context(), id, req.Name)
	if err != nil {
		h.movieTypeError(c, "update movie type failed", err)
		return
	}
	respond(c, http.StatusOK, "Movie type updated successfully", t)
}

func (h *handler) deleteMovieType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.movieTypes.DeleteMovieType(c.Request.Context(), id); err != nil {
		h.movieTypeError(c, "delete movie type failed", err)
		return
	}
	respond(c, http.StatusOK, "Movie type deleted successfully", nil)
}

func (h *handler) movieTypeError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, common.ErrMissingField):
		respond(c, http.StatusBadRequest, "Name is required", nil)
	case errors.Is(err, common.ErrorAlreadyExists):
		respond(c, http.StatusBadRequest, "Movie type already exists", nil)
	case errors.Is(err, common.ErrorNotFound):
		respond(c, http.StatusNotFound, msgMovieTypeNotFound, nil)
	case errors.Is(err, common.ErrorInUse):
		respond(c, http.StatusConflict, "Movie type is in use", nil)
	default:
		h.internalError(c, msg, err)
	}
}
