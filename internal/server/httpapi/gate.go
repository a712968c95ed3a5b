package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/movieapi/internal/common"
	"github.com/dmitrijs2005/movieapi/internal/server/auth"
	"github.com/gin-gonic/gin"
)

const (
	msgNoToken   = "No token provided"
	msgForbidden = "Failed to authenticate token"
)

// authRequired admits only requests with a valid bearer token and puts the
// token subject into the request context. Why a token was rejected is
// logged, never returned.
func (h *handler) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := h.gate.Admit(c.GetHeader(common.AuthorizationHeaderName))
		if err != nil {
			h.logger.Debug(c.Request.Context(), "token rejected", "reason", err.Error())
			if errors.Is(err, common.ErrNoToken) {
				abort(c, http.StatusUnauthorized, msgNoToken)
				return
			}
			abort(c, http.StatusForbidden, msgForbidden)
			return
		}

		c.Request = c.Request.WithContext(auth.WithSubject(c.Request.Context(), claims.Subject))
		c.Next()
	}
}

// currentUserID returns the numeric user id behind the admitted token. A
// subject that is not an id means the token was not issued for a user, which
// is answered like any other bad token.
func currentUserID(c *gin.Context) (int64, bool) {
	subject, ok := auth.SubjectFromContext(c.Request.Context())
	if !ok {
		abort(c, http.StatusForbidden, msgForbidden)
		return 0, false
	}

	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil || id <= 0 {
		abort(c, http.StatusForbidden, msgForbidden)
		return 0, false
	}
	return id, true
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abort(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}
