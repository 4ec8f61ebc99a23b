package httpinterface

import (
	"errors"
	"net/http"

	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/application"
	"github.com/Ayushgangwar02/fantasy-Sports-app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusCode maps the error categories of the core to HTTP status codes.
func statusCode(err error) int {
	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound
	case domain.IsForbidden(err):
		return http.StatusForbidden
	case domain.IsInvalidTrade(err):
		return http.StatusBadRequest
	case domain.IsInvalidState(err):
		return http.StatusConflict
	case domain.IsRosterError(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, application.ErrMissingLeague),
		errors.Is(err, application.ErrInvalidTopic),
		errors.Is(err, application.ErrInvalidEndpoint):
		return http.StatusBadRequest
	default:
		return http.StatusServiceUnavailable
	}
}

func abortWithError(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, errorResponse{err.Error()})
}

func respondWithError(c *gin.Context, err error) {
	abortWithError(c, statusCode(err), err)
}
