package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/infernalwolves/clan-dashboard/internal/api/handler"
	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp := resolveError(err, log, c)
		code := resp.code
		body := handler.ErrorResponse{Error: resp.msg, Retryable: resp.retryable}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

type resolved struct {
	code      int
	msg       string
	retryable bool
}

func resolveError(err error, log zerolog.Logger, c echo.Context) resolved {
	// Echo's own errors (bind failures, 404 from router, auth middleware, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return resolved{code: he.Code, msg: fmt.Sprintf("%v", he.Message)}
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return resolved{code: http.StatusBadRequest, msg: detail(err, domain.ErrValidation)}
	case errors.Is(err, domain.ErrNotFound):
		return resolved{code: http.StatusNotFound, msg: detail(err, domain.ErrNotFound)}
	case errors.Is(err, domain.ErrRestrictedRole):
		return resolved{code: http.StatusUnprocessableEntity, msg: err.Error()}
	case errors.Is(err, domain.ErrAlreadyOnAnotherTeam):
		return resolved{code: http.StatusConflict, msg: err.Error()}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return resolved{code: http.StatusUnauthorized, msg: "invalid credentials"}
	case errors.Is(err, domain.ErrForbidden):
		return resolved{code: http.StatusForbidden, msg: "access forbidden"}
	case errors.Is(err, domain.ErrStatsAPI), errors.Is(err, domain.ErrTransport):
		log.Warn().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("upstream failure")
		return resolved{code: http.StatusBadGateway, msg: "statistics service unavailable, try again", retryable: true}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return resolved{code: http.StatusInternalServerError, msg: "internal server error"}
}

// detail strips wrapping prefixes so the client sees "<sentinel>: <reason>".
func detail(err, sentinel error) string {
	msg := err.Error()
	if i := strings.Index(msg, sentinel.Error()); i > 0 {
		return msg[i:]
	}
	return msg
}
