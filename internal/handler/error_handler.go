package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"

	apperrors "hospital/internal/errors"
)

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// NewHTTPErrorHandler returns the single echo.HTTPErrorHandler for the API.
//   - Unmatched routes render {"error":"Not Found"}.
//   - Known domain errors map to their status, message and code.
//   - Unexpected errors are logged and become a 500. Outside production the
//     body carries the error text and, when available, its stack trace.
func NewHTTPErrorHandler(log zerolog.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolveError(err, c, log, production)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

func resolveError(err error, c echo.Context, log zerolog.Logger, production bool) (int, apperrors.ErrorResponse) {
	if errors.Is(err, echo.ErrNotFound) || errors.Is(err, echo.ErrMethodNotAllowed) {
		return http.StatusNotFound, apperrors.ErrorResponse{Error: "Not Found"}
	}

	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		if !production {
			log.Debug().
				Err(ve.Err).
				Str("path", c.Request().URL.Path).
				Msg("validation failed")
		}
		return http.StatusBadRequest, apperrors.MapErrorToHTTP(ve).ToErrorResponse()
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, apperrors.ErrorResponse{Error: fmt.Sprint(he.Message)}
	}

	mapped := apperrors.MapErrorToHTTP(err)
	if mapped.StatusCode != http.StatusInternalServerError {
		return mapped.StatusCode, mapped.ToErrorResponse()
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	body := mapped.ToErrorResponse()
	if production {
		return mapped.StatusCode, body
	}

	body.Error = err.Error()
	var st stackTracer
	if errors.As(err, &st) {
		body.Stack = fmt.Sprintf("%+v", st.StackTrace())
	}
	return mapped.StatusCode, body
}
