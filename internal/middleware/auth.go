package middleware

import (
	"context"
	"errors"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"hospital/internal/auth"
	apperrors "hospital/internal/errors"
	"hospital/internal/logger"
	"hospital/internal/metrics"
	"hospital/internal/model"
)

const (
	claimsKey    = "claims"
	bearerPrefix = "Bearer "
)

var errNoBearer = errors.New("authorization header is not a bearer token")

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// UserFinder loads the user a token was issued to.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// Auth rejects requests without a valid bearer token for an existing user
// and attaches the caller's auth.Identity to the request context.
// The user is read once, and only after the token verified.
func Auth(tokens TokenVerifier, users UserFinder) echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		TokenLookupFuncs: []echomw.ValuesExtractor{bearerToken},
		ContextKey:       claimsKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := tokens.Verify(token)
			if err != nil {
				return nil, err
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			switch {
			case errors.Is(err, apperrors.ErrInvalidToken):
				return reject(c, metrics.ReasonInvalid, apperrors.ErrInvalidToken)
			case c.Request().Header.Get(echo.HeaderAuthorization) == "":
				return reject(c, metrics.ReasonMissing, apperrors.ErrMissingToken)
			default:
				return reject(c, metrics.ReasonMalformed, apperrors.ErrMalformedToken)
			}
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(loadIdentity(users, next))
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>". The
// scheme is matched exactly.
func bearerToken(c echo.Context) ([]string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, errNoBearer
	}
	token := header[len(bearerPrefix):]
	if token == "" {
		return nil, errNoBearer
	}
	return []string{token}, nil
}

func loadIdentity(users UserFinder, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(claimsKey).(*auth.Claims)
		if !ok {
			return reject(c, metrics.ReasonInvalid, apperrors.ErrInvalidToken)
		}

		req := c.Request()
		user, err := users.FindByID(req.Context(), claims.Subject)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return reject(c, metrics.ReasonUnknownSubject, apperrors.ErrUnknownSubject)
		}
		if err != nil {
			return pkgerrors.Wrap(err, "load token subject")
		}

		c.SetRequest(req.WithContext(auth.WithIdentity(req.Context(), auth.IdentityOf(user))))
		return next(c)
	}
}

func reject(c echo.Context, reason string, err error) error {
	metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()
	log := logger.Get()
	log.Debug().
		Str("reason", reason).
		Str("path", c.Request().URL.Path).
		Msg("request rejected by auth gate")
	return err
}
