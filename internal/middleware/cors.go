package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// CORS allows the configured origins. Outside production any localhost
// origin is accepted as well. Other origins get no CORS headers.
func CORS(allowed []string, production bool) echo.MiddlewareFunc {
	return echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOriginFunc: OriginPolicy(allowed, production),
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType,
			echo.HeaderAccept, echo.HeaderAuthorization,
		},
		AllowCredentials: true,
	})
}

// OriginPolicy returns the origin predicate used by CORS.
func OriginPolicy(allowed []string, production bool) func(origin string) (bool, error) {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}

	return func(origin string) (bool, error) {
		if _, ok := set[origin]; ok {
			return true, nil
		}
		if production {
			return false, nil
		}
		return isLocalOrigin(origin), nil
	}
}

func isLocalOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1":
		return true
	}
	return false
}
