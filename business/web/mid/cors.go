package mid

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/ardanlabs/ledger/foundation/web"
)

// Cors sets the Cross-Origin Resource Sharing headers for the ledger api.
// Origins is the allow list from configuration; "*" allows any origin. A
// request from an origin that isn't listed gets no CORS headers.
func Cors(origins ...string) web.Middleware {
	allowAll := slices.Contains(origins, "*")

	// This is the actual middleware function to be executed.
	m := func(handler web.Handler) web.Handler {

		// Create the handler that will be attached in the middleware chain.
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			origin := r.Header.Get("Origin")

			switch {
			case allowAll:
				w.Header().Set("Access-Control-Allow-Origin", "*")

			case origin != "" && slices.Contains(origins, origin):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")

			default:
				return handler(ctx, w, r)
			}

			// The ledger api only reads blocks and posts new ones.
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Origin, Accept, Content-Type, Content-Length, Accept-Encoding")
			w.Header().Set("Access-Control-Max-Age", "86400")

			// Call the next handler.
			return handler(ctx, w, r)
		}

		return h
	}

	return m
}

// ParseOrigins splits a comma separated origin list from configuration.
func ParseOrigins(list string) []string {
	var origins []string
	for _, origin := range strings.Split(list, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	return origins
}
