package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

var defaultCorsOptions = cors.Options{
	AllowedOrigins: []string{"*"},
	AllowedMethods: []string{http.MethodPost, http.MethodOptions},
	AllowedHeaders: []string{"Content-Type"},
}

// CorsMiddleware wraps handlers with the default CORS policy. Non-zero fields of
// opts replace the matching defaults.
func CorsMiddleware(opts *cors.Options) func(h http.Handler) http.Handler {
	mergedOpts := defaultCorsOptions

	if opts != nil {
		if len(opts.AllowedOrigins) > 0 {
			mergedOpts.AllowedOrigins = opts.AllowedOrigins
		}
		if opts.AllowOriginFunc != nil {
			mergedOpts.AllowOriginFunc = opts.AllowOriginFunc
		}
		if len(opts.AllowedMethods) > 0 {
			mergedOpts.AllowedMethods = opts.AllowedMethods
		}
		if len(opts.AllowedHeaders) > 0 {
			mergedOpts.AllowedHeaders = opts.AllowedHeaders
		}
		if len(opts.ExposedHeaders) > 0 {
			mergedOpts.ExposedHeaders = opts.ExposedHeaders
		}
		if opts.AllowCredentials != mergedOpts.AllowCredentials {
			mergedOpts.AllowCredentials = opts.AllowCredentials
		}
		if opts.MaxAge > 0 {
			mergedOpts.MaxAge = opts.MaxAge
		}
	}

	return cors.New(mergedOpts).Handler
}
