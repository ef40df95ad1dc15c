package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/oklog/ulid/v2"
	"golang.org/x/text/language"

	"github.com/hanko-field/cartview/internal/platform/requestctx"
)

const requestIDHeader = "X-Request-Id"

// RequestIDMiddleware propagates a caller supplied request ID or assigns a new ULID.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if id == "" || len(id) > 80 {
			id = ulid.Make().String()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LanguageMatcher narrows requested languages to a supported one.
type LanguageMatcher interface {
	Match(want ...language.Tag) language.Tag
}

// LanguageMiddleware records the Accept-Language preference on the request context. A lang query
// parameter takes precedence over the header.
func LanguageMiddleware(matcher LanguageMatcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var preferred []language.Tag
			if raw := strings.TrimSpace(r.URL.Query().Get("lang")); raw != "" {
				if tag, err := language.Parse(raw); err == nil {
					preferred = append(preferred, tag)
				}
			}
			if tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language")); err == nil {
				preferred = append(preferred, tags...)
			}

			pref := requestctx.LanguagePreference{Preferred: preferred}
			if matcher != nil {
				pref.Current = matcher.Match(preferred...)
				w.Header().Set("Content-Language", pref.Current.String())
			}
			ctx := requestctx.WithLanguage(r.Context(), pref)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
