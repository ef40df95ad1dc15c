package services

import (
	"context"

	"golang.org/x/text/language"

	"github.com/hanko-field/cartview/internal/platform/requestctx"
)

// RequestLanguageResolver resolves languages from the preference stored on the request context,
// restricted to the supported languages.
type RequestLanguageResolver struct {
	supported []language.Tag
	matcher   language.Matcher
	fallback  language.Tag
}

// NewLanguageResolver builds a resolver. The first supported tag is the fallback; an empty list
// supports English only.
func NewLanguageResolver(supported ...language.Tag) *RequestLanguageResolver {
	if len(supported) == 0 {
		supported = []language.Tag{language.English}
	}
	tags := append([]language.Tag(nil), supported...)
	return &RequestLanguageResolver{
		supported: tags,
		matcher:   language.NewMatcher(tags),
		fallback:  tags[0],
	}
}

// PreferredCulture implements LanguageResolver.
func (r *RequestLanguageResolver) PreferredCulture(ctx context.Context) language.Tag {
	pref, ok := requestctx.Language(ctx)
	if !ok || len(pref.Preferred) == 0 {
		return r.fallback
	}
	return r.Match(pref.Preferred...)
}

// CurrentLanguage implements LanguageResolver.
func (r *RequestLanguageResolver) CurrentLanguage(ctx context.Context) language.Tag {
	pref, ok := requestctx.Language(ctx)
	if !ok || pref.Current == language.Und {
		return r.fallback
	}
	return pref.Current
}

// Match returns the supported tag that best serves the wanted tags, or the fallback.
func (r *RequestLanguageResolver) Match(want ...language.Tag) language.Tag {
	if len(want) == 0 {
		return r.fallback
	}
	_, index, confidence := r.matcher.Match(want...)
	if confidence == language.No || index < 0 || index >= len(r.supported) {
		return r.fallback
	}
	return r.supported[index]
}

// Supported returns a copy of the supported tags.
func (r *RequestLanguageResolver) Supported() []language.Tag {
	return append([]language.Tag(nil), r.supported...)
}
