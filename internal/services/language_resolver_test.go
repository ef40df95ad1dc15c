package services

import (
	"context"
	"testing"

	"golang.org/x/text/language"

	"github.com/hanko-field/cartview/internal/platform/requestctx"
)

func TestLanguageResolverFallsBackWithoutPreference(t *testing.T) {
	resolver := NewLanguageResolver(language.English, language.Swedish)
	ctx := context.Background()
	if got := resolver.PreferredCulture(ctx); got != language.English {
		t.Fatalf("expected english fallback, got %s", got)
	}
	if got := resolver.CurrentLanguage(ctx); got != language.English {
		t.Fatalf("expected english fallback, got %s", got)
	}
}

func TestLanguageResolverMatchesPreferredCulture(t *testing.T) {
	resolver := NewLanguageResolver(language.English, language.Swedish)
	ctx := requestctx.WithLanguage(context.Background(), requestctx.LanguagePreference{
		Preferred: []language.Tag{language.MustParse("sv-FI"), language.English},
		Current:   language.Swedish,
	})
	if got := resolver.PreferredCulture(ctx); got != language.Swedish {
		t.Fatalf("expected swedish, got %s", got)
	}
	if got := resolver.CurrentLanguage(ctx); got != language.Swedish {
		t.Fatalf("expected current swedish, got %s", got)
	}
}

func TestLanguageResolverUnsupportedPreference(t *testing.T) {
	resolver := NewLanguageResolver(language.English)
	if got := resolver.Match(language.Japanese); got != language.English {
		t.Fatalf("expected fallback for unsupported language, got %s", got)
	}
	if got := NewLanguageResolver().Supported(); len(got) != 1 || got[0] != language.English {
		t.Fatalf("expected english-only default, got %v", got)
	}
}
