package firestore

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/text/language"

	domain "github.com/hanko-field/cartview/internal/domain"
	pfirestore "github.com/hanko-field/cartview/internal/platform/firestore"
	"github.com/hanko-field/cartview/internal/repositories"
)

const defaultContentCollection = "catalogContent"

var _ repositories.CatalogContentRepository = (*CatalogContentRepository)(nil)

// CatalogContentRepository reads catalog content documents keyed by code, with per-language overrides.
type CatalogContentRepository struct {
	reader *pfirestore.Reader[contentDocument]
}

// NewCatalogContentRepository constructs a Firestore-backed content loader.
func NewCatalogContentRepository(provider *pfirestore.Provider, collection string) (*CatalogContentRepository, error) {
	if provider == nil {
		return nil, errors.New("catalog content repository requires firestore provider")
	}
	if strings.TrimSpace(collection) == "" {
		collection = defaultContentCollection
	}
	return &CatalogContentRepository{reader: pfirestore.NewReader[contentDocument](provider, collection, nil)}, nil
}

// LoadContentItems implements repositories.CatalogContentRepository.
func (r *CatalogContentRepository) LoadContentItems(ctx context.Context, codes []string, lang language.Tag) ([]domain.CatalogContent, error) {
	if r == nil || r.reader == nil {
		return nil, errors.New("catalog content repository not initialised")
	}
	docs, err := r.reader.GetAll(ctx, codes)
	if err != nil {
		return nil, err
	}
	contents := make([]domain.CatalogContent, 0, len(docs))
	for _, doc := range docs {
		contents = append(contents, doc.Data.localize(doc.ID, lang))
	}
	return contents, nil
}

type contentDocument struct {
	Name        string                       `firestore:"name"`
	DisplayName string                       `firestore:"displayName"`
	URL         string                       `firestore:"url"`
	ImageURL    string                       `firestore:"imageUrl"`
	Brand       string                       `firestore:"brand"`
	Language    string                       `firestore:"language"`
	Localized   map[string]localizedDocument `firestore:"localized"`
}

type localizedDocument struct {
	Name        string `firestore:"name"`
	DisplayName string `firestore:"displayName"`
	URL         string `firestore:"url"`
}

func (d contentDocument) localize(code string, lang language.Tag) domain.CatalogContent {
	content := domain.CatalogContent{
		Code:        code,
		Name:        d.Name,
		DisplayName: d.DisplayName,
		URL:         d.URL,
		ImageURL:    d.ImageURL,
		Brand:       d.Brand,
		Language:    d.Language,
	}
	key, override, ok := pickLocalized(d.Localized, lang)
	if !ok {
		return content
	}
	content.Language = key
	if override.Name != "" {
		content.Name = override.Name
	}
	if override.DisplayName != "" {
		content.DisplayName = override.DisplayName
	}
	if override.URL != "" {
		content.URL = override.URL
	}
	return content
}

// pickLocalized prefers an exact tag match and falls back to the base language.
func pickLocalized(localized map[string]localizedDocument, lang language.Tag) (string, localizedDocument, bool) {
	if len(localized) == 0 || lang == language.Und {
		return "", localizedDocument{}, false
	}
	if doc, ok := localized[lang.String()]; ok {
		return lang.String(), doc, true
	}
	base, _ := lang.Base()
	if doc, ok := localized[base.String()]; ok {
		return base.String(), doc, true
	}
	return "", localizedDocument{}, false
}
