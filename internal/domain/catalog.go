package domain

// CatalogContent is the catalog entry backing a line item, localized to Language.
type CatalogContent struct {
	Code        string
	Name        string
	DisplayName string
	URL         string
	ImageURL    string
	Brand       string
	Language    string
}
