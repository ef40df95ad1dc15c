package services

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/hanko-field/cartview/internal/domain"
)

// AddressBook converts order addresses into display models. Language names the country
// when a call passes no language of its own.
type AddressBook struct {
	Language language.Tag
}

// ToAddressModel implements AddressConverter.
func (b AddressBook) ToAddressModel(addr *domain.OrderAddress, lang language.Tag) domain.AddressModel {
	if addr == nil {
		return domain.AddressModel{}
	}
	countryCode := strings.ToUpper(strings.TrimSpace(addr.CountryCode))
	countryName := strings.TrimSpace(addr.CountryName)
	if countryName == "" {
		countryName = b.countryName(countryCode, lang)
	}
	return domain.AddressModel{
		AddressID:   addr.ID,
		FirstName:   strings.TrimSpace(addr.FirstName),
		LastName:    strings.TrimSpace(addr.LastName),
		Line1:       strings.TrimSpace(addr.Line1),
		Line2:       trimmedPtr(addr.Line2),
		City:        strings.TrimSpace(addr.City),
		PostalCode:  strings.TrimSpace(addr.PostalCode),
		Region:      trimmedPtr(addr.Region),
		CountryCode: countryCode,
		CountryName: countryName,
		Email:       trimmedPtr(addr.Email),
		Phone:       trimmedPtr(addr.Phone),
	}
}

func (b AddressBook) countryName(code string, lang language.Tag) string {
	if code == "" {
		return ""
	}
	region, err := language.ParseRegion(code)
	if err != nil {
		return ""
	}
	if lang == language.Und {
		lang = b.Language
	}
	namer := display.Regions(lang)
	if lang == language.Und || namer == nil {
		namer = display.English.Regions()
	}
	return namer.Name(region)
}

func trimmedPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
