package domain

import (
	"time"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	sharedQuery "github.com/davicafu/orgref/internal/shared/platform/query"
)

const CountryDefaultSort = "name"

// Country es un país del catálogo geográfico. Las relaciones son ids opcionales.
type Country struct {
	sharedDomain.Record
	Name          string
	NativeName    *string
	ISO2          string
	ISO3          string
	NumericCode   *string
	PhoneCode     *string
	CurrencyCode  *string
	Domain        *string
	FlagEmoji     *string
	RegionID      *int64
	SubRegionID   *int64
	LanguageID    *int64
	TimezoneID    *int64
	CapitalCityID *int64
	Enabled       bool
	Active        bool
}

func (c *Country) SetActive(active bool, actor *string, at time.Time) {
	c.Active = active
	c.Touch(actor, at)
}

// Clone copia superficial: los punteros se sustituyen, nunca se modifican en sitio.
func (c *Country) Clone() *Country {
	cp := *c
	return &cp
}

var CountryFields = sharedQuery.NewRegistry(append(sharedQuery.RecordFields[*Country](),
	sharedQuery.Field[*Country]{Name: "name", Column: "name", Kind: sharedQuery.KindString, Get: func(c *Country) any { return c.Name }},
	sharedQuery.Field[*Country]{Name: "nativeName", Column: "native_name", Kind: sharedQuery.KindString, Get: func(c *Country) any { return sharedQuery.Deref(c.NativeName) }},
	sharedQuery.Field[*Country]{Name: "iso2", Column: "iso2", Kind: sharedQuery.KindString, Get: func(c *Country) any { return c.ISO2 }},
	sharedQuery.Field[*Country]{Name: "iso3", Column: "iso3", Kind: sharedQuery.KindString, Get: func(c *Country) any { return c.ISO3 }},
	sharedQuery.Field[*Country]{Name: "numericCode", Column: "numeric_code", Kind: sharedQuery.KindString, Get: func(c *Country) any { return sharedQuery.Deref(c.NumericCode) }},
	sharedQuery.Field[*Country]{Name: "phoneCode", Column: "phone_code", Kind: sharedQuery.KindString, Get: func(c *Country) any { return sharedQuery.Deref(c.PhoneCode) }},
	sharedQuery.Field[*Country]{Name: "currencyCode", Column: "currency_code", Kind: sharedQuery.KindString, Get: func(c *Country) any { return sharedQuery.Deref(c.CurrencyCode) }},
	sharedQuery.Field[*Country]{Name: "domain", Column: "domain", Kind: sharedQuery.KindString, Get: func(c *Country) any { return sharedQuery.Deref(c.Domain) }},
	sharedQuery.Field[*Country]{Name: "flagEmoji", Column: "flag_emoji", Kind: sharedQuery.KindString, Get: func(c *Country) any { return sharedQuery.Deref(c.FlagEmoji) }},
	sharedQuery.Field[*Country]{Name: "regionId", Column: "region_id", Kind: sharedQuery.KindInt, Get: func(c *Country) any { return sharedQuery.Deref(c.RegionID) }},
	sharedQuery.Field[*Country]{Name: "subRegionId", Column: "sub_region_id", Kind: sharedQuery.KindInt, Get: func(c *Country) any { return sharedQuery.Deref(c.SubRegionID) }},
	sharedQuery.Field[*Country]{Name: "languageId", Column: "language_id", Kind: sharedQuery.KindInt, Get: func(c *Country) any { return sharedQuery.Deref(c.LanguageID) }},
	sharedQuery.Field[*Country]{Name: "timezoneId", Column: "timezone_id", Kind: sharedQuery.KindInt, Get: func(c *Country) any { return sharedQuery.Deref(c.TimezoneID) }},
	sharedQuery.Field[*Country]{Name: "capitalCityId", Column: "capital_city_id", Kind: sharedQuery.KindInt, Get: func(c *Country) any { return sharedQuery.Deref(c.CapitalCityID) }},
	sharedQuery.Field[*Country]{Name: "enabled", Column: "enabled", Kind: sharedQuery.KindBool, Get: func(c *Country) any { return c.Enabled }},
	sharedQuery.Field[*Country]{Name: "active", Column: "active", Kind: sharedQuery.KindBool, Get: func(c *Country) any { return c.Active }},
)...)

// CountryFilters son los filtros propios de la búsqueda de países.
type CountryFilters struct {
	Name        *string `json:"name"`
	ISO2        *string `json:"iso2"`
	ISO3        *string `json:"iso3"`
	Active      *bool   `json:"active"`
	Enabled     *bool   `json:"enabled"`
	RegionID    *int64  `json:"regionId"`
	SubRegionID *int64  `json:"subRegionId"`
}

func (f CountryFilters) Predicates(fs sharedQuery.Fields) []sharedDomain.Criteria {
	return []sharedDomain.Criteria{
		sharedQuery.OptionalText(f.Name, func(v string) sharedDomain.Criteria { return sharedQuery.ContainsFold(fs, "name", v) }),
		sharedQuery.OptionalText(f.ISO2, func(v string) sharedDomain.Criteria { return sharedQuery.EqualFold(fs, "iso2", v) }),
		sharedQuery.OptionalText(f.ISO3, func(v string) sharedDomain.Criteria { return sharedQuery.EqualFold(fs, "iso3", v) }),
		sharedQuery.Optional(f.Active, func(v bool) sharedDomain.Criteria { return sharedQuery.Equal(fs, "active", v) }),
		sharedQuery.Optional(f.Enabled, func(v bool) sharedDomain.Criteria { return sharedQuery.Equal(fs, "enabled", v) }),
		sharedQuery.Optional(f.RegionID, func(v int64) sharedDomain.Criteria { return sharedQuery.Equal(fs, "regionId", v) }),
		sharedQuery.Optional(f.SubRegionID, func(v int64) sharedDomain.Criteria { return sharedQuery.Equal(fs, "subRegionId", v) }),
	}
}
