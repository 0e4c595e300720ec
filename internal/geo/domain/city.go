package domain

import (
	"time"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	sharedQuery "github.com/davicafu/orgref/internal/shared/platform/query"
)

const CityDefaultSort = "name"

type City struct {
	sharedDomain.Record
	Name         string
	NativeName   *string
	State        *string
	District     *string
	PostalCode   *string
	Latitude     *float64
	Longitude    *float64
	Elevation    *int64
	Population   *int64
	AreaKm2      *float64
	TimezoneID   *int64
	CountryID    *int64
	Capital      bool
	Metropolitan bool
	Active       bool
}

func (c *City) SetActive(active bool, actor *string, at time.Time) {
	c.Active = active
	c.Touch(actor, at)
}

func (c *City) Clone() *City {
	cp := *c
	return &cp
}

var CityFields = sharedQuery.NewRegistry(append(sharedQuery.RecordFields[*City](),
	sharedQuery.Field[*City]{Name: "name", Column: "name", Kind: sharedQuery.KindString, Get: func(c *City) any { return c.Name }},
	sharedQuery.Field[*City]{Name: "nativeName", Column: "native_name", Kind: sharedQuery.KindString, Get: func(c *City) any { return sharedQuery.Deref(c.NativeName) }},
	sharedQuery.Field[*City]{Name: "state", Column: "state", Kind: sharedQuery.KindString, Get: func(c *City) any { return sharedQuery.Deref(c.State) }},
	sharedQuery.Field[*City]{Name: "district", Column: "district", Kind: sharedQuery.KindString, Get: func(c *City) any { return sharedQuery.Deref(c.District) }},
	sharedQuery.Field[*City]{Name: "postalCode", Column: "postal_code", Kind: sharedQuery.KindString, Get: func(c *City) any { return sharedQuery.Deref(c.PostalCode) }},
	sharedQuery.Field[*City]{Name: "latitude", Column: "latitude", Kind: sharedQuery.KindFloat, Get: func(c *City) any { return sharedQuery.Deref(c.Latitude) }},
	sharedQuery.Field[*City]{Name: "longitude", Column: "longitude", Kind: sharedQuery.KindFloat, Get: func(c *City) any { return sharedQuery.Deref(c.Longitude) }},
	sharedQuery.Field[*City]{Name: "elevation", Column: "elevation", Kind: sharedQuery.KindInt, Get: func(c *City) any { return sharedQuery.Deref(c.Elevation) }},
	sharedQuery.Field[*City]{Name: "population", Column: "population", Kind: sharedQuery.KindInt, Get: func(c *City) any { return sharedQuery.Deref(c.Population) }},
	sharedQuery.Field[*City]{Name: "areaKm2", Column: "area_km2", Kind: sharedQuery.KindFloat, Get: func(c *City) any { return sharedQuery.Deref(c.AreaKm2) }},
	sharedQuery.Field[*City]{Name: "timezoneId", Column: "timezone_id", Kind: sharedQuery.KindInt, Get: func(c *City) any { return sharedQuery.Deref(c.TimezoneID) }},
	sharedQuery.Field[*City]{Name: "countryId", Column: "country_id", Kind: sharedQuery.KindInt, Get: func(c *City) any { return sharedQuery.Deref(c.CountryID) }},
	sharedQuery.Field[*City]{Name: "capital", Column: "capital", Kind: sharedQuery.KindBool, Get: func(c *City) any { return c.Capital }},
	sharedQuery.Field[*City]{Name: "metropolitan", Column: "metropolitan", Kind: sharedQuery.KindBool, Get: func(c *City) any { return c.Metropolitan }},
	sharedQuery.Field[*City]{Name: "active", Column: "active", Kind: sharedQuery.KindBool, Get: func(c *City) any { return c.Active }},
)...)

type CityFilters struct {
	Name       *string `json:"name"`
	Active     *bool   `json:"active"`
	Capital    *bool   `json:"capital"`
	CountryID  *int64  `json:"countryId"`
	TimezoneID *int64  `json:"timezoneId"`
}

func (f CityFilters) Predicates(fs sharedQuery.Fields) []sharedDomain.Criteria {
	return []sharedDomain.Criteria{
		sharedQuery.OptionalText(f.Name, func(v string) sharedDomain.Criteria { return sharedQuery.ContainsFold(fs, "name", v) }),
		sharedQuery.Optional(f.Active, func(v bool) sharedDomain.Criteria { return sharedQuery.Equal(fs, "active", v) }),
		sharedQuery.Optional(f.Capital, func(v bool) sharedDomain.Criteria { return sharedQuery.Equal(fs, "capital", v) }),
		sharedQuery.Optional(f.CountryID, func(v int64) sharedDomain.Criteria { return sharedQuery.Equal(fs, "countryId", v) }),
		sharedQuery.Optional(f.TimezoneID, func(v int64) sharedDomain.Criteria { return sharedQuery.Equal(fs, "timezoneId", v) }),
	}
}
