package db

import (
	geoDomain "github.com/davicafu/orgref/internal/geo/domain"
	"github.com/davicafu/orgref/internal/shared/infra/platform/db/sqlstore"
)

// Orden de creación: timezones y countries antes que cities por las FK.

var TimezoneTable = sqlstore.Table[*geoDomain.Timezone]{
	Name: "timezones",
	Columns: []sqlstore.Column{
		{Name: "code", Type: sqlstore.TypeText, Unique: true},
		{Name: "name", Type: sqlstore.TypeText},
		{Name: "abbreviation", Type: sqlstore.TypeText, Nullable: true},
		{Name: "utc_offset", Type: sqlstore.TypeText, Nullable: true},
		{Name: "dst_offset", Type: sqlstore.TypeText, Nullable: true},
		{Name: "uses_dst", Type: sqlstore.TypeBool, Default: "FALSE"},
		{Name: "description", Type: sqlstore.TypeText, Nullable: true},
		{Name: "active", Type: sqlstore.TypeBool, Default: "TRUE"},
	},
	New: func() *geoDomain.Timezone { return &geoDomain.Timezone{} },
	Bind: func(z *geoDomain.Timezone) []any {
		return []any{&z.Code, &z.Name, &z.Abbreviation, &z.UTCOffset, &z.DSTOffset, &z.UsesDST, &z.Description, &z.Active}
	},
}

var CountryTable = sqlstore.Table[*geoDomain.Country]{
	Name: "countries",
	Columns: []sqlstore.Column{
		{Name: "name", Type: sqlstore.TypeText},
		{Name: "native_name", Type: sqlstore.TypeText, Nullable: true},
		{Name: "iso2", Type: sqlstore.TypeText, Unique: true},
		{Name: "iso3", Type: sqlstore.TypeText, Unique: true},
		{Name: "numeric_code", Type: sqlstore.TypeText, Nullable: true},
		{Name: "phone_code", Type: sqlstore.TypeText, Nullable: true},
		{Name: "currency_code", Type: sqlstore.TypeText, Nullable: true},
		{Name: "domain", Type: sqlstore.TypeText, Nullable: true},
		{Name: "flag_emoji", Type: sqlstore.TypeText, Nullable: true},
		{Name: "region_id", Type: sqlstore.TypeBigInt, Nullable: true},
		{Name: "sub_region_id", Type: sqlstore.TypeBigInt, Nullable: true},
		{Name: "language_id", Type: sqlstore.TypeBigInt, Nullable: true},
		{Name: "timezone_id", Type: sqlstore.TypeBigInt, Nullable: true, Ref: "timezones"},
		{Name: "capital_city_id", Type: sqlstore.TypeBigInt, Nullable: true},
		{Name: "enabled", Type: sqlstore.TypeBool, Default: "TRUE"},
		{Name: "active", Type: sqlstore.TypeBool, Default: "TRUE"},
	},
	New: func() *geoDomain.Country { return &geoDomain.Country{} },
	Bind: func(c *geoDomain.Country) []any {
		return []any{
			&c.Name, &c.NativeName, &c.ISO2, &c.ISO3, &c.NumericCode, &c.PhoneCode, &c.CurrencyCode,
			&c.Domain, &c.FlagEmoji, &c.RegionID, &c.SubRegionID, &c.LanguageID, &c.TimezoneID,
			&c.CapitalCityID, &c.Enabled, &c.Active,
		}
	},
}

var CityTable = sqlstore.Table[*geoDomain.City]{
	Name: "cities",
	Columns: []sqlstore.Column{
		{Name: "name", Type: sqlstore.TypeText},
		{Name: "native_name", Type: sqlstore.TypeText, Nullable: true},
		{Name: "state", Type: sqlstore.TypeText, Nullable: true},
		{Name: "district", Type: sqlstore.TypeText, Nullable: true},
		{Name: "postal_code", Type: sqlstore.TypeText, Nullable: true},
		{Name: "latitude", Type: sqlstore.TypeFloat, Nullable: true},
		{Name: "longitude", Type: sqlstore.TypeFloat, Nullable: true},
		{Name: "elevation", Type: sqlstore.TypeBigInt, Nullable: true},
		{Name: "population", Type: sqlstore.TypeBigInt, Nullable: true},
		{Name: "area_km2", Type: sqlstore.TypeFloat, Nullable: true},
		{Name: "timezone_id", Type: sqlstore.TypeBigInt, Nullable: true, Ref: "timezones"},
		{Name: "country_id", Type: sqlstore.TypeBigInt, Nullable: true, Ref: "countries"},
		{Name: "capital", Type: sqlstore.TypeBool, Default: "FALSE"},
		{Name: "metropolitan", Type: sqlstore.TypeBool, Default: "FALSE"},
		{Name: "active", Type: sqlstore.TypeBool, Default: "TRUE"},
	},
	New: func() *geoDomain.City { return &geoDomain.City{} },
	Bind: func(c *geoDomain.City) []any {
		return []any{
			&c.Name, &c.NativeName, &c.State, &c.District, &c.PostalCode, &c.Latitude, &c.Longitude,
			&c.Elevation, &c.Population, &c.AreaKm2, &c.TimezoneID, &c.CountryID, &c.Capital,
			&c.Metropolitan, &c.Active,
		}
	},
}

// Tables en orden de migración.
func Tables() []sqlstore.Migration {
	return []sqlstore.Migration{TimezoneTable, CountryTable, CityTable}
}
