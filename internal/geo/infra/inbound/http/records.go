package http

import (
	"time"

	geoDomain "github.com/davicafu/orgref/internal/geo/domain"
)

// Registros de transporte: lo que ve el frontend, sin marcas de borrado ni versión.

type CountryRecord struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	NativeName    *string    `json:"nativeName"`
	ISO2          string     `json:"iso2"`
	ISO3          string     `json:"iso3"`
	NumericCode   *string    `json:"numericCode"`
	PhoneCode     *string    `json:"phoneCode"`
	CurrencyCode  *string    `json:"currencyCode"`
	Domain        *string    `json:"domain"`
	FlagEmoji     *string    `json:"flagEmoji"`
	RegionID      *int64     `json:"regionId"`
	SubRegionID   *int64     `json:"subRegionId"`
	LanguageID    *int64     `json:"languageId"`
	TimezoneID    *int64     `json:"timezoneId"`
	CapitalCityID *int64     `json:"capitalCityId"`
	Enabled       bool       `json:"enabled"`
	Active        bool       `json:"active"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt"`
}

func ToCountryRecord(c *geoDomain.Country) CountryRecord {
	return CountryRecord{
		ID:            c.ID,
		Name:          c.Name,
		NativeName:    c.NativeName,
		ISO2:          c.ISO2,
		ISO3:          c.ISO3,
		NumericCode:   c.NumericCode,
		PhoneCode:     c.PhoneCode,
		CurrencyCode:  c.CurrencyCode,
		Domain:        c.Domain,
		FlagEmoji:     c.FlagEmoji,
		RegionID:      c.RegionID,
		SubRegionID:   c.SubRegionID,
		LanguageID:    c.LanguageID,
		TimezoneID:    c.TimezoneID,
		CapitalCityID: c.CapitalCityID,
		Enabled:       c.Enabled,
		Active:        c.Active,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

type CityRecord struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	NativeName   *string    `json:"nativeName"`
	State        *string    `json:"state"`
	District     *string    `json:"district"`
	PostalCode   *string    `json:"postalCode"`
	Latitude     *float64   `json:"latitude"`
	Longitude    *float64   `json:"longitude"`
	Elevation    *int64     `json:"elevation"`
	Population   *int64     `json:"population"`
	AreaKm2      *float64   `json:"areaKm2"`
	TimezoneID   *int64     `json:"timezoneId"`
	CountryID    *int64     `json:"countryId"`
	Capital      bool       `json:"capital"`
	Metropolitan bool       `json:"metropolitan"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
}

func ToCityRecord(c *geoDomain.City) CityRecord {
	return CityRecord{
		ID:           c.ID,
		Name:         c.Name,
		NativeName:   c.NativeName,
		State:        c.State,
		District:     c.District,
		PostalCode:   c.PostalCode,
		Latitude:     c.Latitude,
		Longitude:    c.Longitude,
		Elevation:    c.Elevation,
		Population:   c.Population,
		AreaKm2:      c.AreaKm2,
		TimezoneID:   c.TimezoneID,
		CountryID:    c.CountryID,
		Capital:      c.Capital,
		Metropolitan: c.Metropolitan,
		Active:       c.Active,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

type TimezoneRecord struct {
	ID           int64      `json:"id"`
	Code         string     `json:"code"`
	Name         string     `json:"name"`
	Abbreviation *string    `json:"abbreviation"`
	UTCOffset    *string    `json:"utcOffset"`
	DSTOffset    *string    `json:"dstOffset"`
	UsesDST      bool       `json:"usesDst"`
	Description  *string    `json:"description"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
}

func ToTimezoneRecord(z *geoDomain.Timezone) TimezoneRecord {
	return TimezoneRecord{
		ID:           z.ID,
		Code:         z.Code,
		Name:         z.Name,
		Abbreviation: z.Abbreviation,
		UTCOffset:    z.UTCOffset,
		DSTOffset:    z.DSTOffset,
		UsesDST:      z.UsesDST,
		Description:  z.Description,
		Active:       z.Active,
		CreatedAt:    z.CreatedAt,
		UpdatedAt:    z.UpdatedAt,
	}
}
