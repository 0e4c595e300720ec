package domain

import (
	"time"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	sharedQuery "github.com/davicafu/orgref/internal/shared/platform/query"
)

const TimezoneDefaultSort = "code"

// Timezone guarda los desfases como texto ("+01:00") tal y como llegan del catálogo IANA.
type Timezone struct {
	sharedDomain.Record
	Code         string
	Name         string
	Abbreviation *string
	UTCOffset    *string
	DSTOffset    *string
	UsesDST      bool
	Description  *string
	Active       bool
}

func (z *Timezone) SetActive(active bool, actor *string, at time.Time) {
	z.Active = active
	z.Touch(actor, at)
}

func (z *Timezone) Clone() *Timezone {
	cp := *z
	return &cp
}

var TimezoneFields = sharedQuery.NewRegistry(append(sharedQuery.RecordFields[*Timezone](),
	sharedQuery.Field[*Timezone]{Name: "code", Column: "code", Kind: sharedQuery.KindString, Get: func(z *Timezone) any { return z.Code }},
	sharedQuery.Field[*Timezone]{Name: "name", Column: "name", Kind: sharedQuery.KindString, Get: func(z *Timezone) any { return z.Name }},
	sharedQuery.Field[*Timezone]{Name: "abbreviation", Column: "abbreviation", Kind: sharedQuery.KindString, Get: func(z *Timezone) any { return sharedQuery.Deref(z.Abbreviation) }},
	sharedQuery.Field[*Timezone]{Name: "utcOffset", Column: "utc_offset", Kind: sharedQuery.KindString, Get: func(z *Timezone) any { return sharedQuery.Deref(z.UTCOffset) }},
	sharedQuery.Field[*Timezone]{Name: "dstOffset", Column: "dst_offset", Kind: sharedQuery.KindString, Get: func(z *Timezone) any { return sharedQuery.Deref(z.DSTOffset) }},
	sharedQuery.Field[*Timezone]{Name: "usesDst", Column: "uses_dst", Kind: sharedQuery.KindBool, Get: func(z *Timezone) any { return z.UsesDST }},
	sharedQuery.Field[*Timezone]{Name: "description", Column: "description", Kind: sharedQuery.KindString, Get: func(z *Timezone) any { return sharedQuery.Deref(z.Description) }},
	sharedQuery.Field[*Timezone]{Name: "active", Column: "active", Kind: sharedQuery.KindBool, Get: func(z *Timezone) any { return z.Active }},
)...)

type TimezoneFilters struct {
	Code    *string `json:"code"`
	Name    *string `json:"name"`
	Active  *bool   `json:"active"`
	UsesDST *bool   `json:"usesDst"`
}

func (f TimezoneFilters) Predicates(fs sharedQuery.Fields) []sharedDomain.Criteria {
	return []sharedDomain.Criteria{
		sharedQuery.OptionalText(f.Code, func(v string) sharedDomain.Criteria { return sharedQuery.ContainsFold(fs, "code", v) }),
		sharedQuery.OptionalText(f.Name, func(v string) sharedDomain.Criteria { return sharedQuery.ContainsFold(fs, "name", v) }),
		sharedQuery.Optional(f.Active, func(v bool) sharedDomain.Criteria { return sharedQuery.Equal(fs, "active", v) }),
		sharedQuery.Optional(f.UsesDST, func(v bool) sharedDomain.Criteria { return sharedQuery.Equal(fs, "usesDst", v) }),
	}
}
