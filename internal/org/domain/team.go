package domain

import (
	"time"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	sharedQuery "github.com/davicafu/orgref/internal/shared/platform/query"
)

const TeamDefaultSort = "name"

// Team es una organización o unidad. ParentID forma la jerarquía; tipo e industria apuntan a referenciales.
type Team struct {
	sharedDomain.Record
	InternalCode  string
	ExternalCode  *string
	Name          string
	Description   *string
	Email         *string
	Website       *string
	TaxID         *string
	VATNumber     *string
	LogoURL       *string
	FoundedDate   *time.Time
	EmployeeCount *int64
	Notes         *string
	Active        bool
	ParentID      *int64
	TeamTypeID    *int64
	IndustryID    *int64
}

func (t *Team) SetActive(active bool, actor *string, at time.Time) {
	t.Active = active
	t.Touch(actor, at)
}

func (t *Team) Clone() *Team {
	cp := *t
	return &cp
}

var TeamFields = sharedQuery.NewRegistry(append(sharedQuery.RecordFields[*Team](),
	sharedQuery.Field[*Team]{Name: "internalCode", Column: "internal_code", Kind: sharedQuery.KindString, Get: func(t *Team) any { return t.InternalCode }},
	sharedQuery.Field[*Team]{Name: "externalCode", Column: "external_code", Kind: sharedQuery.KindString, Get: func(t *Team) any { return sharedQuery.Deref(t.ExternalCode) }},
	sharedQuery.Field[*Team]{Name: "name", Column: "name", Kind: sharedQuery.KindString, Get: func(t *Team) any { return t.Name }},
	sharedQuery.Field[*Team]{Name: "description", Column: "description", Kind: sharedQuery.KindString, Get: func(t *Team) any { return sharedQuery.Deref(t.Description) }},
	sharedQuery.Field[*Team]{Name: "email", Column: "email", Kind: sharedQuery.KindString, Get: func(t *Team) any { return sharedQuery.Deref(t.Email) }},
	sharedQuery.Field[*Team]{Name: "website", Column: "website", Kind: sharedQuery.KindString, Get: func(t *Team) any { return sharedQuery.Deref(t.Website) }},
	sharedQuery.Field[*Team]{Name: "taxId", Column: "tax_id", Kind: sharedQuery.KindString, Get: func(t *Team) any { return sharedQuery.Deref(t.TaxID) }},
	sharedQuery.Field[*Team]{Name: "vatNumber", Column: "vat_number", Kind: sharedQuery.KindString, Get: func(t *Team) any { return sharedQuery.Deref(t.VATNumber) }},
	sharedQuery.Field[*Team]{Name: "logoUrl", Column: "logo_url", Kind: sharedQuery.KindString, Get: func(t *Team) any { return sharedQuery.Deref(t.LogoURL) }},
	sharedQuery.Field[*Team]{Name: "foundedDate", Column: "founded_date", Kind: sharedQuery.KindTime, Get: func(t *Team) any { return sharedQuery.Deref(t.FoundedDate) }},
	sharedQuery.Field[*Team]{Name: "employeeCount", Column: "employee_count", Kind: sharedQuery.KindInt, Get: func(t *Team) any { return sharedQuery.Deref(t.EmployeeCount) }},
	sharedQuery.Field[*Team]{Name: "notes", Column: "notes", Kind: sharedQuery.KindString, Get: func(t *Team) any { return sharedQuery.Deref(t.Notes) }},
	sharedQuery.Field[*Team]{Name: "active", Column: "active", Kind: sharedQuery.KindBool, Get: func(t *Team) any { return t.Active }},
	sharedQuery.Field[*Team]{Name: "parentId", Column: "parent_id", Kind: sharedQuery.KindInt, Get: func(t *Team) any { return sharedQuery.Deref(t.ParentID) }},
	sharedQuery.Field[*Team]{Name: "teamTypeId", Column: "team_type_id", Kind: sharedQuery.KindInt, Get: func(t *Team) any { return sharedQuery.Deref(t.TeamTypeID) }},
	sharedQuery.Field[*Team]{Name: "industryId", Column: "industry_id", Kind: sharedQuery.KindInt, Get: func(t *Team) any { return sharedQuery.Deref(t.IndustryID) }},
)...)

type TeamFilters struct {
	InternalCode *string `json:"internalCode"`
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Active       *bool   `json:"active"`
	TeamTypeID   *int64  `json:"teamTypeId"`
	IndustryID   *int64  `json:"industryId"`
	ParentID     *int64  `json:"parentId"`
}

func (f TeamFilters) Predicates(fs sharedQuery.Fields) []sharedDomain.Criteria {
	return []sharedDomain.Criteria{
		sharedQuery.OptionalText(f.InternalCode, func(v string) sharedDomain.Criteria { return sharedQuery.ContainsFold(fs, "internalCode", v) }),
		sharedQuery.OptionalText(f.Name, func(v string) sharedDomain.Criteria { return sharedQuery.ContainsFold(fs, "name", v) }),
		sharedQuery.OptionalText(f.Email, func(v string) sharedDomain.Criteria { return sharedQuery.ContainsFold(fs, "email", v) }),
		sharedQuery.Optional(f.Active, func(v bool) sharedDomain.Criteria { return sharedQuery.Equal(fs, "active", v) }),
		sharedQuery.Optional(f.TeamTypeID, func(v int64) sharedDomain.Criteria { return sharedQuery.Equal(fs, "teamTypeId", v) }),
		sharedQuery.Optional(f.IndustryID, func(v int64) sharedDomain.Criteria { return sharedQuery.Equal(fs, "industryId", v) }),
		sharedQuery.Optional(f.ParentID, func(v int64) sharedDomain.Criteria { return sharedQuery.Equal(fs, "parentId", v) }),
	}
}
