package domain

import (
	"time"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	sharedQuery "github.com/davicafu/orgref/internal/shared/platform/query"
)

const RoleDefaultSort = "code"

// Role admite herencia simple a través de ParentID.
type Role struct {
	sharedDomain.Record
	Code        string
	Label       string
	Description *string
	Active      bool
	Admin       bool
	ParentID    *int64
}

func (r *Role) SetActive(active bool, actor *string, at time.Time) {
	r.Active = active
	r.Touch(actor, at)
}

func (r *Role) Clone() *Role {
	cp := *r
	return &cp
}

var RoleFields = sharedQuery.NewRegistry(append(sharedQuery.RecordFields[*Role](),
	sharedQuery.Field[*Role]{Name: "code", Column: "code", Kind: sharedQuery.KindString, Get: func(r *Role) any { return r.Code }},
	sharedQuery.Field[*Role]{Name: "label", Column: "label", Kind: sharedQuery.KindString, Get: func(r *Role) any { return r.Label }},
	sharedQuery.Field[*Role]{Name: "description", Column: "description", Kind: sharedQuery.KindString, Get: func(r *Role) any { return sharedQuery.Deref(r.Description) }},
	sharedQuery.Field[*Role]{Name: "active", Column: "active", Kind: sharedQuery.KindBool, Get: func(r *Role) any { return r.Active }},
	sharedQuery.Field[*Role]{Name: "admin", Column: "admin", Kind: sharedQuery.KindBool, Get: func(r *Role) any { return r.Admin }},
	sharedQuery.Field[*Role]{Name: "parentId", Column: "parent_id", Kind: sharedQuery.KindInt, Get: func(r *Role) any { return sharedQuery.Deref(r.ParentID) }},
)...)

type RoleFilters struct {
	Code     *string `json:"code"`
	Label    *string `json:"label"`
	Active   *bool   `json:"active"`
	Admin    *bool   `json:"admin"`
	ParentID *int64  `json:"parentId"`
}

func (f RoleFilters) Predicates(fs sharedQuery.Fields) []sharedDomain.Criteria {
	return []sharedDomain.Criteria{
		sharedQuery.OptionalText(f.Code, func(v string) sharedDomain.Criteria { return sharedQuery.ContainsFold(fs, "code", v) }),
		sharedQuery.OptionalText(f.Label, func(v string) sharedDomain.Criteria { return sharedQuery.ContainsFold(fs, "label", v) }),
		sharedQuery.Optional(f.Active, func(v bool) sharedDomain.Criteria { return sharedQuery.Equal(fs, "active", v) }),
		sharedQuery.Optional(f.Admin, func(v bool) sharedDomain.Criteria { return sharedQuery.Equal(fs, "admin", v) }),
		sharedQuery.Optional(f.ParentID, func(v int64) sharedDomain.Criteria { return sharedQuery.Equal(fs, "parentId", v) }),
	}
}
