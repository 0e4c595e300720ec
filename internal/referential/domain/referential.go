package domain

import (
	"context"
	"fmt"
	"time"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	sharedQuery "github.com/davicafu/orgref/internal/shared/platform/query"
)

const ReferentialDefaultSort = "displayOrder"

// Referential es una entrada de la taxonomía. TypeID, SubTypeID y ParentID apuntan a la misma tabla;
// la raíz ("tipo de tipos") tiene TypeID nulo.
type Referential struct {
	sharedDomain.Record
	Code         string
	DataType     string
	Label        string
	Description  *string
	ExternalCode *string
	IconURL      *string
	DisplayOrder int64
	Locale       *string
	TypeID       *int64
	SubTypeID    *int64
	ParentID     *int64
	Active       bool
	StartDate    *time.Time
	EndDate      *time.Time
}

func (r *Referential) SetActive(active bool, actor *string, at time.Time) {
	r.Active = active
	r.Touch(actor, at)
}

func (r *Referential) Clone() *Referential {
	cp := *r
	return &cp
}

// Links devuelve los ids enlazados que no son nulos (tipo, subtipo y padre).
func (r *Referential) Links() []int64 {
	var ids []int64
	for _, p := range []*int64{r.TypeID, r.SubTypeID, r.ParentID} {
		if p != nil {
			ids = append(ids, *p)
		}
	}
	return ids
}

// Summary es lo que se desnormaliza de un referencial enlazado.
type Summary struct {
	ID          int64   `json:"id"`
	Code        string  `json:"code"`
	Label       string  `json:"label"`
	Description *string `json:"description,omitempty"`
	DataType    string  `json:"dataType"`
}

func (r *Referential) Summary() Summary {
	return Summary{ID: r.ID, Code: r.Code, Label: r.Label, Description: r.Description, DataType: r.DataType}
}

func SummaryCacheKey(id int64) string {
	return fmt.Sprintf("referential:summary:%d", id)
}

// SummaryCache es la caché que usa la desnormalización.
type SummaryCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, val interface{}, ttlSecs int) error
	Delete(ctx context.Context, key string) error
}

var ReferentialFields = sharedQuery.NewRegistry(append(sharedQuery.RecordFields[*Referential](),
	sharedQuery.Field[*Referential]{Name: "code", Column: "code", Kind: sharedQuery.KindString, Get: func(r *Referential) any { return r.Code }},
	sharedQuery.Field[*Referential]{Name: "dataType", Column: "data_type", Kind: sharedQuery.KindString, Get: func(r *Referential) any { return r.DataType }},
	sharedQuery.Field[*Referential]{Name: "label", Column: "label", Kind: sharedQuery.KindString, Get: func(r *Referential) any { return r.Label }},
	sharedQuery.Field[*Referential]{Name: "description", Column: "description", Kind: sharedQuery.KindString, Get: func(r *Referential) any { return sharedQuery.Deref(r.Description) }},
	sharedQuery.Field[*Referential]{Name: "externalCode", Column: "external_code", Kind: sharedQuery.KindString, Get: func(r *Referential) any { return sharedQuery.Deref(r.ExternalCode) }},
	sharedQuery.Field[*Referential]{Name: "iconUrl", Column: "icon_url", Kind: sharedQuery.KindString, Get: func(r *Referential) any { return sharedQuery.Deref(r.IconURL) }},
	sharedQuery.Field[*Referential]{Name: "displayOrder", Column: "display_order", Kind: sharedQuery.KindInt, Get: func(r *Referential) any { return r.DisplayOrder }},
	sharedQuery.Field[*Referential]{Name: "locale", Column: "locale", Kind: sharedQuery.KindString, Get: func(r *Referential) any { return sharedQuery.Deref(r.Locale) }},
	sharedQuery.Field[*Referential]{Name: "typeId", Column: "type_id", Kind: sharedQuery.KindInt, Get: func(r *Referential) any { return sharedQuery.Deref(r.TypeID) }},
	sharedQuery.Field[*Referential]{Name: "subTypeId", Column: "sub_type_id", Kind: sharedQuery.KindInt, Get: func(r *Referential) any { return sharedQuery.Deref(r.SubTypeID) }},
	sharedQuery.Field[*Referential]{Name: "parentId", Column: "parent_id", Kind: sharedQuery.KindInt, Get: func(r *Referential) any { return sharedQuery.Deref(r.ParentID) }},
	sharedQuery.Field[*Referential]{Name: "active", Column: "active", Kind: sharedQuery.KindBool, Get: func(r *Referential) any { return r.Active }},
	sharedQuery.Field[*Referential]{Name: "startDate", Column: "start_date", Kind: sharedQuery.KindTime, Get: func(r *Referential) any { return sharedQuery.Deref(r.StartDate) }},
	sharedQuery.Field[*Referential]{Name: "endDate", Column: "end_date", Kind: sharedQuery.KindTime, Get: func(r *Referential) any { return sharedQuery.Deref(r.EndDate) }},
)...)

type ReferentialFilters struct {
	Code      *string `json:"code"`
	Label     *string `json:"label"`
	DataType  *string `json:"dataType"`
	Locale    *string `json:"locale"`
	TypeID    *int64  `json:"typeId"`
	SubTypeID *int64  `json:"subTypeId"`
	ParentID  *int64  `json:"parentId"`
	Active    *bool   `json:"active"`
}

func (f ReferentialFilters) Predicates(fs sharedQuery.Fields) []sharedDomain.Criteria {
	return []sharedDomain.Criteria{
		sharedQuery.OptionalText(f.Code, func(v string) sharedDomain.Criteria { return sharedQuery.ContainsFold(fs, "code", v) }),
		sharedQuery.OptionalText(f.Label, func(v string) sharedDomain.Criteria { return sharedQuery.ContainsFold(fs, "label", v) }),
		sharedQuery.OptionalText(f.DataType, func(v string) sharedDomain.Criteria { return sharedQuery.EqualFold(fs, "dataType", v) }),
		sharedQuery.OptionalText(f.Locale, func(v string) sharedDomain.Criteria { return sharedQuery.EqualFold(fs, "locale", v) }),
		sharedQuery.Optional(f.TypeID, func(v int64) sharedDomain.Criteria { return sharedQuery.Equal(fs, "typeId", v) }),
		sharedQuery.Optional(f.SubTypeID, func(v int64) sharedDomain.Criteria { return sharedQuery.Equal(fs, "subTypeId", v) }),
		sharedQuery.Optional(f.ParentID, func(v int64) sharedDomain.Criteria { return sharedQuery.Equal(fs, "parentId", v) }),
		sharedQuery.Optional(f.Active, func(v bool) sharedDomain.Criteria { return sharedQuery.Equal(fs, "active", v) }),
	}
}
