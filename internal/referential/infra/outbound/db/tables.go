package db

import (
	refDomain "github.com/davicafu/orgref/internal/referential/domain"
	"github.com/davicafu/orgref/internal/shared/infra/platform/db/sqlstore"
)

// ReferentialTable se referencia a sí misma; type_id es nullable para que la raíz
// pueda existir sin desactivar las restricciones.
var ReferentialTable = sqlstore.Table[*refDomain.Referential]{
	Name: "referentials",
	Columns: []sqlstore.Column{
		{Name: "code", Type: sqlstore.TypeText},
		{Name: "data_type", Type: sqlstore.TypeText},
		{Name: "label", Type: sqlstore.TypeText},
		{Name: "description", Type: sqlstore.TypeText, Nullable: true},
		{Name: "external_code", Type: sqlstore.TypeText, Nullable: true},
		{Name: "icon_url", Type: sqlstore.TypeText, Nullable: true},
		{Name: "display_order", Type: sqlstore.TypeInt, Default: "0"},
		{Name: "locale", Type: sqlstore.TypeText, Nullable: true},
		{Name: "type_id", Type: sqlstore.TypeBigInt, Nullable: true, Ref: "referentials"},
		{Name: "sub_type_id", Type: sqlstore.TypeBigInt, Nullable: true, Ref: "referentials"},
		{Name: "parent_id", Type: sqlstore.TypeBigInt, Nullable: true, Ref: "referentials"},
		{Name: "active", Type: sqlstore.TypeBool, Default: "TRUE"},
		{Name: "start_date", Type: sqlstore.TypeDate, Nullable: true},
		{Name: "end_date", Type: sqlstore.TypeDate, Nullable: true},
	},
	New: func() *refDomain.Referential { return &refDomain.Referential{} },
	Bind: func(r *refDomain.Referential) []any {
		return []any{
			&r.Code, &r.DataType, &r.Label, &r.Description, &r.ExternalCode, &r.IconURL,
			&r.DisplayOrder, &r.Locale, &r.TypeID, &r.SubTypeID, &r.ParentID, &r.Active,
			&r.StartDate, &r.EndDate,
		}
	},
}

func Tables() []sqlstore.Migration {
	return []sqlstore.Migration{ReferentialTable}
}
