package db

import (
	orgDomain "github.com/davicafu/orgref/internal/org/domain"
	"github.com/davicafu/orgref/internal/shared/infra/platform/db/sqlstore"
)

// TeamTable: teams depende de referentials (tipo e industria), que debe migrarse antes.
var TeamTable = sqlstore.Table[*orgDomain.Team]{
	Name: "teams",
	Columns: []sqlstore.Column{
		{Name: "internal_code", Type: sqlstore.TypeText, Unique: true},
		{Name: "external_code", Type: sqlstore.TypeText, Nullable: true},
		{Name: "name", Type: sqlstore.TypeText},
		{Name: "description", Type: sqlstore.TypeText, Nullable: true},
		{Name: "email", Type: sqlstore.TypeText, Nullable: true},
		{Name: "website", Type: sqlstore.TypeText, Nullable: true},
		{Name: "tax_id", Type: sqlstore.TypeText, Nullable: true},
		{Name: "vat_number", Type: sqlstore.TypeText, Nullable: true},
		{Name: "logo_url", Type: sqlstore.TypeText, Nullable: true},
		{Name: "founded_date", Type: sqlstore.TypeDate, Nullable: true},
		{Name: "employee_count", Type: sqlstore.TypeBigInt, Nullable: true},
		{Name: "notes", Type: sqlstore.TypeText, Nullable: true},
		{Name: "active", Type: sqlstore.TypeBool, Default: "TRUE"},
		{Name: "parent_id", Type: sqlstore.TypeBigInt, Nullable: true, Ref: "teams"},
		{Name: "team_type_id", Type: sqlstore.TypeBigInt, Nullable: true, Ref: "referentials"},
		{Name: "industry_id", Type: sqlstore.TypeBigInt, Nullable: true, Ref: "referentials"},
	},
	New: func() *orgDomain.Team { return &orgDomain.Team{} },
	Bind: func(t *orgDomain.Team) []any {
		return []any{
			&t.InternalCode, &t.ExternalCode, &t.Name, &t.Description, &t.Email, &t.Website,
			&t.TaxID, &t.VATNumber, &t.LogoURL, &t.FoundedDate, &t.EmployeeCount, &t.Notes,
			&t.Active, &t.ParentID, &t.TeamTypeID, &t.IndustryID,
		}
	},
}

func Tables() []sqlstore.Migration {
	return []sqlstore.Migration{TeamTable}
}
