package db

import (
	accessDomain "github.com/davicafu/orgref/internal/access/domain"
	"github.com/davicafu/orgref/internal/shared/infra/platform/db/sqlstore"
)

var RoleTable = sqlstore.Table[*accessDomain.Role]{
	Name: "roles",
	Columns: []sqlstore.Column{
		{Name: "code", Type: sqlstore.TypeText, Unique: true},
		{Name: "label", Type: sqlstore.TypeText},
		{Name: "description", Type: sqlstore.TypeText, Nullable: true},
		{Name: "active", Type: sqlstore.TypeBool, Default: "TRUE"},
		{Name: "admin", Type: sqlstore.TypeBool, Default: "FALSE"},
		{Name: "parent_id", Type: sqlstore.TypeBigInt, Nullable: true, Ref: "roles"},
	},
	New: func() *accessDomain.Role { return &accessDomain.Role{} },
	Bind: func(r *accessDomain.Role) []any {
		return []any{&r.Code, &r.Label, &r.Description, &r.Active, &r.Admin, &r.ParentID}
	},
}

// UserTable: status_id apunta a un referencial, así que referentials se migra antes.
var UserTable = sqlstore.Table[*accessDomain.User]{
	Name: "users",
	Columns: []sqlstore.Column{
		{Name: "first_name", Type: sqlstore.TypeText},
		{Name: "last_name", Type: sqlstore.TypeText},
		{Name: "email", Type: sqlstore.TypeText, Unique: true},
		{Name: "password", Type: sqlstore.TypeText},
		{Name: "status_id", Type: sqlstore.TypeBigInt, Nullable: true, Ref: "referentials"},
		{Name: "active", Type: sqlstore.TypeBool, Default: "TRUE"},
		{Name: "last_login_at", Type: sqlstore.TypeTime, Nullable: true},
		{Name: "active_at", Type: sqlstore.TypeTime, Nullable: true},
		{Name: "inactive_at", Type: sqlstore.TypeTime, Nullable: true},
		{Name: "active_by", Type: sqlstore.TypeText, Nullable: true},
		{Name: "inactive_by", Type: sqlstore.TypeText, Nullable: true},
	},
	New: func() *accessDomain.User { return &accessDomain.User{} },
	Bind: func(u *accessDomain.User) []any {
		return []any{
			&u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.StatusID, &u.Active,
			&u.LastLoginAt, &u.ActiveAt, &u.InactiveAt, &u.ActiveBy, &u.InactiveBy,
		}
	},
}

func Tables() []sqlstore.Migration {
	return []sqlstore.Migration{RoleTable, UserTable}
}
