package domain

import (
	"time"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	sharedQuery "github.com/davicafu/orgref/internal/shared/platform/query"
)

const UserDefaultSort = "createdAt"

// User es un usuario de la plataforma. PasswordHash nunca sale del almacén.
type User struct {
	sharedDomain.Record
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	StatusID     *int64
	Active       bool
	LastLoginAt  *time.Time
	ActiveAt     *time.Time
	InactiveAt   *time.Time
	ActiveBy     *string
	InactiveBy   *string
}

// SetActive además de cambiar el flag deja constancia de quién y cuándo lo activó o desactivó.
func (u *User) SetActive(active bool, actor *string, at time.Time) {
	t := at.UTC()
	var by *string
	if actor != nil {
		a := *actor
		by = &a
	}
	if active {
		u.ActiveAt, u.ActiveBy = &t, by
	} else {
		u.InactiveAt, u.InactiveBy = &t, by
	}
	u.Active = active
	u.Touch(actor, at)
}

func (u *User) Clone() *User {
	cp := *u
	return &cp
}

func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UserFields no incluye la contraseña: no se puede filtrar ni ordenar por ella.
var UserFields = sharedQuery.NewRegistry(append(sharedQuery.RecordFields[*User](),
	sharedQuery.Field[*User]{Name: "firstName", Column: "first_name", Kind: sharedQuery.KindString, Get: func(u *User) any { return u.FirstName }},
	sharedQuery.Field[*User]{Name: "lastName", Column: "last_name", Kind: sharedQuery.KindString, Get: func(u *User) any { return u.LastName }},
	sharedQuery.Field[*User]{Name: "email", Column: "email", Kind: sharedQuery.KindString, Get: func(u *User) any { return u.Email }},
	sharedQuery.Field[*User]{Name: "statusId", Column: "status_id", Kind: sharedQuery.KindInt, Get: func(u *User) any { return sharedQuery.Deref(u.StatusID) }},
	sharedQuery.Field[*User]{Name: "active", Column: "active", Kind: sharedQuery.KindBool, Get: func(u *User) any { return u.Active }},
	sharedQuery.Field[*User]{Name: "lastLoginAt", Column: "last_login_at", Kind: sharedQuery.KindTime, Get: func(u *User) any { return sharedQuery.Deref(u.LastLoginAt) }},
	sharedQuery.Field[*User]{Name: "activeAt", Column: "active_at", Kind: sharedQuery.KindTime, Get: func(u *User) any { return sharedQuery.Deref(u.ActiveAt) }},
	sharedQuery.Field[*User]{Name: "inactiveAt", Column: "inactive_at", Kind: sharedQuery.KindTime, Get: func(u *User) any { return sharedQuery.Deref(u.InactiveAt) }},
	sharedQuery.Field[*User]{Name: "activeBy", Column: "active_by", Kind: sharedQuery.KindString, Get: func(u *User) any { return sharedQuery.Deref(u.ActiveBy) }},
	sharedQuery.Field[*User]{Name: "inactiveBy", Column: "inactive_by", Kind: sharedQuery.KindString, Get: func(u *User) any { return sharedQuery.Deref(u.InactiveBy) }},
)...)

type UserFilters struct {
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Active    *bool   `json:"active"`
	StatusID  *int64  `json:"statusId"`
}

func (f UserFilters) Predicates(fs sharedQuery.Fields) []sharedDomain.Criteria {
	return []sharedDomain.Criteria{
		sharedQuery.OptionalText(f.Email, func(v string) sharedDomain.Criteria { return sharedQuery.ContainsFold(fs, "email", v) }),
		sharedQuery.OptionalText(f.FirstName, func(v string) sharedDomain.Criteria { return sharedQuery.ContainsFold(fs, "firstName", v) }),
		sharedQuery.OptionalText(f.LastName, func(v string) sharedDomain.Criteria { return sharedQuery.ContainsFold(fs, "lastName", v) }),
		sharedQuery.Optional(f.Active, func(v bool) sharedDomain.Criteria { return sharedQuery.Equal(fs, "active", v) }),
		sharedQuery.Optional(f.StatusID, func(v int64) sharedDomain.Criteria { return sharedQuery.Equal(fs, "statusId", v) }),
	}
}
