package http

import (
	"time"

	accessDomain "github.com/davicafu/orgref/internal/access/domain"
)

type RoleRecord struct {
	ID          int64      `json:"id"`
	Code        string     `json:"code"`
	Label       string     `json:"label"`
	Description *string    `json:"description"`
	Active      bool       `json:"active"`
	Admin       bool       `json:"admin"`
	ParentID    *int64     `json:"parentId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}

func ToRoleRecord(r *accessDomain.Role) RoleRecord {
	return RoleRecord{
		ID:          r.ID,
		Code:        r.Code,
		Label:       r.Label,
		Description: r.Description,
		Active:      r.Active,
		Admin:       r.Admin,
		ParentID:    r.ParentID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// UserRecord no lleva la contraseña.
type UserRecord struct {
	ID          int64      `json:"id"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	StatusID    *int64     `json:"statusId"`
	Active      bool       `json:"active"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
	ActiveAt    *time.Time `json:"activeAt"`
	InactiveAt  *time.Time `json:"inactiveAt"`
	ActiveBy    *string    `json:"activeBy"`
	InactiveBy  *string    `json:"inactiveBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}

func ToUserRecord(u *accessDomain.User) UserRecord {
	return UserRecord{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		StatusID:    u.StatusID,
		Active:      u.Active,
		LastLoginAt: u.LastLoginAt,
		ActiveAt:    u.ActiveAt,
		InactiveAt:  u.InactiveAt,
		ActiveBy:    u.ActiveBy,
		InactiveBy:  u.InactiveBy,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
