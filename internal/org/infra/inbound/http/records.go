package http

import (
	"time"

	orgDomain "github.com/davicafu/orgref/internal/org/domain"
)

type TeamRecord struct {
	ID            int64      `json:"id"`
	InternalCode  string     `json:"internalCode"`
	ExternalCode  *string    `json:"externalCode"`
	Name          string     `json:"name"`
	Description   *string    `json:"description"`
	Email         *string    `json:"email"`
	Website       *string    `json:"website"`
	TaxID         *string    `json:"taxId"`
	VATNumber     *string    `json:"vatNumber"`
	LogoURL       *string    `json:"logoUrl"`
	FoundedDate   *string    `json:"foundedDate"`
	EmployeeCount *int64     `json:"employeeCount"`
	Notes         *string    `json:"notes"`
	Active        bool       `json:"active"`
	ParentID      *int64     `json:"parentId"`
	TeamTypeID    *int64     `json:"teamTypeId"`
	IndustryID    *int64     `json:"industryId"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt"`
}

// ToTeamRecord serializa la fecha de fundación como fecha sin hora.
func ToTeamRecord(t *orgDomain.Team) TeamRecord {
	var founded *string
	if t.FoundedDate != nil {
		s := t.FoundedDate.Format(time.DateOnly)
		founded = &s
	}
	return TeamRecord{
		ID:            t.ID,
		InternalCode:  t.InternalCode,
		ExternalCode:  t.ExternalCode,
		Name:          t.Name,
		Description:   t.Description,
		Email:         t.Email,
		Website:       t.Website,
		TaxID:         t.TaxID,
		VATNumber:     t.VATNumber,
		LogoURL:       t.LogoURL,
		FoundedDate:   founded,
		EmployeeCount: t.EmployeeCount,
		Notes:         t.Notes,
		Active:        t.Active,
		ParentID:      t.ParentID,
		TeamTypeID:    t.TeamTypeID,
		IndustryID:    t.IndustryID,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
