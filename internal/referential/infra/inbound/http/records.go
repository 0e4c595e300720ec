package http

import (
	"time"

	refDomain "github.com/davicafu/orgref/internal/referential/domain"
)

// ReferentialRecord lleva desnormalizados los datos del tipo, subtipo y padre.
type ReferentialRecord struct {
	ID           int64      `json:"id"`
	Code         string     `json:"code"`
	DataType     string     `json:"dataType"`
	Label        string     `json:"label"`
	Description  *string    `json:"description"`
	ExternalCode *string    `json:"externalCode"`
	IconURL      *string    `json:"iconUrl"`
	DisplayOrder int64      `json:"displayOrder"`
	Locale       *string    `json:"locale"`
	Active       bool       `json:"active"`
	StartDate    *string    `json:"startDate"`
	EndDate      *string    `json:"endDate"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`

	TypeID          *int64  `json:"typeId"`
	TypeCode        *string `json:"typeCode"`
	TypeLabel       *string `json:"typeLabel"`
	TypeDescription *string `json:"typeDescription"`
	TypeDataType    *string `json:"typeDataType"`

	SubTypeID          *int64  `json:"subTypeId"`
	SubTypeCode        *string `json:"subTypeCode"`
	SubTypeLabel       *string `json:"subTypeLabel"`
	SubTypeDescription *string `json:"subTypeDescription"`
	SubTypeDataType    *string `json:"subTypeDataType"`

	ParentID          *int64  `json:"parentId"`
	ParentCode        *string `json:"parentCode"`
	ParentLabel       *string `json:"parentLabel"`
	ParentDescription *string `json:"parentDescription"`
	ParentDataType    *string `json:"parentDataType"`
}

// link son los campos desnormalizados de un enlace; todos nil si no se resolvió.
type link struct {
	code, label, description, dataType *string
}

func resolve(id *int64, summaries map[int64]refDomain.Summary) link {
	if id == nil {
		return link{}
	}
	s, ok := summaries[*id]
	if !ok {
		return link{}
	}
	code, label, dataType := s.Code, s.Label, s.DataType
	return link{code: &code, label: &label, description: s.Description, dataType: &dataType}
}

func dateOnly(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}

// ToReferentialRecord mapea el referencial con los resúmenes ya cargados.
func ToReferentialRecord(r *refDomain.Referential, summaries map[int64]refDomain.Summary) ReferentialRecord {
	typ := resolve(r.TypeID, summaries)
	sub := resolve(r.SubTypeID, summaries)
	parent := resolve(r.ParentID, summaries)

	return ReferentialRecord{
		ID:           r.ID,
		Code:         r.Code,
		DataType:     r.DataType,
		Label:        r.Label,
		Description:  r.Description,
		ExternalCode: r.ExternalCode,
		IconURL:      r.IconURL,
		DisplayOrder: r.DisplayOrder,
		Locale:       r.Locale,
		Active:       r.Active,
		StartDate:    dateOnly(r.StartDate),
		EndDate:      dateOnly(r.EndDate),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,

		TypeID:          r.TypeID,
		TypeCode:        typ.code,
		TypeLabel:       typ.label,
		TypeDescription: typ.description,
		TypeDataType:    typ.dataType,

		SubTypeID:          r.SubTypeID,
		SubTypeCode:        sub.code,
		SubTypeLabel:       sub.label,
		SubTypeDescription: sub.description,
		SubTypeDataType:    sub.dataType,

		ParentID:          r.ParentID,
		ParentCode:        parent.code,
		ParentLabel:       parent.label,
		ParentDescription: parent.description,
		ParentDataType:    parent.dataType,
	}
}
