package domain

import "time"

// Record son los metadatos comunes de toda entidad con borrado lógico.
// DeletedAt y DeletedBy nulos significan "no borrado".
type Record struct {
	ID        int64
	CreatedAt time.Time
	CreatedBy *string
	UpdatedAt *time.Time
	UpdatedBy *string
	DeletedAt *time.Time
	DeletedBy *string
	Version   int64
}

// Entity es lo mínimo que necesitan el compilador de búsquedas y el motor de mutaciones masivas.
type Entity interface {
	Base() *Record
	SetActive(active bool, actor *string, at time.Time)
}

// Base expone los metadatos para que los almacenes puedan leer id y versión.
func (r *Record) Base() *Record {
	return r
}

// Delete marca el registro como borrado. DeletedBy solo se toca si hay actor.
func (r *Record) Delete(actor *string, at time.Time) {
	t := at.UTC()
	r.DeletedAt = &t
	if actor != nil {
		a := *actor
		r.DeletedBy = &a
	}
}

// Restore limpia ambas marcas de borrado.
func (r *Record) Restore() {
	r.DeletedAt = nil
	r.DeletedBy = nil
}

func (r *Record) IsDeleted() bool {
	return r.DeletedAt != nil
}

// Touch registra la última modificación. La versión la incrementa el almacén al persistir.
func (r *Record) Touch(actor *string, at time.Time) {
	t := at.UTC()
	r.UpdatedAt = &t
	if actor != nil {
		a := *actor
		r.UpdatedBy = &a
	}
}
