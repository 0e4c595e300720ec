package query

import (
	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
)

// Kind es el tipo nativo de un campo, usado para convertir los valores que llegan en JSON.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	}
	return "unknown"
}

// Ordered indica si admite comparaciones <, >, BETWEEN.
func (k Kind) Ordered() bool {
	return k != KindBool
}

// Nombres reservados que el compilador usa para id y borrado lógico.
const (
	FieldID        = "id"
	FieldDeletedAt = "deletedAt"
)

// Field describe un campo consultable de la entidad E.
// Get devuelve nil si el valor no está informado; si no, string, int64, float64, bool o time.Time.
type Field[E any] struct {
	Name   string
	Column string
	Kind   Kind
	Get    func(E) any
}

// FieldRef es la vista no genérica de un campo.
type FieldRef struct {
	Name   string
	Column string
	Kind   Kind
}

// Fields resuelve campos por nombre. Es lo que reciben los filtros específicos de cada entidad.
type Fields interface {
	Lookup(name string) (FieldRef, bool)
}

// Registry sustituye a la reflexión: se construye una vez por entidad al arrancar.
type Registry[E any] struct {
	fields   []Field[E]
	byName   map[string]int
	byColumn map[string]int
}

func NewRegistry[E any](fields ...Field[E]) *Registry[E] {
	r := &Registry[E]{
		fields:   fields,
		byName:   make(map[string]int, len(fields)),
		byColumn: make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		r.byName[f.Name] = i
		r.byColumn[f.Column] = i
	}
	return r
}

// Lookup busca primero por nombre público y después por nombre de columna.
func (r *Registry[E]) Lookup(name string) (FieldRef, bool) {
	f, ok := r.field(name)
	if !ok {
		return FieldRef{}, false
	}
	return FieldRef{Name: f.Name, Column: f.Column, Kind: f.Kind}, true
}

func (r *Registry[E]) field(name string) (Field[E], bool) {
	if i, ok := r.byName[name]; ok {
		return r.fields[i], true
	}
	if i, ok := r.byColumn[name]; ok {
		return r.fields[i], true
	}
	return Field[E]{}, false
}

// Accessor devuelve una función de lectura de campos de rec para la evaluación en memoria.
func (r *Registry[E]) Accessor(rec E) Accessor {
	return func(name string) (any, bool) {
		f, ok := r.field(name)
		if !ok {
			return nil, false
		}
		return f.Get(rec), true
	}
}

// Columns lista las columnas en el orden de declaración.
func (r *Registry[E]) Columns() []string {
	cols := make([]string, len(r.fields))
	for i, f := range r.fields {
		cols[i] = f.Column
	}
	return cols
}

// RecordFields son los campos de auditoría y borrado lógico comunes a todas las entidades.
func RecordFields[E sharedDomain.Entity]() []Field[E] {
	return []Field[E]{
		{Name: FieldID, Column: "id", Kind: KindInt, Get: func(e E) any { return e.Base().ID }},
		{Name: "createdAt", Column: "created_at", Kind: KindTime, Get: func(e E) any { return e.Base().CreatedAt }},
		{Name: "createdBy", Column: "created_by", Kind: KindString, Get: func(e E) any { return Deref(e.Base().CreatedBy) }},
		{Name: "updatedAt", Column: "updated_at", Kind: KindTime, Get: func(e E) any { return Deref(e.Base().UpdatedAt) }},
		{Name: "updatedBy", Column: "updated_by", Kind: KindString, Get: func(e E) any { return Deref(e.Base().UpdatedBy) }},
		{Name: FieldDeletedAt, Column: "deleted_at", Kind: KindTime, Get: func(e E) any { return Deref(e.Base().DeletedAt) }},
		{Name: "deletedBy", Column: "deleted_by", Kind: KindString, Get: func(e E) any { return Deref(e.Base().DeletedBy) }},
		{Name: "version", Column: "version", Kind: KindInt, Get: func(e E) any { return e.Base().Version }},
	}
}

// Deref devuelve nil para punteros nulos y el valor apuntado en otro caso.
func Deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
