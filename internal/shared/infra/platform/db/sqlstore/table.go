package sqlstore

import (
	"fmt"
	"reflect"
	"strings"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
)

type ColumnType int

const (
	TypeText ColumnType = iota
	TypeInt
	TypeBigInt
	TypeFloat
	TypeBool
	TypeTime
	TypeDate
)

// Column define una columna propia de la entidad (las de auditoría se añaden solas).
type Column struct {
	Name     string
	Type     ColumnType
	Nullable bool
	Unique   bool
	Default  string // literal SQL, ej. "1" o "'es'"
	Ref      string // tabla referenciada por una FK, ej. "referentials"
}

// Table describe cómo se persiste la entidad E.
// Bind devuelve punteros a los campos de E en el mismo orden que Columns;
// se usan tanto para Scan como para construir los argumentos de INSERT/UPDATE.
type Table[E sharedDomain.Entity] struct {
	Name    string
	Columns []Column
	New     func() E
	Bind    func(E) []any
}

var auditColumns = []Column{
	{Name: "created_at", Type: TypeTime},
	{Name: "created_by", Type: TypeText, Nullable: true},
	{Name: "updated_at", Type: TypeTime, Nullable: true},
	{Name: "updated_by", Type: TypeText, Nullable: true},
	{Name: "deleted_at", Type: TypeTime, Nullable: true},
	{Name: "deleted_by", Type: TypeText, Nullable: true},
	{Name: "version", Type: TypeBigInt, Default: "0"},
}

func auditTargets(r *sharedDomain.Record) []any {
	return []any{&r.CreatedAt, &r.CreatedBy, &r.UpdatedAt, &r.UpdatedBy, &r.DeletedAt, &r.DeletedBy, &r.Version}
}

// selectColumns: id, columnas propias y columnas de auditoría.
func (t Table[E]) selectColumns() []string {
	cols := []string{"id"}
	for _, c := range t.Columns {
		cols = append(cols, c.Name)
	}
	for _, c := range auditColumns {
		cols = append(cols, c.Name)
	}
	return cols
}

func (t Table[E]) scanTargets(e E) []any {
	base := e.Base()
	targets := []any{&base.ID}
	targets = append(targets, t.Bind(e)...)
	return append(targets, auditTargets(base)...)
}

// writeValues son los valores de todas las columnas salvo id, en orden de selectColumns()[1:].
func (t Table[E]) writeValues(e E) []any {
	ptrs := append(t.Bind(e), auditTargets(e.Base())...)
	values := make([]any, len(ptrs))
	for i, p := range ptrs {
		values[i] = deref(p)
	}
	return values
}

// deref sigue punteros hasta el valor base; un puntero nulo se traduce a NULL.
func deref(p any) any {
	v := reflect.ValueOf(p)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	return v.Interface()
}

// Statements genera el DDL de la tabla para el dialecto indicado.
func (t Table[E]) Statements(d Dialect) []string {
	defs := []string{"id " + d.idType}
	cols := append(append([]Column{}, t.Columns...), auditColumns...)
	for _, c := range cols {
		def := fmt.Sprintf("%s %s", c.Name, d.types[c.Type])
		if !c.Nullable {
			def += " NOT NULL"
		}
		if c.Unique {
			def += " UNIQUE"
		}
		if c.Default != "" {
			def += " DEFAULT " + c.Default
		}
		if c.Ref != "" {
			def += fmt.Sprintf(" REFERENCES %s(id)", c.Ref)
		}
		defs = append(defs, def)
	}

	return []string{
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", t.Name, strings.Join(defs, ",\n\t")),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_deleted_at ON %s (deleted_at)", t.Name, t.Name),
	}
}
