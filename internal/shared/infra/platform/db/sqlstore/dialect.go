package sqlstore

import (
	"fmt"
	"strconv"
)

// Dialect encapsula las diferencias entre SQLite y Postgres que afectan al SQL generado.
type Dialect struct {
	Name        string
	DriverName  string
	placeholder func(n int) string
	types       map[ColumnType]string
	idType      string
	lower       string // función de minúsculas usada en LIKE
}

var (
	SQLite = Dialect{
		Name:        "sqlite",
		DriverName:  "sqlite",
		placeholder: func(int) string { return "?" },
		idType:      "INTEGER PRIMARY KEY AUTOINCREMENT",
		lower:       unicodeLower,
		types: map[ColumnType]string{
			TypeText:   "TEXT",
			TypeInt:    "INTEGER",
			TypeFloat:  "REAL",
			TypeBool:   "BOOLEAN",
			TypeTime:   "DATETIME",
			TypeDate:   "DATE",
			TypeBigInt: "INTEGER",
		},
	}

	Postgres = Dialect{
		Name:        "postgres",
		DriverName:  "pgx",
		placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
		idType:      "BIGSERIAL PRIMARY KEY",
		lower:       "LOWER",
		types: map[ColumnType]string{
			TypeText:   "TEXT",
			TypeInt:    "INTEGER",
			TypeFloat:  "DOUBLE PRECISION",
			TypeBool:   "BOOLEAN",
			TypeTime:   "TIMESTAMPTZ",
			TypeDate:   "DATE",
			TypeBigInt: "BIGINT",
		},
	}
)

// DialectFor resuelve el dialecto a partir del nombre configurado.
func DialectFor(name string) (Dialect, error) {
	switch name {
	case SQLite.Name:
		return SQLite, nil
	case Postgres.Name, "postgre", "postgresql":
		return Postgres, nil
	}
	return Dialect{}, fmt.Errorf("unsupported sql dialect %q", name)
}

// Placeholder devuelve el marcador del argumento n (empezando en 1).
func (d Dialect) Placeholder(n int) string {
	return d.placeholder(n)
}

// Lower envuelve expr en la función de minúsculas del dialecto.
func (d Dialect) Lower(expr string) string {
	fn := d.lower
	if fn == "" {
		fn = "LOWER"
	}
	return fn + "(" + expr + ")"
}
