package domain

import "errors"

// ---------- Errores de dominio ----------
var (
	// ErrVersionConflict: otro proceso modificó el registro entre la lectura y la escritura.
	ErrVersionConflict = errors.New("stale version: record was modified concurrently")
	ErrEmptyIDs        = errors.New("ids must not be empty")
	ErrNotFound        = errors.New("record not found")
)
