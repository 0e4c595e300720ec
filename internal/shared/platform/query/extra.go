package query

import (
	"strings"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
)

// Helpers para construir los predicados específicos de cada entidad.
// Devuelven nil si el campo no existe; And/Or descartan los nil.

// Equal compara por igualdad con un valor ya tipado.
func Equal(f Fields, name string, v any) sharedDomain.Criteria {
	ref, ok := f.Lookup(name)
	if !ok {
		return nil
	}
	return criterion(ref, sharedDomain.OpEq, v)
}

// ContainsFold busca la subcadena sin distinguir mayúsculas.
func ContainsFold(f Fields, name, v string) sharedDomain.Criteria {
	ref, ok := f.Lookup(name)
	if !ok || ref.Kind != KindString {
		return nil
	}
	return criterion(ref, sharedDomain.OpLike, "%"+EscapeLike(strings.ToLower(v))+"%")
}

// EqualFold compara por igualdad sin distinguir mayúsculas.
func EqualFold(f Fields, name, v string) sharedDomain.Criteria {
	ref, ok := f.Lookup(name)
	if !ok || ref.Kind != KindString {
		return nil
	}
	return criterion(ref, sharedDomain.OpLike, EscapeLike(strings.ToLower(v)))
}

// Optional ayuda a los filtros de entidad: solo construye el predicado si el puntero está informado.
func Optional[T any](p *T, build func(T) sharedDomain.Criteria) sharedDomain.Criteria {
	if p == nil {
		return nil
	}
	return build(*p)
}

// OptionalText ignora también las cadenas vacías o en blanco.
func OptionalText(p *string, build func(string) sharedDomain.Criteria) sharedDomain.Criteria {
	if p == nil || strings.TrimSpace(*p) == "" {
		return nil
	}
	return build(strings.TrimSpace(*p))
}
