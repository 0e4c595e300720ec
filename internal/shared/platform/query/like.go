package query

import (
	"regexp"
	"strings"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
)

// EscapeLike escapa los comodines de LIKE para que el valor se compare literalmente.
func EscapeLike(s string) string {
	esc := string(sharedDomain.LikeEscape)
	r := strings.NewReplacer(esc, esc+esc, "%", esc+"%", "_", esc+"_")
	return r.Replace(s)
}

// LikeRegex traduce un patrón LIKE (con escape) a una expresión regular anclada.
// La insensibilidad a mayúsculas la añade quien la usa.
func LikeRegex(pattern string) string {
	var b strings.Builder
	b.WriteString("^")
	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			b.WriteString(regexp.QuoteMeta(string(r)))
			escaped = false
		case r == sharedDomain.LikeEscape:
			escaped = true
		case r == '%':
			b.WriteString("(?s:.*)")
		case r == '_':
			b.WriteString("(?s:.)")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return b.String()
}

// MatchLike evalúa un patrón LIKE insensible a mayúsculas.
func MatchLike(pattern, value string) bool {
	re, err := regexp.Compile("(?i)" + LikeRegex(pattern))
	if err != nil {
		return false
	}
	return re.MatchString(value)
}
