package query

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Formatos de fecha aceptados en filtros y rangos.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Coerce convierte un valor decodificado de JSON al tipo nativo del campo.
// ok es false si la conversión no es posible; el filtro que lo contiene se descarta.
func Coerce(v any, kind Kind) (any, bool) {
	if v == nil {
		return nil, false
	}
	switch kind {
	case KindString:
		s, ok := v.(string)
		return s, ok
	case KindInt:
		return toInt64(v)
	case KindFloat:
		return toFloat64(v)
	case KindBool:
		switch b := v.(type) {
		case bool:
			return b, true
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(b))
			return parsed, err == nil
		}
	case KindTime:
		switch t := v.(type) {
		case time.Time:
			return t.UTC(), true
		case string:
			return parseTime(t)
		}
	}
	return nil, false
}

// CoerceList convierte cada elemento de una lista; falla si el valor no es lista o algún elemento falla.
func CoerceList(v any, kind Kind) ([]any, bool) {
	raw, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]any, 0, len(raw))
	for _, item := range raw {
		c, ok := Coerce(item, kind)
		if !ok {
			return nil, false
		}
		out = append(out, c)
	}
	return out, true
}

func toInt64(v any) (any, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return floatToInt64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return nil, false
		}
		return floatToInt64(f)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	}
	return nil, false
}

// floatToInt64 acepta solo enteros exactos dentro del rango de int64; NaN también se rechaza.
func floatToInt64(f float64) (any, bool) {
	if f != math.Trunc(f) || f < -(1<<63) || f >= 1<<63 {
		return nil, false
	}
	return int64(f), true
}

func toFloat64(v any) (any, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return nil, false
}

func parseTime(s string) (any, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return nil, false
}
