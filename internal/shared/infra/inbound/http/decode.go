package http

import (
	"bytes"
	"encoding/json"
	"errors"
)

// DecodeJSON decodifica body en cada destino conservando los números como json.Number,
// así los valores de filtros y rangos llegan al compilador sin pasar por float64.
// Un cuerpo vacío deja los destinos intactos.
func DecodeJSON(body []byte, targets ...any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	for _, dst := range targets {
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		if err := dec.Decode(dst); err != nil {
			return err
		}
		if dec.More() {
			return errors.New("unexpected data after JSON body")
		}
	}
	return nil
}
