package utils

import (
	"encoding/json"

	"go.uber.org/zap"
)

// UnmarshalAndHandle decodifica data en T y llama a handler. Un payload inválido
// se registra y se descarta; devuelve false en ese caso.
func UnmarshalAndHandle[T any](log *zap.Logger, eventType string, data json.RawMessage, handler func(T)) bool {
	var evt T
	if err := json.Unmarshal(data, &evt); err != nil {
		log.Warn("Failed to unmarshal event data", zap.String("type", eventType), zap.Error(err))
		return false
	}
	handler(evt)
	return true
}
