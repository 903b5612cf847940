package utils

import (
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

// JSON es el codec compartido para los mensajes del bus.
var JSON = jsoniter.ConfigCompatibleWithStandardLibrary

// UnmarshalAndHandle decodifica data en T y llama a handler. Si no se puede decodificar, avisa y descarta.
func UnmarshalAndHandle[T any](log *zap.Logger, data []byte, handler func(T)) {
	var evt T
	if err := JSON.Unmarshal(data, &evt); err != nil {
		log.Warn("Failed to unmarshal event data", zap.Error(err))
		return
	}
	handler(evt)
}
