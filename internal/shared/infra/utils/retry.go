package utils

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Retry ejecuta fn hasta attempts veces, duplicando la espera tras cada fallo.
// Devuelve el último error o ctx.Err() si el contexto se cancela durante la espera.
func Retry(ctx context.Context, log *zap.Logger, op string, attempts int, delay time.Duration, fn func() error) error {
	var err error
	for i := 1; i <= attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts {
			break
		}
		log.Warn("Retrying", zap.String("op", op), zap.Int("attempt", i), zap.Duration("wait", delay), zap.Error(err))

		select {
		case <-time.After(delay):
			delay *= 2
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
