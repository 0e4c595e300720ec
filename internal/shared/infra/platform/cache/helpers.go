package cache

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const asyncTimeout = 200 * time.Millisecond

// AsyncCacheSet escribe en background. Usa un contexto propio porque la petición
// que lo origina puede haber terminado antes.
func AsyncCacheSet(cache Cache, key string, value interface{}, ttl int, log *zap.Logger) {
	if cache == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
		defer cancel()
		if err := cache.Set(ctx, key, value, ttl); err != nil {
			log.Warn("Cache update failed", zap.String("key", key), zap.Error(err))
		}
	}()
}

// AsyncCacheDelete invalida varias claves en background.
func AsyncCacheDelete(cache Cache, keys []string, log *zap.Logger) {
	if cache == nil || len(keys) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
		defer cancel()
		for _, key := range keys {
			if err := cache.Delete(ctx, key); err != nil {
				log.Warn("Cache deletion failed", zap.String("key", key), zap.Error(err))
			}
		}
	}()
}
