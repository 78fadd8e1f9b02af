// Package cache define la abstracción de cache usada por el servicio,
// principalmente para el estado de sesión del handshake OAuth2.
//
// Backends:
//   - memory (in-process, desarrollo/testing)
//   - redis (distribuido, producción)
package cache

import "time"

// Cache expone las operaciones mínimas que necesita el servicio.
// Get retorna ok=false tanto para key inexistente como expirada.
type Cache interface {
	Get(key string) (value []byte, ok bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
}
