package social

import (
	"encoding/json"
	"time"

	"github.com/dropDatabas3/socialpost/internal/cache"
)

// Session keys used by the handshake.
const (
	sessionKeyState     = "state"
	sessionKeyAccount   = "account_id"
	sessionKeyNullify   = "keys_to_nullify"
	defaultSessionTTL   = 10 * time.Minute
	sessionKeyNamespace = "social"
)

// DataHandler persists per-handshake session values, namespaced by
// implementer so concurrent handshakes against different networks cannot
// step on each other's keys.
type DataHandler interface {
	Get(sessionID, implementerID, key string) (string, bool)
	Set(sessionID, implementerID, key, value string)
	Delete(sessionID, implementerID, key string)

	// SetSessionKeysToNullify records which keys must be blanked out if a
	// later validation step fails.
	SetSessionKeysToNullify(sessionID, implementerID string, keys []string)

	// NullifySessionKeys blanks out the previously recorded keys. Calling it
	// with nothing recorded is a no-op.
	NullifySessionKeys(sessionID, implementerID string)
}

// cacheDataHandler implements DataHandler over the cache abstraction.
type cacheDataHandler struct {
	c   cache.Cache
	ttl time.Duration
}

// NewDataHandler builds a cache-backed DataHandler. ttl bounds how long an
// abandoned handshake keeps its session state alive.
func NewDataHandler(c cache.Cache, ttl time.Duration) DataHandler {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &cacheDataHandler{c: c, ttl: ttl}
}

func (h *cacheDataHandler) key(sessionID, implementerID, key string) string {
	return sessionKeyNamespace + ":" + sessionID + ":" + implementerID + ":" + key
}

func (h *cacheDataHandler) Get(sessionID, implementerID, key string) (string, bool) {
	b, ok := h.c.Get(h.key(sessionID, implementerID, key))
	if !ok {
		return "", false
	}
	return string(b), true
}

func (h *cacheDataHandler) Set(sessionID, implementerID, key, value string) {
	h.c.Set(h.key(sessionID, implementerID, key), []byte(value), h.ttl)
}

func (h *cacheDataHandler) Delete(sessionID, implementerID, key string) {
	h.c.Delete(h.key(sessionID, implementerID, key))
}

func (h *cacheDataHandler) SetSessionKeysToNullify(sessionID, implementerID string, keys []string) {
	b, _ := json.Marshal(keys)
	h.c.Set(h.key(sessionID, implementerID, sessionKeyNullify), b, h.ttl)
}

func (h *cacheDataHandler) NullifySessionKeys(sessionID, implementerID string) {
	b, ok := h.c.Get(h.key(sessionID, implementerID, sessionKeyNullify))
	if !ok {
		return
	}
	var keys []string
	if err := json.Unmarshal(b, &keys); err != nil {
		return
	}
	for _, k := range keys {
		h.c.Set(h.key(sessionID, implementerID, k), nil, h.ttl)
	}
	h.c.Delete(h.key(sessionID, implementerID, sessionKeyNullify))
}
