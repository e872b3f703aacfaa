package input

import (
	"strings"
	"sync"
)

// Keymap binds key combinations to callbacks
type Keymap struct {
	mu       sync.RWMutex
	bindings map[string]func()
}

// NewKeymap creates an empty keymap
func NewKeymap() *Keymap {
	return &Keymap{bindings: make(map[string]func())}
}

// Normalize canonicalizes a key name; the command modifier maps to ctrl
func Normalize(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, prefix := range []string{"⌘+", "cmd+", "command+"} {
		if strings.HasPrefix(key, prefix) {
			return "ctrl+" + strings.TrimPrefix(key, prefix)
		}
	}
	return key
}

func split(keys string) []string {
	var out []string
	for _, k := range strings.Split(keys, ",") {
		if k = Normalize(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// Bind registers fn for every key in the comma separated list
func (k *Keymap) Bind(keys string, fn func()) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, key := range split(keys) {
		k.bindings[key] = fn
	}
}

// Unbind removes every key in the comma separated list
func (k *Keymap) Unbind(keys string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, key := range split(keys) {
		delete(k.bindings, key)
	}
}

// Bound reports whether key has a binding
func (k *Keymap) Bound(key string) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	_, ok := k.bindings[Normalize(key)]
	return ok
}

// Dispatch runs the binding for key and reports whether there was one
func (k *Keymap) Dispatch(key string) bool {
	k.mu.RLock()
	fn, ok := k.bindings[Normalize(key)]
	k.mu.RUnlock()
	if !ok {
		return false
	}
	fn()
	return true
}
