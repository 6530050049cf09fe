package gemini

import (
	"errors"
	"strings"
	"sync/atomic"
)

var ErrNoAPIKey = errors.New("gemini: no API key configured")

// KeyPool rotates over a fixed set of API keys. Safe for concurrent use; the
// rotation counter is a single atomic increment.
type KeyPool struct {
	keys    []string
	counter atomic.Uint64
}

func NewKeyPool(keys []string) (*KeyPool, error) {
	clean := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			clean = append(clean, k)
		}
	}
	if len(clean) == 0 {
		return nil, ErrNoAPIKey
	}
	return &KeyPool{keys: clean}, nil
}

// Next returns the key for the next request.
func (p *KeyPool) Next() string {
	n := p.counter.Add(1) - 1
	return p.keys[n%uint64(len(p.keys))]
}

func (p *KeyPool) Size() int {
	return len(p.keys)
}
