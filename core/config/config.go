package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsingConfig is returned when environment variables cannot be parsed into the target struct.
var ErrParsingConfig = errors.New("failed to parse config")

var (
	dotenvOnce sync.Once

	cacheMu sync.RWMutex
	cache   = make(map[reflect.Type]any)
)

// Load parses environment variables into cfg. The first call loads a .env
// file from the working directory if one exists. Results are cached per type,
// so later calls for the same type return the first loaded value.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil target", ErrParsingConfig)
	}

	dotenvOnce.Do(func() {
		// Missing .env is the common case in production.
		_ = godotenv.Load()
	})

	typ := reflect.TypeFor[T]()

	cacheMu.RLock()
	if v, ok := cache[typ]; ok {
		cacheMu.RUnlock()
		*cfg = v.(T)
		return nil
	}
	cacheMu.RUnlock()

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if v, ok := cache[typ]; ok {
		*cfg = v.(T)
		return nil
	}

	var loaded T
	if err := env.Parse(&loaded); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	cache[typ] = loaded
	*cfg = loaded
	return nil
}

// MustLoad is like Load but panics on failure. Intended for program startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
