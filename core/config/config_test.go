package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hajimekit/hajime/core/config"
)

type defaultsConfig struct {
	Addr    string        `env:"CFGTEST_DEFAULTS_ADDR" envDefault:":8080"`
	Timeout time.Duration `env:"CFGTEST_DEFAULTS_TIMEOUT" envDefault:"15s"`
}

type envConfig struct {
	Name string `env:"CFGTEST_ENV_NAME" envDefault:"fallback"`
}

type cachedConfig struct {
	Value string `env:"CFGTEST_CACHED_VALUE"`
}

type requiredConfig struct {
	Secret string `env:"CFGTEST_REQUIRED_SECRET,required"`
}

func TestLoadDefaults(t *testing.T) {
	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CFGTEST_ENV_NAME", "from-env")

	var cfg envConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from-env", cfg.Name)
}

func TestLoadCachesPerType(t *testing.T) {
	t.Setenv("CFGTEST_CACHED_VALUE", "first")

	var first cachedConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("CFGTEST_CACHED_VALUE", "second")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)
}

func TestLoadRequiredMissing(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	assert.Panics(t, func() {
		config.MustLoad(&requiredConfig{})
	})
}
