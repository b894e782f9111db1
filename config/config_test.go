package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "local", cfg.MediaBackend)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Contains(t, cfg.AllowedTags, "tech")
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("GRIDDLE_ADDR", ":9090")
	t.Setenv("GRIDDLE_JWT_TTL", "2h")
	t.Setenv("GRIDDLE_TAGS", "go, databases ,")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"go", "databases"}, cfg.AllowedTags)
}
