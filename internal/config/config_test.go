package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FIGMA_TOKEN", "")
	t.Setenv("FETCH_TIMEOUT", "")
	t.Setenv("FETCH_MAX_ATTEMPTS", "")
	t.Setenv("FETCH_BACKOFF_STEP", "")
	t.Setenv("FETCH_WORKERS", "")
	t.Setenv("GROUP_NAME", "")

	cfg := Load()
	assert.Equal(t, "Crags", cfg.GroupName)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 3, cfg.FetchMaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.FetchBackoffStep)
	assert.Equal(t, 1, cfg.FetchWorkers)
	assert.Equal(t, "./src/map-data/crags.ts", cfg.CragsOutput)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("FIGMA_TOKEN", "tok")
	t.Setenv("GROUP_NAME", "EmptyCrags")
	t.Setenv("FETCH_TIMEOUT", "250ms")
	t.Setenv("FETCH_MAX_ATTEMPTS", "5")
	t.Setenv("FETCH_WORKERS", "4")

	cfg := Load()
	assert.Equal(t, "tok", cfg.FigmaToken)
	assert.Equal(t, "EmptyCrags", cfg.GroupName)
	assert.Equal(t, 250*time.Millisecond, cfg.FetchTimeout)
	assert.Equal(t, 5, cfg.FetchMaxAttempts)
	assert.Equal(t, 4, cfg.FetchWorkers)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("FETCH_MAX_ATTEMPTS", "lots")
	t.Setenv("FETCH_WORKERS", "-2")

	cfg := Load()
	assert.Equal(t, 3, cfg.FetchMaxAttempts)
	assert.Equal(t, 1, cfg.FetchWorkers)
}

func TestValidate_RequiresToken(t *testing.T) {
	cfg := Config{FigmaFileID: "f", GroupName: "Crags", CragsOutput: "out.ts"}
	require.Error(t, cfg.Validate())

	cfg.FigmaToken = "tok"
	require.NoError(t, cfg.Validate())
}
