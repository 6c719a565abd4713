package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/llm"
)

func TestLoad_FirstRunWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "smartsched.db"), cfg.DB.Path)
	assert.Equal(t, "@every 1m", cfg.Notify.Cron)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoad_PartialFileIsNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timezone: Asia/Jakarta\ndb:\n  driver: mysql\nllm:\n  provider: gemini\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Asia/Jakarta", cfg.Timezone)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 30000, cfg.LLM.TimeoutMs)
	assert.Equal(t, []int{15, 5, 0}, cfg.Notify.LeadMinutes)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db: [unterminated"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SMARTSCHED_DB", "/tmp/other.db")
	t.Setenv("SMARTSCHED_DEBUG", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.DB.Path)
	assert.True(t, cfg.Debug)
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig(filepath.Dir(path))
	cfg.Lexicon.Tomorrow = []string{"mañana"}
	cfg.LLM.Model = "mistral"
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"mañana"}, got.Lexicon.Tomorrow)
	assert.Equal(t, "mistral", got.LLM.Model)
}

func TestSave_Errors(t *testing.T) {
	assert.Error(t, Save("", DefaultConfig("")))
	assert.Error(t, Save(filepath.Join(t.TempDir(), "c.yaml"), nil))
}

func TestLocation(t *testing.T) {
	cfg := DefaultConfig("")
	assert.Equal(t, time.Local, cfg.Location())

	cfg.Timezone = "Asia/Jakarta"
	assert.Equal(t, "Asia/Jakarta", cfg.Location().String())

	cfg.Timezone = "Not/AZone"
	assert.Equal(t, time.Local, cfg.Location())
}

func TestLeads(t *testing.T) {
	cfg := DefaultConfig("")
	cfg.Notify.LeadMinutes = []int{15, -1, 0}
	assert.Equal(t, []time.Duration{15 * time.Minute, 0}, cfg.Leads())
}

func TestLLMClientConfig(t *testing.T) {
	cfg := DefaultConfig("")
	cfg.LLM.Provider = "gemini"
	cfg.LLM.MaxRetries = 3

	got := cfg.LLMClientConfig("secret")
	assert.Equal(t, llm.ProviderGemini, got.Provider)
	assert.Equal(t, "secret", got.APIKey)
	assert.Equal(t, 3, got.MaxRetries)
	assert.NotEmpty(t, got.Endpoint)
	assert.NotEmpty(t, got.Model)
}

func TestLLMClientConfig_EnvWins(t *testing.T) {
	t.Setenv("SMARTSCHED_LLM_MODEL", "phi3")
	cfg := DefaultConfig("")
	cfg.LLM.Model = "llama3.2"

	assert.Equal(t, "phi3", cfg.LLMClientConfig("").Model)
}

func TestWords_MergesExtras(t *testing.T) {
	cfg := DefaultConfig("")
	cfg.Lexicon.Tomorrow = []string{"mañana"}

	w := cfg.Words()
	assert.Contains(t, w.Tomorrow, "mañana")
	assert.Contains(t, w.Tomorrow, "tomorrow")
}
