package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/devmatch/internal/errs"
	"github.com/spigell/devmatch/internal/posting"
	"github.com/spigell/devmatch/internal/store"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	require.NoError(t, configure(v))
	return v
}

func TestDecodeConfigDefaults(t *testing.T) {
	config, err := decodeConfig(newViper(t))
	require.NoError(t, err)

	require.NotNil(t, config.GitHub)
	assert.Equal(t, 100, config.GitHub.PerPage)
	assert.Equal(t, 5, config.GitHub.MaxPages)
	assert.Equal(t, 100*time.Millisecond, config.GitHub.Pacing)
	assert.Equal(t, 1, config.GitHub.ContributorsConcurrency)

	require.NotNil(t, config.AI)
	assert.Equal(t, "gemini", config.AI.Provider)
	require.NotNil(t, config.AI.OpenAI)
	assert.Equal(t, int64(1000), config.AI.OpenAI.MaxTokens)
	require.NotNil(t, config.AI.OpenAI.Temperature)
	assert.InDelta(t, 0.3, *config.AI.OpenAI.Temperature, 1e-9)

	assert.Equal(t, "sqlite", config.Store.Driver)
	assert.Equal(t, "devmatch.db", config.Store.DSN)
	assert.Equal(t, 30*time.Second, config.AI.Timeout)
	require.NotNil(t, config.Cache)
	assert.False(t, config.Cache.Enabled)
	assert.Equal(t, time.Hour, config.Cache.TTL)
	assert.Equal(t, 10*time.Second, config.HTTPTimeout)
}

func TestDecodeConfigFromEnvironment(t *testing.T) {
	t.Setenv("DEVMATCH_GITHUB_PACING", "250ms")
	t.Setenv("DEVMATCH_STORE_DRIVER", "sqlite")
	t.Setenv("DEVMATCH_AI_PROVIDER", "openai")
	t.Setenv("JOOBLE_API_KEY", "jooble-key")
	t.Setenv("DEVMATCH_GITHUB_TOKEN", "gh-token")

	config, err := decodeConfig(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, config.GitHub.Pacing)
	assert.Equal(t, "sqlite", config.Store.Driver)
	assert.Equal(t, "openai", config.AI.Provider)
	assert.Equal(t, "jooble-key", config.Jooble.APIKey)
	assert.Equal(t, "gh-token", config.GitHub.Token)
}

func TestDecodeConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devmatch.yaml")
	content := `
github:
  max-pages: 2
ai:
  openai:
    temperature: 0
filters:
  exclude-companies: [Initech, Umbrella]
cache:
  enabled: true
  addr: redis:6379
  ttl: 30m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	v := newViper(t)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	config, err := decodeConfig(v)
	require.NoError(t, err)

	assert.Equal(t, 2, config.GitHub.MaxPages)
	require.NotNil(t, config.AI.OpenAI.Temperature)
	assert.Equal(t, 0.0, *config.AI.OpenAI.Temperature)
	assert.Equal(t, []string{"Initech", "Umbrella"}, config.Filters.ExcludeCompanies)
	assert.True(t, config.Cache.Enabled)
	assert.Equal(t, "redis:6379", config.Cache.Addr)
	assert.Equal(t, 30*time.Minute, config.Cache.TTL)
}

func TestNewGeneratorWithoutKey(t *testing.T) {
	for _, provider := range []string{"gemini", "openai"} {
		t.Run(provider, func(t *testing.T) {
			cfg := &AIConfig{Provider: provider, Gemini: &GeminiConfig{}, OpenAI: &OpenAIConfig{}}
			_, err := newGenerator(context.Background(), cfg, zap.NewNop())
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrMisconfigured))
		})
	}
}

func TestNewGeneratorUnknownProvider(t *testing.T) {
	_, err := newGenerator(context.Background(), &AIConfig{Provider: "llama"}, zap.NewNop())
	assert.True(t, errors.Is(err, errs.ErrMisconfigured))
}

func TestNewGeneratorOpenAI(t *testing.T) {
	cfg := &AIConfig{Provider: "openai", OpenAI: &OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o-mini"}}
	g, err := newGenerator(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", g.Model())
}

func TestParseExpiry(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	got, err := parseExpiry("2025-04-01T00:00:00Z", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = parseExpiry("48h", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(48*time.Hour), got)

	_, err = parseExpiry("next week", now)
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, arg := range []string{"0", "-1", "abc"} {
		_, err := parseID(arg)
		assert.True(t, errors.Is(err, errs.ErrInvalidInput), arg)
	}
}

func TestPostingInput(t *testing.T) {
	f := postingsCreateCmd.Flags()

	require.NoError(t, f.Parse([]string{
		"--title", "Go Developer",
		"--company", "Acme",
		"--required", "Go,Docker",
		"--level", "Senior",
		"--salary-min", "50000",
	}))

	in, err := postingInput(f)
	require.NoError(t, err)

	assert.Equal(t, "Go Developer", in.Title)
	assert.Equal(t, []string{"Go", "Docker"}, in.RequiredSkills)
	require.NotNil(t, in.ExperienceLevel)
	assert.Equal(t, "Senior", *in.ExperienceLevel)
	require.NotNil(t, in.SalaryMin)
	assert.Equal(t, 50000.0, *in.SalaryMin)
	assert.Nil(t, in.SalaryMax)
	assert.Nil(t, in.Location)
	assert.Equal(t, posting.OnSite, in.RemoteOptions)
	assert.NoError(t, in.Validate())
}

func TestDefaultStorePersistsAcrossRuns(t *testing.T) {
	t.Chdir(t.TempDir())

	config, err := decodeConfig(newViper(t))
	require.NoError(t, err)
	ctx := context.Background()

	first, err := store.Open(ctx, config.Store, zap.NewNop())
	require.NoError(t, err)
	created, err := first.Create(ctx, store.PostingInput{Title: "Go Developer", Company: "Acme", RequiredSkills: []string{"Go"}})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := store.Open(ctx, config.Store, zap.NewNop())
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go Developer", got.Title)
	assert.FileExists(t, "devmatch.db")
}

func TestFailure(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: errs.NotFound("store", "get"), want: "posting not found"},
		{err: errs.Invalid("store", "create", nil), want: "invalid posting"},
		{err: errs.Misconfigured("store", "open", nil), want: "postings create is misconfigured"},
		{err: errs.Upstream("store", "create", 0, nil), want: "postings create failed: upstream unavailable"},
		{err: errors.New("boom"), want: "postings create failed"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, failure("posting", "postings create", tt.err))
	}
}
