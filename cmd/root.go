package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/devmatch/internal/ai"
	"github.com/spigell/devmatch/internal/ai/gemini"
	"github.com/spigell/devmatch/internal/ai/openai"
	"github.com/spigell/devmatch/internal/assessment"
	"github.com/spigell/devmatch/internal/cache"
	"github.com/spigell/devmatch/internal/github"
	"github.com/spigell/devmatch/internal/jobs"
	"github.com/spigell/devmatch/internal/profile"
	"github.com/spigell/devmatch/internal/store"
)

const (
	app       = "devmatch"
	envPrefix = "DEVMATCH"

	defaultStoreDSN = app + ".db"
)

type Config struct {
	GitHub        *GitHubConfig  `mapstructure:"github"`
	AI            *AIConfig      `mapstructure:"ai"`
	Jooble        *JoobleConfig  `mapstructure:"jooble"`
	Store         store.Config   `mapstructure:"store"`
	Cache         *CacheConfig   `mapstructure:"cache"`
	Filters       *FiltersConfig `mapstructure:"filters"`
	HTTPTimeout   time.Duration  `mapstructure:"http-timeout"`
	SourceTimeout time.Duration  `mapstructure:"source-timeout"`
}

type GitHubConfig struct {
	Token                   string        `mapstructure:"token"`
	TokenFile               string        `mapstructure:"token-file"`
	APIURL                  string        `mapstructure:"api-url"`
	PerPage                 int           `mapstructure:"per-page"`
	MaxPages                int           `mapstructure:"max-pages"`
	Pacing                  time.Duration `mapstructure:"pacing"`
	ContributorsConcurrency int           `mapstructure:"contributors-concurrency"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
	OpenAI   *OpenAIConfig `mapstructure:"openai"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type OpenAIConfig struct {
	APIKey       string   `mapstructure:"api-key"`
	APIKeyFile   string   `mapstructure:"api-key-file"`
	Model        string   `mapstructure:"model"`
	BaseURL      string   `mapstructure:"base-url"`
	MaxTokens    int64    `mapstructure:"max-tokens"`
	Temperature  *float64 `mapstructure:"temperature"`
	MaxRetries   int      `mapstructure:"max-retries"`
	MaxLogLength int      `mapstructure:"max-log-length"`
}

type JoobleConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	APIURL     string `mapstructure:"api-url"`
	Radius     int    `mapstructure:"radius"`
}

type CacheConfig struct {
	Enabled      bool `mapstructure:"enabled"`
	cache.Config `mapstructure:",squash"`
}

type FiltersConfig struct {
	ExcludeCompanies []string `mapstructure:"exclude-companies"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "devmatch analyzes a GitHub profile and ranks open developer jobs against it",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := configure(viper.GetViper()); err != nil {
		log.Fatal(err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is devmatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("color", "auto", "colored output: auto, always or never")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("color", rootCmd.PersistentFlags().Lookup("color"))
}

var envKeyReplacer = strings.NewReplacer("-", "_", ".", "_")

// Well-known variable names accepted next to the prefixed ones.
var envAliases = map[string][]string{
	"github.token":      {"GITHUB_TOKEN"},
	"ai.gemini.api-key": {"GEMINI_API_KEY"},
	"ai.openai.api-key": {"OPENAI_API_KEY"},
	"jooble.api-key":    {"JOOBLE_API_KEY"},
}

// configure sets defaults for every key and binds the environment.
func configure(v *viper.Viper) error {
	for key, names := range envAliases {
		prefixed := envPrefix + "_" + envKeyReplacer.Replace(strings.ToUpper(key))
		if err := v.BindEnv(append([]string{key, prefixed}, names...)...); err != nil {
			return fmt.Errorf("binding %s environment variable: %w", key, err)
		}
	}

	v.SetDefault("github.token-file", "")
	v.SetDefault("github.api-url", "")
	v.SetDefault("github.per-page", github.MaxPerPage)
	v.SetDefault("github.max-pages", profile.DefaultMaxPages)
	v.SetDefault("github.pacing", profile.DefaultPacing)
	v.SetDefault("github.contributors-concurrency", 1)

	v.SetDefault("ai.provider", ai.ProviderGemini)
	v.SetDefault("ai.timeout", assessment.DefaultTimeout)
	v.SetDefault("ai.gemini.api-key-file", "")
	v.SetDefault("ai.gemini.model", gemini.DefaultModel)
	v.SetDefault("ai.gemini.max-retries", 3)
	v.SetDefault("ai.gemini.max-log-length", 200)
	v.SetDefault("ai.openai.api-key-file", "")
	v.SetDefault("ai.openai.model", openai.DefaultModel)
	v.SetDefault("ai.openai.base-url", "")
	v.SetDefault("ai.openai.max-tokens", openai.DefaultMaxTokens)
	v.SetDefault("ai.openai.temperature", openai.DefaultTemperature)
	v.SetDefault("ai.openai.max-retries", 2)
	v.SetDefault("ai.openai.max-log-length", 200)

	v.SetDefault("jooble.api-key-file", "")
	v.SetDefault("jooble.api-url", "")
	v.SetDefault("jooble.radius", 50)

	v.SetDefault("store.driver", store.DriverSQLite)
	v.SetDefault("store.dsn", defaultStoreDSN)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.addr", "localhost:6379")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl", cache.DefaultTTL)

	v.SetDefault("filters.exclude-companies", []string{})

	v.SetDefault("http-timeout", 10*time.Second)
	v.SetDefault("source-timeout", jobs.DefaultSourceTimeout)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	return nil
}

func initConfig() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Without an explicit --config every setting has a default.
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		// We can't proceed if the config file parsed with error.
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	err := v.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
