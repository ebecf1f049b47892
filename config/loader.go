package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml, merges configs/config.<env>.yaml on top and
// applies environment overrides. A missing base file is not an error.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// APP_ENVIRONMENT wins over app.environment only when it is set.
	env := os.Getenv("APP_ENVIRONMENT")
	overlay := env
	if overlay == "" {
		overlay = v.GetString("app.environment")
	}
	if overlay != "" {
		v.SetConfigName(fmt.Sprintf("config.%s", overlay))
		_ = v.MergeInConfig()
	}

	return finish(v, env)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v, os.Getenv("APP_ENVIRONMENT"))
}

func finish(v *viper.Viper, env string) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if env != "" {
		cfg.App.Environment = env
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	paths := []string{".env", "../.env", "../../.env"}
	if root := findProjectRoot(); root != "" {
		paths = append(paths, filepath.Join(root, ".env"))
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok || !strings.Contains(strVal, "$") {
			continue
		}
		if expanded := os.ExpandEnv(strVal); expanded != strVal {
			v.Set(key, expanded)
		}
	}
}

// overrideEmptyConfig fills secrets that are usually only present in the environment.
func overrideEmptyConfig(cfg *Config) {
	if cfg.TourAPI.ServiceKey == "" {
		if val := os.Getenv("TOUR_API_KEY"); val != "" {
			cfg.TourAPI.ServiceKey = val
		}
	}
	if cfg.Database.Postgres.User == "" {
		if val := os.Getenv("DB_USER"); val != "" {
			cfg.Database.Postgres.User = val
		}
	}
	if cfg.Database.Postgres.Password == "" {
		if val := os.Getenv("DB_PASSWORD"); val != "" {
			cfg.Database.Postgres.Password = val
		}
	}
	if cfg.Database.Redis.Password == "" {
		if val := os.Getenv("REDIS_PASSWORD"); val != "" {
			cfg.Database.Redis.Password = val
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "tour-server"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = DEFAULT_ENVIRONMENT
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 5 * time.Second
	}
	if cfg.Server.RateLimitRequests == 0 {
		cfg.Server.RateLimitRequests = 100
	}
	if cfg.Server.RateLimitWindow == 0 {
		cfg.Server.RateLimitWindow = time.Minute
	}

	if cfg.TourAPI.BaseURL == "" {
		cfg.TourAPI.BaseURL = TOUR_API_BASE_URL
	}
	if cfg.TourAPI.MobileApp == "" {
		cfg.TourAPI.MobileApp = TOUR_API_MOBILE_APP
	}
	if cfg.TourAPI.Timeout == 0 {
		cfg.TourAPI.Timeout = TOUR_API_TIMEOUT
	}
	if cfg.TourAPI.MaxRetries == 0 {
		cfg.TourAPI.MaxRetries = TOUR_API_MAX_RETRIES
	}
	if len(cfg.TourAPI.RetryBackoff) == 0 {
		cfg.TourAPI.RetryBackoff = append([]time.Duration(nil), DefaultRetryBackoff...)
	}
	if cfg.TourAPI.PetLookupConcurrency == 0 {
		cfg.TourAPI.PetLookupConcurrency = DEFAULT_PET_LOOKUP_CONCURRENCY
	}
	if cfg.TourAPI.BreakerMaxFailures == 0 {
		cfg.TourAPI.BreakerMaxFailures = 5
	}
	if cfg.TourAPI.BreakerOpenTimeout == 0 {
		cfg.TourAPI.BreakerOpenTimeout = 30 * time.Second
	}

	if cfg.Database.Postgres.Host == "" {
		cfg.Database.Postgres.Host = "localhost"
	}
	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.Database == "" {
		cfg.Database.Postgres.Database = "tours"
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 10
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Redis.Addr == "" {
		cfg.Database.Redis.Addr = "redis:6379"
	}

	if cfg.Cache.PageTTL == 0 {
		cfg.Cache.PageTTL = PAGE_CACHE_TTL
	}
	if cfg.Cache.PetInfoTTL == 0 {
		cfg.Cache.PetInfoTTL = PET_INFO_CACHE_TTL
	}
	if cfg.Cache.StatsTTL == 0 {
		cfg.Cache.StatsTTL = STATS_CACHE_TTL
	}
	if cfg.Cache.StatsRefreshInterval == 0 {
		cfg.Cache.StatsRefreshInterval = STATS_REFRESHER_SCHEDULE_MINUTES * time.Minute
	}

	if cfg.Loader.ProxyURL == "" {
		cfg.Loader.ProxyURL = "http://localhost:8080"
	}
	if cfg.Loader.PageSize == 0 {
		cfg.Loader.PageSize = DEFAULT_NUM_OF_ROWS
	}
	if cfg.Loader.LeadMargin == 0 {
		cfg.Loader.LeadMargin = DEFAULT_LEAD_MARGIN
	}
	if cfg.Loader.PollInterval == 0 {
		cfg.Loader.PollInterval = 200 * time.Millisecond
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if cfg.TourAPI.BaseURL == "" {
		return fmt.Errorf("tour_api.base_url is required")
	}
	if !cfg.TourAPI.UseMock && cfg.TourAPI.ServiceKey == "" {
		return fmt.Errorf("tour_api.service_key is required (set TOUR_API_KEY) unless tour_api.use_mock is enabled")
	}
	if cfg.TourAPI.MaxRetries < 0 {
		return fmt.Errorf("tour_api.max_retries must not be negative")
	}
	if cfg.Loader.PageSize <= 0 {
		return fmt.Errorf("loader.page_size must be positive")
	}
	if cfg.Database.Postgres.Enabled && cfg.Database.Postgres.User == "" {
		return fmt.Errorf("database.postgres.user is required when postgres is enabled")
	}
	return nil
}
