package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Upstream defaults (KorService2).
const TOUR_API_BASE_URL = "https://apis.data.go.kr/B551011/KorService2"
const TOUR_API_MOBILE_OS = "ETC"
const TOUR_API_MOBILE_APP = "MyTrip"
const TOUR_API_TIMEOUT = 10 * time.Second
const TOUR_API_MAX_RETRIES = 3

// Listing defaults
// DEFAULT_ENVIRONMENT keeps internal error detail out of responses.
const DEFAULT_ENVIRONMENT = "production"

const DEFAULT_AREA_CODE = "1"
const DEFAULT_PAGE_NO = 1
const DEFAULT_NUM_OF_ROWS = 12
const DEFAULT_PET_LOOKUP_CONCURRENCY = 8

// Loader defaults
const DEFAULT_LEAD_MARGIN = 100

// Cache config
const PAGE_CACHE_TTL = 5 * time.Minute
const PET_INFO_CACHE_TTL = 6 * time.Hour
const STATS_CACHE_TTL = time.Hour
const STATS_REFRESHER_SCHEDULE_MINUTES = 60

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const AREA_CODE_RESOURCE = "area_code.json"
const AREA_BASED_LIST_RESOURCE = "area_based_list.json"
const SEARCH_KEYWORD_RESOURCE = "search_keyword.json"
const DETAIL_COMMON_RESOURCE = "detail_common.json"
const DETAIL_INTRO_RESOURCE = "detail_intro.json"
const DETAIL_IMAGE_RESOURCE = "detail_image.json"
const DETAIL_PET_TOUR_RESOURCE = "detail_pet_tour.json"

// DefaultRetryBackoff is the wait before retries 1, 2 and 3.
var DefaultRetryBackoff = []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	TourAPI  TourAPIConfig  `mapstructure:"tour_api"`
	Database DatabaseConfig `mapstructure:"database"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Loader   LoaderConfig   `mapstructure:"loader"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Addr              string        `mapstructure:"addr"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	RateLimitDisabled bool          `mapstructure:"rate_limit_disabled"`
	RateLimitRequests int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow   time.Duration `mapstructure:"rate_limit_window"`
}

type TourAPIConfig struct {
	BaseURL              string          `mapstructure:"base_url"`
	ServiceKey           string          `mapstructure:"service_key"`
	MobileApp            string          `mapstructure:"mobile_app"`
	Timeout              time.Duration   `mapstructure:"timeout"`
	MaxRetries           int             `mapstructure:"max_retries"`
	RetryBackoff         []time.Duration `mapstructure:"retry_backoff"`
	UseMock              bool            `mapstructure:"use_mock"`
	PetLookupConcurrency int             `mapstructure:"pet_lookup_concurrency"`
	BreakerMaxFailures   uint32          `mapstructure:"breaker_max_failures"`
	BreakerOpenTimeout   time.Duration   `mapstructure:"breaker_open_timeout"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	Database       string `mapstructure:"database"`
	SSLMode        string `mapstructure:"ssl_mode"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
}

// GetDSN renders the lib/pq connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheConfig struct {
	PageTTL              time.Duration `mapstructure:"page_ttl"`
	PetInfoTTL           time.Duration `mapstructure:"pet_info_ttl"`
	StatsTTL             time.Duration `mapstructure:"stats_ttl"`
	StatsRefreshInterval time.Duration `mapstructure:"stats_refresh_interval"`
}

type LoaderConfig struct {
	ProxyURL     string        `mapstructure:"proxy_url"`
	PageSize     int           `mapstructure:"page_size"`
	LeadMargin   int           `mapstructure:"lead_margin"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// IsDevelopment reports whether internal error detail may be exposed.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}
