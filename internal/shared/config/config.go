package config

import (
	"fmt"
	"strconv"
	"time"

	"sectorgen/internal/shared/utils"
	"sectorgen/internal/warpgraph"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Frontend  FrontendConfig
	Logging   LoggingConfig
	RateLimit RateLimitConfig
	Universe  UniverseConfig
	Metrics   MetricsConfig
}

type RedisConfig struct {
	Enabled   bool
	URL       string
	Host      string
	Port      string
	Password  string
	DB        int
	KeyPrefix string
}

type ServerConfig struct {
	Port         string
	URL          string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MigrationsPath  string
}

type FrontendConfig struct {
	URL       string
	CORSDebug bool
}

type LoggingConfig struct {
	Level      string
	Format     string
	JSONFormat bool
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
	TrustProxy        bool
}

// UniverseConfig holds the generator tunables and the fixed inputs of the
// shared and single-player universes.
type UniverseConfig struct {
	SectorCount             int
	Seed                    int64
	SinglePlayerSectorCount int
	SinglePlayerSeed        int64
	MaxAdjacentSectors      int
	SectorsPerRegion        int
	NumStarMalls            int
	NumSeedPlanets          int
	OneWayFraction          float64
	MaxPathDepth            int
	VerifyPostconditions    bool
	BootstrapOnStart        bool
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

var GlobalConfig *Config

func Init() error {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	config, err := Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	GlobalConfig = config
	return nil
}

// Load reads the configuration from the environment and validates it
// without touching GlobalConfig.
func Load() (*Config, error) {
	config := &Config{
		Server:    loadServerConfig(),
		Database:  loadDatabaseConfig(),
		Redis:     loadRedisConfig(),
		Frontend:  loadFrontendConfig(),
		Logging:   loadLoggingConfig(),
		RateLimit: loadRateLimitConfig(),
		Universe:  loadUniverseConfig(),
		Metrics:   loadMetricsConfig(),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func loadRedisConfig() RedisConfig {
	enabled := utils.GetEnv("REDIS_ENABLED", "false") == "true"
	db, _ := strconv.Atoi(utils.GetEnv("REDIS_DB", "0"))

	return RedisConfig{
		Enabled:   enabled,
		URL:       utils.GetEnv("REDIS_URL", ""),
		Host:      utils.GetEnv("REDIS_HOST", "localhost"),
		Port:      utils.GetEnv("REDIS_PORT", "6379"),
		Password:  utils.GetEnv("REDIS_PASSWORD", ""),
		DB:        db,
		KeyPrefix: utils.GetEnv("REDIS_KEY_PREFIX", "sectorgen"),
	}
}

func loadServerConfig() ServerConfig {
	readTimeout, _ := strconv.Atoi(utils.GetEnv("SERVER_READ_TIMEOUT_SECONDS", "15"))
	writeTimeout, _ := strconv.Atoi(utils.GetEnv("SERVER_WRITE_TIMEOUT_SECONDS", "15"))
	idleTimeout, _ := strconv.Atoi(utils.GetEnv("SERVER_IDLE_TIMEOUT_SECONDS", "60"))

	return ServerConfig{
		Port:         utils.GetEnv("SERVER_PORT", "8080"),
		URL:          utils.GetEnv("SERVER_URL", "http://localhost:8080"),
		Environment:  utils.GetEnv("ENVIRONMENT", "development"),
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
		IdleTimeout:  time.Duration(idleTimeout) * time.Second,
	}
}

func loadDatabaseConfig() DatabaseConfig {
	maxOpenConns, _ := strconv.Atoi(utils.GetEnv("DB_MAX_OPEN_CONNS", "25"))
	maxIdleConns, _ := strconv.Atoi(utils.GetEnv("DB_MAX_IDLE_CONNS", "5"))
	connMaxLifetime, _ := strconv.Atoi(utils.GetEnv("DB_CONN_MAX_LIFETIME_MINUTES", "5"))

	return DatabaseConfig{
		Host:            utils.GetEnv("DB_HOST", "localhost"),
		Port:            utils.GetEnv("DB_PORT", "5432"),
		User:            utils.GetEnv("DB_USER", "postgres"),
		Password:        utils.GetEnv("DB_PASSWORD", "postgres"),
		Name:            utils.GetEnv("DB_NAME", "sectorgen"),
		SSLMode:         utils.GetEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:    maxOpenConns,
		MaxIdleConns:    maxIdleConns,
		ConnMaxLifetime: time.Duration(connMaxLifetime) * time.Minute,
		MigrationsPath:  utils.GetEnv("DB_MIGRATIONS_PATH", "migrations"),
	}
}

func loadFrontendConfig() FrontendConfig {
	corsDebug := utils.GetEnv("CORS_DEBUG", "") == "true"

	return FrontendConfig{
		URL:       utils.GetEnv("FRONTEND_URL", "http://localhost:3000"),
		CORSDebug: corsDebug,
	}
}

func loadLoggingConfig() LoggingConfig {
	environment := utils.GetEnv("ENVIRONMENT", "development")
	jsonFormat := environment == "production"

	return LoggingConfig{
		Level:      utils.GetEnv("LOG_LEVEL", "debug"),
		Format:     utils.GetEnv("LOG_FORMAT", "text"),
		JSONFormat: jsonFormat,
	}
}

func loadRateLimitConfig() RateLimitConfig {
	enabled := utils.GetEnv("RATE_LIMIT_ENABLED", "true") == "true"
	requestsPerSecond, _ := strconv.ParseFloat(utils.GetEnv("RATE_LIMIT_REQUESTS_PER_SECOND", "10"), 64)
	burstSize, _ := strconv.Atoi(utils.GetEnv("RATE_LIMIT_BURST_SIZE", "20"))

	return RateLimitConfig{
		Enabled:           enabled,
		RequestsPerSecond: requestsPerSecond,
		BurstSize:         burstSize,
		TrustProxy:        utils.GetEnv("RATE_LIMIT_TRUST_PROXY", "false") == "true",
	}
}

func loadUniverseConfig() UniverseConfig {
	environment := utils.GetEnv("ENVIRONMENT", "development")
	verifyDefault := "true"
	if environment == "production" {
		verifyDefault = "false"
	}

	seed, _ := strconv.ParseInt(utils.GetEnv("UNIVERSE_SEED", "20240501"), 10, 64)
	singlePlayerSeed, _ := strconv.ParseInt(utils.GetEnv("UNIVERSE_SINGLE_PLAYER_SEED", "1337"), 10, 64)

	return UniverseConfig{
		SectorCount:             utils.GetEnvInt("UNIVERSE_SECTOR_COUNT", 5000),
		Seed:                    seed,
		SinglePlayerSectorCount: utils.GetEnvInt("UNIVERSE_SINGLE_PLAYER_SECTOR_COUNT", 500),
		SinglePlayerSeed:        singlePlayerSeed,
		MaxAdjacentSectors:      utils.GetEnvInt("UNIVERSE_MAX_ADJACENT_SECTORS", warpgraph.DefaultMaxAdjacentSectors),
		SectorsPerRegion:        utils.GetEnvInt("UNIVERSE_SECTORS_PER_REGION", warpgraph.DefaultSectorsPerRegion),
		NumStarMalls:            utils.GetEnvInt("UNIVERSE_NUM_STAR_MALLS", warpgraph.DefaultNumStarMalls),
		NumSeedPlanets:          utils.GetEnvInt("UNIVERSE_NUM_SEED_PLANETS", warpgraph.DefaultNumSeedPlanets),
		OneWayFraction:          utils.GetEnvFloat("UNIVERSE_ONE_WAY_FRACTION", warpgraph.DefaultOneWayFraction),
		MaxPathDepth:            utils.GetEnvInt("UNIVERSE_MAX_PATH_DEPTH", warpgraph.DefaultMaxPathDepth),
		VerifyPostconditions:    utils.GetEnv("UNIVERSE_VERIFY_POSTCONDITIONS", verifyDefault) == "true",
		BootstrapOnStart:        utils.GetEnv("UNIVERSE_BOOTSTRAP_ON_START", "true") == "true",
	}
}

func loadMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled: utils.GetEnv("METRICS_ENABLED", "true") == "true",
		Path:    utils.GetEnv("METRICS_PATH", "/metrics"),
	}
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}

	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}

	if c.Universe.SectorCount < warpgraph.MinSectors {
		return fmt.Errorf("UNIVERSE_SECTOR_COUNT must be at least %d", warpgraph.MinSectors)
	}

	if c.Universe.SinglePlayerSectorCount < warpgraph.MinSectors {
		return fmt.Errorf("UNIVERSE_SINGLE_PLAYER_SECTOR_COUNT must be at least %d", warpgraph.MinSectors)
	}

	if c.Universe.OneWayFraction < 0 || c.Universe.OneWayFraction >= 1 {
		return fmt.Errorf("UNIVERSE_ONE_WAY_FRACTION must be in [0,1)")
	}

	if c.RateLimit.Enabled && c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS_PER_SECOND must be positive")
	}

	return nil
}

// Params maps the universe settings onto generator parameters.
func (c *Config) Params() warpgraph.Params {
	u := c.Universe
	return warpgraph.Params{
		MaxAdjacentSectors:   u.MaxAdjacentSectors,
		SectorsPerRegion:     u.SectorsPerRegion,
		NumStarMalls:         u.NumStarMalls,
		NumSeedPlanets:       u.NumSeedPlanets,
		OneWayFraction:       u.OneWayFraction,
		MaxPathDepth:         u.MaxPathDepth,
		VerifyPostconditions: u.VerifyPostconditions,
	}
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
