package infra

import (
	"fmt"
	"job-board-api/constants"
	"log"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const devSecretKey = "dev-secret-change-me"

type Config struct {
	Port string
	Env  string

	Database DatabaseConfig
	Auth     AuthConfig
	GraphQL  GraphQLConfig

	AutoMigrate bool
	SeedData    bool
}

type DatabaseConfig struct {
	Name     string // 空ならSQLiteを使う
	Host     string
	User     string
	Password string
	Port     string

	SQLitePath  string
	TokenDBPath string
}

type AuthConfig struct {
	SecretKey  string
	TokenTTL   time.Duration
	BcryptCost int
}

type GraphQLConfig struct {
	MaxDepth       int
	MaxParallelism int
	LoaderWait     time.Duration
}

// LoadConfig 環境変数から設定を読み込む。本番環境(ENV=prod)ではSECRET_KEYが必須
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port: getEnv("PORT", ""),
		Env:  getEnv("ENV", "dev"),
		Database: DatabaseConfig{
			Name:        getEnv("DB_NAME", ""),
			Host:        getEnv("DB_HOST", "localhost"),
			User:        getEnv("DB_USER", ""),
			Password:    getEnv("DB_PASSWORD", ""),
			Port:        getEnv("DB_PORT", "5432"),
			SQLitePath:  getEnv("SQLITE_PATH", ":memory:"),
			TokenDBPath: getEnv("TOKEN_DB_PATH", "token_blacklist.db"),
		},
		Auth: AuthConfig{
			SecretKey: getEnv("SECRET_KEY", ""),
		},
		AutoMigrate: getEnvBool("AUTO_MIGRATE", false),
		SeedData:    getEnvBool("SEED_DATA", false),
	}
	if cfg.Port == "" {
		cfg.Port = getEnv("AWS_LWA_PORT", "8080")
	}

	ttlMinutes, err := getEnvInt("JWT_EXPIRATION_TIME_MINUTES", int(constants.DefaultTokenTTL/time.Minute))
	if err != nil {
		return nil, err
	}
	cfg.Auth.TokenTTL = time.Duration(ttlMinutes) * time.Minute

	cfg.Auth.BcryptCost, err = getEnvInt("BCRYPT_COST", bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	cfg.GraphQL.MaxDepth, err = getEnvInt("GRAPHQL_MAX_DEPTH", constants.DefaultGraphQLDepth)
	if err != nil {
		return nil, err
	}

	cfg.GraphQL.MaxParallelism, err = getEnvInt("GRAPHQL_MAX_PARALLELISM", constants.DefaultGraphQLParallelism)
	if err != nil {
		return nil, err
	}

	waitMs, err := getEnvInt("LOADER_WAIT_MS", int(constants.DefaultLoaderWait/time.Millisecond))
	if err != nil {
		return nil, err
	}
	cfg.GraphQL.LoaderWait = time.Duration(waitMs) * time.Millisecond

	if cfg.Auth.SecretKey == "" {
		if cfg.IsProd() {
			return nil, fmt.Errorf("SECRET_KEY environment variable is not set; required for production")
		}
		log.Println("SECRET_KEY not set; using development secret")
		cfg.Auth.SecretKey = devSecretKey
	}
	if ttlMinutes <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRATION_TIME_MINUTES must be positive, got %d", ttlMinutes)
	}
	if cfg.GraphQL.MaxParallelism <= 0 {
		return nil, fmt.Errorf("GRAPHQL_MAX_PARALLELISM must be positive, got %d", cfg.GraphQL.MaxParallelism)
	}
	if cfg.Auth.BcryptCost < bcrypt.MinCost || cfg.Auth.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	return cfg, nil
}

func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

// UsesPostgres DB_NAMEが設定されている場合はPostgreSQLを使用する
func (c *Config) UsesPostgres() bool {
	return c.Database.Name != ""
}

// String 秘密情報はマスクする
func (c *Config) String() string {
	store := "sqlite:" + c.Database.SQLitePath
	if c.UsesPostgres() {
		store = fmt.Sprintf("postgres:%s@%s:%s/%s", c.Database.User, c.Database.Host, c.Database.Port, c.Database.Name)
	}
	return fmt.Sprintf("Config{Port: %s, Env: %s, DB: %s, TokenTTL: %s, MaxDepth: %d, Secret: *** (masked) ***}",
		c.Port, c.Env, store, c.Auth.TokenTTL, c.GraphQL.MaxDepth)
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}

func getEnvBool(key string, defaultVal bool) bool {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		b, err := strconv.ParseBool(value)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, value)
			return defaultVal
		}
		return b
	}
	return defaultVal
}
