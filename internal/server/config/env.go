package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Token lifetime bounds for the environment variables; they keep the
// multiplication into time.Duration far from overflow.
const (
	maxAccessTokenMinutes = 365 * 24 * 60
	maxRefreshTokenDays   = 10 * 365
)

// ErrInvalidTTL is returned for a token lifetime outside its bounds.
var ErrInvalidTTL = errors.New("invalid token lifetime")

// loadDotEnv reads ENV_FILE_PATH (or config.EnvFilePath) into the process
// environment. Variables that are already set win. A missing file is not an
// error.
func loadDotEnv(config *Config) error {
	path := os.Getenv("ENV_FILE_PATH")
	if path == "" {
		path = config.EnvFilePath
	}
	if path == "" {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// parseEnv overlays environment variables onto config.
func parseEnv(config *Config) error {
	lookupString(&config.HTTPAddress, "SERVER_ADDRESS")
	lookupString(&config.GRPCAddress, "GRPC_ADDRESS")
	lookupString(&config.DatabaseDSN, "DATABASE_DSN")
	lookupString(&config.SecretKey, "SECRET_KEY")
	lookupString(&config.RefreshSecretKey, "REFRESH_SECRET_KEY")
	lookupString(&config.Algorithm, "ALGORITHM")
	lookupString(&config.LogFormat, "LOG_FORMAT")
	lookupString(&config.LogLevel, "LOG_LEVEL")

	minutes, err := lookupInt("ACCESS_TOKEN_EXPIRE_MINUTES")
	if err != nil {
		return err
	}
	if minutes != nil {
		if *minutes < 1 || *minutes > maxAccessTokenMinutes {
			return fmt.Errorf("%w: ACCESS_TOKEN_EXPIRE_MINUTES must be between 1 and %d", ErrInvalidTTL, maxAccessTokenMinutes)
		}
		config.AccessTokenTTL = time.Duration(*minutes) * time.Minute
	}

	days, err := lookupInt("REFRESH_TOKEN_EXPIRE_DAYS")
	if err != nil {
		return err
	}
	if days != nil {
		if *days < 1 || *days > maxRefreshTokenDays {
			return fmt.Errorf("%w: REFRESH_TOKEN_EXPIRE_DAYS must be between 1 and %d", ErrInvalidTTL, maxRefreshTokenDays)
		}
		config.RefreshTokenTTL = time.Duration(*days) * 24 * time.Hour
	}

	cost, err := lookupInt("BCRYPT_COST")
	if err != nil {
		return err
	}
	if cost != nil {
		config.BcryptCost = *cost
	}

	if v, ok := os.LookupEnv("ENVIRONMENT"); ok && v != "" {
		config.IsDevelopment = strings.EqualFold(v, "development")
	}
	return nil
}

func lookupString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func lookupInt(key string) (*int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &n, nil
}
