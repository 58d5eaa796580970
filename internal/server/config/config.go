// Package config handles configuration for the server component: defaults,
// an optional JSON file, AWS Secrets Manager, a .env file, the process
// environment and command-line flags, applied in that order.
package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/debtmanager/internal/common"
	"github.com/dmitrijs2005/debtmanager/internal/server/auth"
	"golang.org/x/crypto/bcrypt"
)

// generatedSecretBytes is the amount of randomness behind a refresh secret
// created at startup.
const generatedSecretBytes = 64

// ErrMissingSecretKey is returned by Validate when SECRET_KEY is not set.
var ErrMissingSecretKey = errors.New("SECRET_KEY is required")

// Config holds runtime settings for the debt manager server.
//
// RefreshSecretGenerated is set by EnsureRefreshSecret when no refresh
// secret was configured; callers are expected to log a warning.
type Config struct {
	HTTPAddress      string
	GRPCAddress      string
	DatabaseDSN      string
	SecretKey        string
	RefreshSecretKey string
	Algorithm        string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	BcryptCost       int
	LogFormat        string
	LogLevel         string
	IsDevelopment    bool
	EnvFilePath      string

	RefreshSecretGenerated bool
}

// LoadDefaults populates Config with development defaults. There is no
// default secret key.
func (c *Config) LoadDefaults() {
	c.HTTPAddress = ":8000"
	c.GRPCAddress = ":50051"
	c.Algorithm = auth.DefaultAlgorithm
	c.AccessTokenTTL = 30 * time.Minute
	c.RefreshTokenTTL = 7 * 24 * time.Hour
	c.BcryptCost = bcrypt.DefaultCost
	c.LogFormat = "json"
	c.LogLevel = "info"
	c.EnvFilePath = ".env"
}

// LoadConfig builds a Config from every source and validates it. The
// refresh secret is filled in when missing.
func LoadConfig(ctx context.Context) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := loadAWSSecretsIntoEnv(ctx, newSecretsClient); err != nil {
		return nil, fmt.Errorf("aws secrets: %w", err)
	}
	if err := loadDotEnv(cfg); err != nil {
		return nil, fmt.Errorf("env file: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseFlags(cfg); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.EnsureRefreshSecret(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return ErrMissingSecretKey
	}
	if c.RefreshSecretKey != "" && c.RefreshSecretKey == c.SecretKey {
		return errors.New("REFRESH_SECRET_KEY must differ from SECRET_KEY")
	}
	if c.AccessTokenTTL < time.Second || c.RefreshTokenTTL < time.Second {
		return errors.New("token lifetimes must be at least one second")
	}
	return nil
}

// EnsureRefreshSecret generates a random refresh secret when none is set.
// Tokens signed with it do not survive a restart.
func (c *Config) EnsureRefreshSecret() error {
	if c.RefreshSecretKey != "" {
		return nil
	}
	secret, err := common.MakeRandURLToken(generatedSecretBytes)
	if err != nil {
		return fmt.Errorf("generating refresh secret: %w", err)
	}
	c.RefreshSecretKey = secret
	c.RefreshSecretGenerated = true
	return nil
}

// TokenConfig converts the token settings for auth.NewTokenService.
func (c *Config) TokenConfig() auth.TokenConfig {
	return auth.TokenConfig{
		AccessSecret:  []byte(c.SecretKey),
		RefreshSecret: []byte(c.RefreshSecretKey),
		Algorithm:     c.Algorithm,
		AccessTTL:     c.AccessTokenTTL,
		RefreshTTL:    c.RefreshTokenTTL,
	}
}
